// Package repository defines the durable storage contracts for the ledger,
// snapshot history, and cash balance, with a gorm/sqlite implementation for
// production and an in-memory implementation for tests.
package repository

import (
	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

// LedgerRepository is an append-only transaction log. Append must persist
// durably before returning; implementations never mutate or delete records.
type LedgerRepository interface {
	Append(tx *models.Transaction) error
	// All returns every transaction in insertion order.
	All() ([]models.Transaction, error)
}

// SnapshotRepository stores at most one portfolio snapshot per date key.
type SnapshotRepository interface {
	// Upsert replaces the snapshot with the same Date, or appends.
	Upsert(snap *models.PortfolioSnapshot) error
	// List returns snapshots in ascending date order.
	List() ([]models.PortfolioSnapshot, error)
	// Prune deletes the oldest snapshots until at most keep remain.
	Prune(keep int) error
}

// BalanceRepository stores the single INR cash balance row.
type BalanceRepository interface {
	Get() (float64, error)
	Set(amount float64) error
}
