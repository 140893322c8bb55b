package repository

import (
	"sort"
	"sync"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

// MemoryLedgerRepository keeps the ledger in process memory. Used by tests
// and as a no-database fallback.
type MemoryLedgerRepository struct {
	mu  sync.RWMutex
	txs []models.Transaction
	seq uint
}

func NewMemoryLedgerRepository() *MemoryLedgerRepository {
	return &MemoryLedgerRepository{}
}

func (r *MemoryLedgerRepository) Append(tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	tx.Seq = r.seq
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *MemoryLedgerRepository) All() ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Transaction, len(r.txs))
	copy(out, r.txs)
	return out, nil
}

type MemorySnapshotRepository struct {
	mu    sync.RWMutex
	snaps []models.PortfolioSnapshot
	next  uint
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{}
}

func (r *MemorySnapshotRepository) Upsert(snap *models.PortfolioSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.snaps {
		if r.snaps[i].Date == snap.Date {
			snap.ID = r.snaps[i].ID
			snap.CreatedAt = r.snaps[i].CreatedAt
			r.snaps[i] = *snap
			return nil
		}
	}
	r.next++
	snap.ID = r.next
	r.snaps = append(r.snaps, *snap)
	r.sortLocked()
	return nil
}

func (r *MemorySnapshotRepository) List() ([]models.PortfolioSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.PortfolioSnapshot, len(r.snaps))
	copy(out, r.snaps)
	return out, nil
}

func (r *MemorySnapshotRepository) Prune(keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if excess := len(r.snaps) - keep; excess > 0 {
		r.snaps = append([]models.PortfolioSnapshot(nil), r.snaps[excess:]...)
	}
	return nil
}

// sortLocked keeps snapshots date-ascending. ISO date keys sort
// lexicographically.
func (r *MemorySnapshotRepository) sortLocked() {
	sort.SliceStable(r.snaps, func(i, j int) bool {
		return r.snaps[i].Date < r.snaps[j].Date
	})
}

type MemoryBalanceRepository struct {
	mu     sync.RWMutex
	amount float64
}

func NewMemoryBalanceRepository() *MemoryBalanceRepository {
	return &MemoryBalanceRepository{}
}

func (r *MemoryBalanceRepository) Get() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.amount, nil
}

func (r *MemoryBalanceRepository) Set(amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.amount = amount
	return nil
}
