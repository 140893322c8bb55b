package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arjunmehra/folio-tracker/backend/internal/metrics"
	"github.com/arjunmehra/folio-tracker/backend/internal/models"
	"github.com/arjunmehra/folio-tracker/backend/internal/repository"
)

// LedgerService owns transaction identity and lifetime: it validates ledger
// events, assigns ids and monotonic timestamps, and appends them durably.
// Records are never mutated or deleted afterwards.
type LedgerService struct {
	repo repository.LedgerRepository

	mu     sync.Mutex
	lastTS int64

	now func() time.Time
}

func NewLedgerService(repo repository.LedgerRepository) *LedgerService {
	return &LedgerService{
		repo: repo,
		now:  time.Now,
	}
}

// Record validates and durably appends one transaction. On any error the
// ledger and the service's timestamp state are left unchanged. The id and
// timestamp are assigned here; TotalValue is captured from quantity and
// unit price at record time.
func (s *LedgerService) Record(tx *models.Transaction) error {
	if err := validateTransaction(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	// Timestamps are the sole sort key, so keep them strictly monotonic
	// even when two records land within the same millisecond.
	prev := s.lastTS
	ts := s.now().UnixMilli()
	if ts <= s.lastTS {
		ts = s.lastTS + 1
	}
	s.lastTS = ts
	tx.Timestamp = ts

	tx.TotalValue = mulMoney(tx.Quantity, tx.UnitPrice)

	if err := s.repo.Append(tx); err != nil {
		s.lastTS = prev
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	metrics.TransactionsRecordedTotal.WithLabelValues(string(tx.Kind)).Inc()
	return nil
}

// All returns the full ledger in insertion order.
func (s *LedgerService) All() ([]models.Transaction, error) {
	return s.repo.All()
}

// Recent returns the n most recent transactions, newest first, ties broken
// by reverse insertion order. n <= 0 yields an empty slice; n beyond the
// ledger size yields everything.
func (s *LedgerService) Recent(n int) ([]models.Transaction, error) {
	if n <= 0 {
		return []models.Transaction{}, nil
	}
	txs, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Timestamp != txs[j].Timestamp {
			return txs[i].Timestamp > txs[j].Timestamp
		}
		return txs[i].Seq > txs[j].Seq
	})
	if n < len(txs) {
		txs = txs[:n]
	}
	return txs, nil
}

func validateTransaction(tx *models.Transaction) error {
	if !tx.AssetClass.Valid() {
		return fmt.Errorf("%w: unknown asset class %q", ErrValidation, tx.AssetClass)
	}
	if !tx.Kind.Valid() {
		return fmt.Errorf("%w: unknown transaction kind %q", ErrValidation, tx.Kind)
	}
	if tx.AssetID == "" {
		return fmt.Errorf("%w: asset id is required", ErrValidation)
	}
	if tx.Kind == models.KindCancel {
		if tx.AssetClass != models.AssetClassInsurance {
			return fmt.Errorf("%w: cancel applies to insurance policies only", ErrValidation)
		}
		if tx.PolicyID == "" {
			return fmt.Errorf("%w: policy id is required for cancel", ErrValidation)
		}
		return nil
	}
	if tx.Kind == models.KindSell && tx.AssetClass == models.AssetClassInsurance {
		return fmt.Errorf("%w: insurance policies are cancelled, not sold", ErrValidation)
	}
	if tx.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if tx.UnitPrice < 0 {
		return fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}
	return nil
}

// mulMoney multiplies quantity by price without accumulating float error.
func mulMoney(qty, price float64) float64 {
	v, _ := decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(price)).Float64()
	return v
}
