package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/arjunmehra/folio-tracker/backend/internal/metrics"
	"github.com/arjunmehra/folio-tracker/backend/internal/models"
	"github.com/arjunmehra/folio-tracker/backend/internal/repository"
)

// snapshotRetention is the rolling window of daily snapshots kept.
const snapshotRetention = 365

const dateKeyLayout = "2006-01-02"

// SnapshotService keeps one durable valuation checkpoint per calendar day.
// The day key uses the process-local timezone so the boundary matches the
// day a person expects. Snapshot history is the sole source for time-series
// reporting; it is never rebuilt from live positions retroactively.
type SnapshotService struct {
	repo      repository.SnapshotRepository
	portfolio *PortfolioService
	retention int

	mu  sync.Mutex
	now func() time.Time
}

func NewSnapshotService(repo repository.SnapshotRepository, portfolio *PortfolioService) *SnapshotService {
	return &SnapshotService{
		repo:      repo,
		portfolio: portfolio,
		retention: snapshotRetention,
		now:       time.Now,
	}
}

// RecordToday values the current portfolio and upserts today's snapshot:
// re-running within the same day replaces the entry rather than appending.
// History beyond the retention window is pruned oldest-first.
func (s *SnapshotService) RecordToday(ctx context.Context) (*models.PortfolioSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.portfolio.Current(ctx)
	if err != nil {
		return nil, err
	}

	snap := &models.PortfolioSnapshot{
		Date:           s.now().Format(dateKeyLayout),
		TotalValue:     p.TotalValue,
		StocksValue:    p.StocksValue,
		CryptoValue:    p.CryptoValue,
		InsuranceValue: p.InsuranceValue,
	}
	if err := s.repo.Upsert(snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.repo.Prune(s.retention); err != nil {
		log.Printf("snapshot: prune failed: %v", err)
	}

	metrics.SnapshotsRecordedTotal.Inc()
	if snaps, err := s.repo.List(); err == nil {
		metrics.SnapshotCount.Set(float64(len(snaps)))
	}

	return snap, nil
}

// History returns exactly months performance points in ascending date
// order. When fewer snapshots exist, the front is padded with zero-valued
// placeholders labeled by the calendar months leading up to the data, so
// charts always get a fixed-length series.
func (s *SnapshotService) History(months int) ([]models.PerformancePoint, error) {
	if months <= 0 {
		return []models.PerformancePoint{}, nil
	}

	snaps, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if len(snaps) > months {
		snaps = snaps[len(snaps)-months:]
	}

	points := make([]models.PerformancePoint, 0, months)
	now := s.now()
	pad := months - len(snaps)
	for i := 0; i < pad; i++ {
		d := now.AddDate(0, -(months-1-i), 0)
		points = append(points, models.PerformancePoint{
			Label: d.Format("Jan"),
			Value: 0,
		})
	}
	for _, sn := range snaps {
		label := sn.Date
		if t, err := time.Parse(dateKeyLayout, sn.Date); err == nil {
			label = t.Format("Jan")
		}
		points = append(points, models.PerformancePoint{
			Label: label,
			Date:  sn.Date,
			Value: sn.TotalValue,
		})
	}
	return points, nil
}

// Latest returns the most recent snapshot, or nil when none exist.
func (s *SnapshotService) Latest() (*models.PortfolioSnapshot, error) {
	snaps, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return &snaps[len(snaps)-1], nil
}
