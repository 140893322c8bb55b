package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/arjunmehra/folio-tracker/backend/internal/metrics"
	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

const defaultRefreshInterval = 5 * time.Minute

// PriceWorker periodically re-pulls market prices, recomputes holdings, and
// upserts today's snapshot. A refresh cycle in flight when a transaction is
// recorded simply recomputes from the updated ledger on its next pass; the
// ledger write always wins.
type PriceWorker struct {
	portfolio *PortfolioService
	snapshots *SnapshotService
	interval  time.Duration

	mu          sync.RWMutex
	lastRefresh time.Time
	cycles      int
}

// RefreshStatus reports the worker's progress for the status endpoint.
type RefreshStatus struct {
	LastRefreshTime time.Time `json:"last_refresh_time"`
	NextRefreshTime time.Time `json:"next_refresh_time"`
	Cycles          int       `json:"cycles"`
	Interval        string    `json:"interval"`
}

func NewPriceWorker(portfolio *PortfolioService, snapshots *SnapshotService, interval time.Duration) *PriceWorker {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &PriceWorker{
		portfolio: portfolio,
		snapshots: snapshots,
		interval:  interval,
	}
}

// Start begins the background refresh loop and blocks until ctx is
// cancelled. The first cycle runs immediately so the quote cache is warm
// before the first page load.
func (w *PriceWorker) Start(ctx context.Context) {
	log.Printf("Price worker started: refreshing prices every %v", w.interval)

	if err := w.RunOnce(ctx); err != nil {
		log.Printf("Price worker: initial refresh failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Price worker stopping...")
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				log.Printf("Price worker: refresh failed: %v", err)
			}
		}
	}
}

// RunOnce performs a single refresh cycle: fetch prices, recompute
// positions, update today's snapshot, publish metrics.
func (w *PriceWorker) RunOnce(ctx context.Context) error {
	start := time.Now()

	p, err := w.portfolio.Refresh(ctx)
	if err != nil {
		return err
	}
	if _, err := w.snapshots.RecordToday(ctx); err != nil {
		// Snapshot failure degrades; valuation still succeeded.
		log.Printf("Price worker: snapshot update failed: %v", err)
	}

	metrics.PriceRefreshTotal.Inc()
	metrics.PriceRefreshDuration.Observe(time.Since(start).Seconds())
	publishPortfolioMetrics(p)

	w.mu.Lock()
	w.lastRefresh = time.Now()
	w.cycles++
	w.mu.Unlock()

	return nil
}

func (w *PriceWorker) Status() RefreshStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return RefreshStatus{
		LastRefreshTime: w.lastRefresh,
		NextRefreshTime: w.lastRefresh.Add(w.interval),
		Cycles:          w.cycles,
		Interval:        w.interval.String(),
	}
}

func publishPortfolioMetrics(p *models.Portfolio) {
	metrics.PortfolioValueINR.Set(p.TotalValue)
	metrics.PortfolioValueByClass.WithLabelValues(string(models.AssetClassStock)).Set(p.StocksValue)
	metrics.PortfolioValueByClass.WithLabelValues(string(models.AssetClassCrypto)).Set(p.CryptoValue)
	metrics.PortfolioValueByClass.WithLabelValues(string(models.AssetClassInsurance)).Set(p.InsuranceValue)
}
