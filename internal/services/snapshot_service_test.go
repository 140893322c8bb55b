package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
	"github.com/arjunmehra/folio-tracker/backend/internal/repository"
)

func newSnapshotFixture(t *testing.T, quotes map[string]models.MarketQuote) (*SnapshotService, *LedgerService, *repository.MemorySnapshotRepository) {
	t.Helper()
	ledger := NewLedgerService(repository.NewMemoryLedgerRepository())
	portfolio := NewPortfolioService(ledger, &stubOracle{quotes: quotes})
	repo := repository.NewMemorySnapshotRepository()
	return NewSnapshotService(repo, portfolio), ledger, repo
}

func TestRecordTodayUpsertsSameDay(t *testing.T) {
	svc, ledger, repo := newSnapshotFixture(t, map[string]models.MarketQuote{
		"X": {ID: "X", Class: models.AssetClassStock, Price: 100},
	})
	day := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	buyTx(t, ledger, "X", models.AssetClassStock, 2, 100)
	if _, err := svc.RecordToday(context.Background()); err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}

	// Second valuation on the same day replaces the entry.
	buyTx(t, ledger, "X", models.AssetClassStock, 1, 100)
	svc.now = func() time.Time { return day.Add(6 * time.Hour) }
	snap, err := svc.RecordToday(context.Background())
	if err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}

	snaps, _ := repo.List()
	if len(snaps) != 1 {
		t.Fatalf("expected exactly one snapshot for the day, got %d", len(snaps))
	}
	if snaps[0].TotalValue != snap.TotalValue {
		t.Error("stored snapshot does not match the latest valuation")
	}
	if snaps[0].StocksValue != 300 {
		t.Errorf("expected second call's value 300, got %g", snaps[0].StocksValue)
	}
}

func TestSnapshotRetentionPrunesOldest(t *testing.T) {
	svc, _, repo := newSnapshotFixture(t, nil)
	svc.retention = 5

	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		day := start.AddDate(0, 0, i)
		svc.now = func() time.Time { return day }
		if _, err := svc.RecordToday(context.Background()); err != nil {
			t.Fatalf("snapshot %d failed: %v", i, err)
		}
	}

	snaps, _ := repo.List()
	if len(snaps) != 5 {
		t.Fatalf("expected 5 retained snapshots, got %d", len(snaps))
	}
	if snaps[0].Date != "2025-01-04" {
		t.Errorf("expected oldest retained date 2025-01-04, got %s", snaps[0].Date)
	}
	if snaps[len(snaps)-1].Date != "2025-01-08" {
		t.Errorf("expected newest date 2025-01-08, got %s", snaps[len(snaps)-1].Date)
	}
}

func TestHistoryPadsToFixedLength(t *testing.T) {
	svc, _, repo := newSnapshotFixture(t, nil)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	// One real snapshot only.
	if err := repo.Upsert(&models.PortfolioSnapshot{Date: "2025-06-14", TotalValue: 1200}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	points, err := svc.History(12)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(points) != 12 {
		t.Fatalf("expected exactly 12 points, got %d", len(points))
	}
	for i := 0; i < 11; i++ {
		if points[i].Value != 0 {
			t.Errorf("padding point %d must be zero, got %g", i, points[i].Value)
		}
	}
	if points[0].Label != "Jul" { // 11 months before June 2025
		t.Errorf("expected first padded label Jul, got %s", points[0].Label)
	}
	last := points[11]
	if last.Value != 1200 || last.Date != "2025-06-14" || last.Label != "Jun" {
		t.Errorf("unexpected final point: %+v", last)
	}
}

func TestHistoryEmptyAndAscending(t *testing.T) {
	svc, _, repo := newSnapshotFixture(t, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	points, err := svc.History(12)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(points) != 12 {
		t.Fatalf("expected 12 placeholder points, got %d", len(points))
	}

	for i := 0; i < 6; i++ {
		date := fmt.Sprintf("2025-06-%02d", i+1)
		if err := repo.Upsert(&models.PortfolioSnapshot{Date: date, TotalValue: float64(1000 + i)}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	points, err = svc.History(3)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	// Oldest first, most recent 3 snapshots.
	if points[0].Date != "2025-06-04" || points[2].Date != "2025-06-06" {
		t.Errorf("unexpected window: %s .. %s", points[0].Date, points[2].Date)
	}
	if points[0].Value >= points[2].Value {
		t.Error("expected ascending chronological order")
	}
}

func TestSnapshotHistoryIsNotRewrittenByLaterPrices(t *testing.T) {
	quotes := map[string]models.MarketQuote{
		"X": {ID: "X", Class: models.AssetClassStock, Price: 100},
	}
	svc, ledger, repo := newSnapshotFixture(t, quotes)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	buyTx(t, ledger, "X", models.AssetClassStock, 1, 100)
	if _, err := svc.RecordToday(context.Background()); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	// Price moves the next day; yesterday's record must keep its value.
	quotes["X"] = models.MarketQuote{ID: "X", Class: models.AssetClassStock, Price: 500}
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }
	if _, err := svc.RecordToday(context.Background()); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	snaps, _ := repo.List()
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].TotalValue != 100 {
		t.Errorf("historical snapshot was corrupted by today's price: %g", snaps[0].TotalValue)
	}
	if snaps[1].TotalValue != 500 {
		t.Errorf("expected today's value 500, got %g", snaps[1].TotalValue)
	}
}
