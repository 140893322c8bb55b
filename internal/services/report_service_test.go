package services

import (
	"context"
	"testing"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
	"github.com/arjunmehra/folio-tracker/backend/internal/repository"
)

func newReportFixture(t *testing.T, quotes map[string]models.MarketQuote) (*ReportService, *LedgerService, *repository.MemorySnapshotRepository) {
	t.Helper()
	ledger := NewLedgerService(repository.NewMemoryLedgerRepository())
	portfolio := NewPortfolioService(ledger, &stubOracle{quotes: quotes})
	repo := repository.NewMemorySnapshotRepository()
	return NewReportService(repo, portfolio), ledger, repo
}

func TestAllocationFromLatestSnapshot(t *testing.T) {
	svc, _, repo := newReportFixture(t, nil)
	seed := []models.PortfolioSnapshot{
		{Date: "2025-05-01", TotalValue: 100, StocksValue: 100},
		{Date: "2025-06-01", TotalValue: 1000, StocksValue: 600, CryptoValue: 300, InsuranceValue: 100},
	}
	for i := range seed {
		if err := repo.Upsert(&seed[i]); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	alloc, err := svc.Allocation(context.Background())
	if err != nil {
		t.Fatalf("allocation failed: %v", err)
	}
	if alloc.Stocks != 60 || alloc.Crypto != 30 || alloc.Insurance != 10 {
		t.Errorf("expected 60/30/10, got %d/%d/%d", alloc.Stocks, alloc.Crypto, alloc.Insurance)
	}
}

func TestAllocationRounding(t *testing.T) {
	svc, _, repo := newReportFixture(t, nil)
	snap := models.PortfolioSnapshot{
		Date:        "2025-06-01",
		TotalValue:  3,
		StocksValue: 1, CryptoValue: 1, InsuranceValue: 1,
	}
	if err := repo.Upsert(&snap); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	alloc, err := svc.Allocation(context.Background())
	if err != nil {
		t.Fatalf("allocation failed: %v", err)
	}
	// 33.33 rounds to 33 for each class; the sum is allowed to miss 100.
	if alloc.Stocks != 33 || alloc.Crypto != 33 || alloc.Insurance != 33 {
		t.Errorf("expected 33/33/33, got %d/%d/%d", alloc.Stocks, alloc.Crypto, alloc.Insurance)
	}
}

func TestAllocationEmptyPortfolio(t *testing.T) {
	svc, _, _ := newReportFixture(t, nil)

	alloc, err := svc.Allocation(context.Background())
	if err != nil {
		t.Fatalf("allocation on empty portfolio must not fail: %v", err)
	}
	if alloc.Stocks != 0 || alloc.Crypto != 0 || alloc.Insurance != 0 {
		t.Errorf("expected all zeros, got %+v", alloc)
	}
}

func TestAllocationFallsBackToLivePositions(t *testing.T) {
	svc, ledger, _ := newReportFixture(t, map[string]models.MarketQuote{
		"X": {ID: "X", Class: models.AssetClassStock, Price: 100},
		"Y": {ID: "Y", Class: models.AssetClassCrypto, Price: 100},
	})
	buyTx(t, ledger, "X", models.AssetClassStock, 3, 100)
	buyTx(t, ledger, "Y", models.AssetClassCrypto, 1, 100)

	alloc, err := svc.Allocation(context.Background())
	if err != nil {
		t.Fatalf("allocation failed: %v", err)
	}
	if alloc.Stocks != 75 || alloc.Crypto != 25 || alloc.Insurance != 0 {
		t.Errorf("expected 75/25/0, got %d/%d/%d", alloc.Stocks, alloc.Crypto, alloc.Insurance)
	}
}

func TestMonthOverMonthChange(t *testing.T) {
	svc, _, repo := newReportFixture(t, nil)
	seed := []models.PortfolioSnapshot{
		{Date: "2025-05-01", TotalValue: 1000, StocksValue: 800, CryptoValue: 200},
		{Date: "2025-06-01", TotalValue: 1100, StocksValue: 850, CryptoValue: 250},
	}
	for i := range seed {
		if err := repo.Upsert(&seed[i]); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	change, err := svc.MonthOverMonthChange()
	if err != nil {
		t.Fatalf("monthly change failed: %v", err)
	}
	if change.Total != 10.00 {
		t.Errorf("expected total change 10.00, got %g", change.Total)
	}
	if change.Stocks != 6.25 {
		t.Errorf("expected stocks change 6.25, got %g", change.Stocks)
	}
	if change.Crypto != 25.00 {
		t.Errorf("expected crypto change 25.00, got %g", change.Crypto)
	}
	// Insurance went 0 -> 0: previous zero means change reports zero.
	if change.Insurance != 0 {
		t.Errorf("expected insurance change 0, got %g", change.Insurance)
	}
}

func TestMonthOverMonthChangeZeroPrevious(t *testing.T) {
	svc, _, repo := newReportFixture(t, nil)
	seed := []models.PortfolioSnapshot{
		{Date: "2025-05-01", TotalValue: 0},
		{Date: "2025-06-01", TotalValue: 5000, StocksValue: 5000},
	}
	for i := range seed {
		if err := repo.Upsert(&seed[i]); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	change, err := svc.MonthOverMonthChange()
	if err != nil {
		t.Fatalf("monthly change failed: %v", err)
	}
	if change.Total != 0 {
		t.Errorf("division by a zero previous value must report 0, got %g", change.Total)
	}
}

func TestMonthOverMonthChangeNeedsTwoSnapshots(t *testing.T) {
	svc, _, repo := newReportFixture(t, nil)

	change, err := svc.MonthOverMonthChange()
	if err != nil {
		t.Fatalf("monthly change failed: %v", err)
	}
	if *change != (models.MonthlyChange{}) {
		t.Errorf("no snapshots must yield zeros, got %+v", change)
	}

	if err := repo.Upsert(&models.PortfolioSnapshot{Date: "2025-06-01", TotalValue: 1000}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	change, err = svc.MonthOverMonthChange()
	if err != nil {
		t.Fatalf("monthly change failed: %v", err)
	}
	if *change != (models.MonthlyChange{}) {
		t.Errorf("one snapshot must yield zeros, got %+v", change)
	}
}

func TestBestPerformer(t *testing.T) {
	svc, ledger, _ := newReportFixture(t, map[string]models.MarketQuote{
		"slow": {ID: "slow", Class: models.AssetClassStock, Price: 105},
		"fast": {ID: "fast", Class: models.AssetClassCrypto, Price: 200},
	})
	buyTx(t, ledger, "slow", models.AssetClassStock, 10, 100)
	buyTx(t, ledger, "fast", models.AssetClassCrypto, 1, 100)

	best, err := svc.BestPerformer(context.Background())
	if err != nil {
		t.Fatalf("best performer failed: %v", err)
	}
	if best == nil || best.AssetID != "fast" {
		t.Fatalf("expected fast as best performer, got %+v", best)
	}
	if !almostEqual(best.ProfitPercentage, 100, 1e-9) {
		t.Errorf("expected 100%% profit, got %g", best.ProfitPercentage)
	}
}

func TestBestPerformerEmpty(t *testing.T) {
	svc, _, _ := newReportFixture(t, nil)
	best, err := svc.BestPerformer(context.Background())
	if err != nil {
		t.Fatalf("best performer failed: %v", err)
	}
	if best != nil {
		t.Errorf("expected nil for empty portfolio, got %+v", best)
	}
}
