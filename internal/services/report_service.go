package services

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
	"github.com/arjunmehra/folio-tracker/backend/internal/repository"
)

// ReportService derives read-only views over snapshot history: allocation
// breakdowns, month-over-month change, and the best performing holding.
// All methods are pure reads with no side effects.
type ReportService struct {
	snapshots repository.SnapshotRepository
	portfolio *PortfolioService
}

func NewReportService(snapshots repository.SnapshotRepository, portfolio *PortfolioService) *ReportService {
	return &ReportService{
		snapshots: snapshots,
		portfolio: portfolio,
	}
}

// Allocation returns each class's integer percentage share of total value,
// from the latest snapshot, or from live positions when no snapshot exists
// yet. A zero total yields all zeros instead of dividing by zero. Rounding
// may leave the sum one point off 100.
func (r *ReportService) Allocation(ctx context.Context) (*models.AssetAllocation, error) {
	var total, stocks, crypto, insurance float64

	snaps, err := r.snapshots.List()
	if err != nil {
		return nil, err
	}
	if len(snaps) > 0 {
		last := snaps[len(snaps)-1]
		total, stocks, crypto, insurance = last.TotalValue, last.StocksValue, last.CryptoValue, last.InsuranceValue
	} else {
		p, err := r.portfolio.Current(ctx)
		if err != nil {
			return nil, err
		}
		total, stocks, crypto, insurance = p.TotalValue, p.StocksValue, p.CryptoValue, p.InsuranceValue
	}

	if total == 0 {
		return &models.AssetAllocation{}, nil
	}
	return &models.AssetAllocation{
		Stocks:    int(math.Round(stocks / total * 100)),
		Crypto:    int(math.Round(crypto / total * 100)),
		Insurance: int(math.Round(insurance / total * 100)),
	}, nil
}

// MonthOverMonthChange compares the two most recent snapshots per class.
// The original app had two divergent implementations of this (one against a
// separately stored "last month" snapshot); this service consistently uses
// the two-most-recent-snapshot policy. Fewer than two snapshots yields all
// zeros, as does any class whose previous value was zero.
func (r *ReportService) MonthOverMonthChange() (*models.MonthlyChange, error) {
	snaps, err := r.snapshots.List()
	if err != nil {
		return nil, err
	}
	if len(snaps) < 2 {
		return &models.MonthlyChange{}, nil
	}

	prev := snaps[len(snaps)-2]
	curr := snaps[len(snaps)-1]
	return &models.MonthlyChange{
		Total:     pctChange(curr.TotalValue, prev.TotalValue),
		Stocks:    pctChange(curr.StocksValue, prev.StocksValue),
		Crypto:    pctChange(curr.CryptoValue, prev.CryptoValue),
		Insurance: pctChange(curr.InsuranceValue, prev.InsuranceValue),
	}, nil
}

// BestPerformer returns the stock or crypto position with the highest
// profit percentage, or nil when nothing is held.
func (r *ReportService) BestPerformer(ctx context.Context) (*models.Position, error) {
	p, err := r.portfolio.Current(ctx)
	if err != nil {
		return nil, err
	}

	var best *models.Position
	consider := func(pos models.Position) {
		if best == nil || pos.ProfitPercentage > best.ProfitPercentage {
			c := pos
			best = &c
		}
	}
	for _, pos := range p.Stocks {
		consider(pos)
	}
	for _, pos := range p.Crypto {
		consider(pos)
	}
	return best, nil
}

// pctChange is (curr-prev)/prev*100 rounded to two decimals; 0 when prev is 0.
func pctChange(curr, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	d := decimal.NewFromFloat(curr).
		Sub(decimal.NewFromFloat(prev)).
		Div(decimal.NewFromFloat(prev)).
		Mul(decimal.NewFromInt(100))
	return d.Round(2).InexactFloat64()
}
