package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

// QuoteProvider is the price oracle the aggregator consumes. FetchPrices
// pulls live quotes (with fallback behavior behind it); Lookup serves the
// last known quote for a single asset, marked stale.
type QuoteProvider interface {
	FetchPrices(ctx context.Context, class models.AssetClass) ([]models.MarketQuote, error)
	Lookup(assetID string) (models.MarketQuote, bool)
}

// QuoteLookup resolves an asset id to a quote. ComputePositions stays a
// pure function by taking the lookup as an argument.
type QuoteLookup func(assetID string) (models.MarketQuote, bool)

// PortfolioService turns the transaction ledger plus live prices into
// current holdings, and records the buy/sell/cancel actions that feed the
// ledger.
type PortfolioService struct {
	ledger *LedgerService
	oracle QuoteProvider

	// tradeMu serializes the check-then-append trade paths. Without it two
	// overlapping sells could both pass the holdings preflight and poison
	// the append-only ledger with an oversell.
	tradeMu sync.Mutex
}

func NewPortfolioService(ledger *LedgerService, oracle QuoteProvider) *PortfolioService {
	return &PortfolioService{
		ledger: ledger,
		oracle: oracle,
	}
}

// Current derives holdings from the ledger priced against the oracle's last
// known quotes. It never performs network calls; Refresh does.
func (s *PortfolioService) Current(ctx context.Context) (*models.Portfolio, error) {
	txs, err := s.ledger.All()
	if err != nil {
		return nil, err
	}
	return ComputePositions(txs, s.oracle.Lookup)
}

// Refresh re-pulls prices for both market classes and recomputes holdings.
// A failed fetch degrades to the fallback catalog inside the oracle, so the
// valuation itself cannot fail on network errors.
func (s *PortfolioService) Refresh(ctx context.Context) (*models.Portfolio, error) {
	fresh := make(map[string]models.MarketQuote)
	for _, class := range []models.AssetClass{models.AssetClassStock, models.AssetClassCrypto} {
		quotes, err := s.oracle.FetchPrices(ctx, class)
		if err != nil {
			log.Printf("portfolio: price refresh for %s failed: %v", class, err)
			continue
		}
		for _, q := range quotes {
			fresh[q.ID] = q
		}
	}

	txs, err := s.ledger.All()
	if err != nil {
		return nil, err
	}
	lookup := func(assetID string) (models.MarketQuote, bool) {
		if q, ok := fresh[assetID]; ok {
			return q, true
		}
		return s.oracle.Lookup(assetID)
	}
	return ComputePositions(txs, lookup)
}

// Buy records a purchase. Quantity is forced to 1 for insurance (one policy
// per transaction, unit price is the premium). A zero unit price means
// "buy at market" and resolves through the oracle.
func (s *PortfolioService) Buy(ctx context.Context, req models.BuyRequest) (*models.Transaction, error) {
	if !req.AssetClass.Valid() {
		return nil, fmt.Errorf("%w: unknown asset class %q", ErrValidation, req.AssetClass)
	}

	quantity := req.Quantity
	if req.AssetClass == models.AssetClassInsurance {
		quantity = 1
	}

	price := req.UnitPrice
	if price == 0 && req.AssetClass != models.AssetClassInsurance {
		quote, ok := s.oracle.Lookup(req.AssetID)
		if !ok {
			return nil, fmt.Errorf("%w: no price available for %s", ErrValidation, req.AssetID)
		}
		price = quote.Price
	}

	tx := &models.Transaction{
		AssetID:    req.AssetID,
		AssetName:  req.AssetName,
		AssetClass: req.AssetClass,
		Kind:       models.KindBuy,
		Quantity:   quantity,
		UnitPrice:  price,
	}
	if err := s.ledger.Record(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Sell records a sale after verifying the held quantity covers it. A sell
// that would drive holdings negative is rejected with
// ErrInsufficientHoldings and leaves the ledger untouched.
func (s *PortfolioService) Sell(ctx context.Context, req models.SellRequest) (*models.Transaction, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	s.tradeMu.Lock()
	defer s.tradeMu.Unlock()

	portfolio, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	pos := findPosition(portfolio, req.AssetID)
	if pos == nil || pos.Quantity < req.Quantity {
		held := 0.0
		if pos != nil {
			held = pos.Quantity
		}
		return nil, fmt.Errorf("%w: have %g of %s, tried to sell %g",
			ErrInsufficientHoldings, held, req.AssetID, req.Quantity)
	}

	price := req.UnitPrice
	if price == 0 {
		price = pos.CurrentPrice
	}

	tx := &models.Transaction{
		AssetID:    pos.AssetID,
		AssetName:  pos.AssetName,
		AssetClass: pos.AssetClass,
		Kind:       models.KindSell,
		Quantity:   req.Quantity,
		UnitPrice:  price,
	}
	if err := s.ledger.Record(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// CancelPolicy records a cancel event for one held insurance policy,
// identified by the id of its originating buy transaction.
func (s *PortfolioService) CancelPolicy(ctx context.Context, policyID string) (*models.Transaction, error) {
	s.tradeMu.Lock()
	defer s.tradeMu.Unlock()

	portfolio, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	var policy *models.InsurancePolicy
	for i := range portfolio.Insurance {
		if portfolio.Insurance[i].PolicyID == policyID {
			policy = &portfolio.Insurance[i]
			break
		}
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: policy %s", ErrNotFound, policyID)
	}

	tx := &models.Transaction{
		AssetID:    policy.AssetID,
		AssetName:  policy.AssetName,
		AssetClass: models.AssetClassInsurance,
		Kind:       models.KindCancel,
		PolicyID:   policy.PolicyID,
	}
	if err := s.ledger.Record(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func findPosition(p *models.Portfolio, assetID string) *models.Position {
	for i := range p.Stocks {
		if p.Stocks[i].AssetID == assetID {
			return &p.Stocks[i]
		}
	}
	for i := range p.Crypto {
		if p.Crypto[i].AssetID == assetID {
			return &p.Crypto[i]
		}
	}
	return nil
}

// holdingAcc accumulates one asset's fold state. cost is the total cost of
// the remaining units, so avg price is cost/qty at any point.
type holdingAcc struct {
	assetID   string
	assetName string
	class     models.AssetClass
	qty       decimal.Decimal
	cost      decimal.Decimal
}

// ComputePositions folds the transaction ledger chronologically into current
// holdings and overlays quotes from lookup. It is a pure function: same
// inputs, same output, no hidden state.
//
// Cost basis is a weighted average: a buy folds its cost into the running
// total, a sell removes quantity at the current average and leaves the
// average of the remainder unchanged. Lot-level (FIFO/LIFO) detail is
// deliberately not tracked. A position that reaches exactly zero quantity is
// removed. Insurance purchases stay individual line items until a cancel
// event names their originating transaction.
func ComputePositions(transactions []models.Transaction, lookup QuoteLookup) (*models.Portfolio, error) {
	txs := make([]models.Transaction, len(transactions))
	copy(txs, transactions)
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Timestamp != txs[j].Timestamp {
			return txs[i].Timestamp < txs[j].Timestamp
		}
		return txs[i].Seq < txs[j].Seq
	})

	accs := make(map[string]*holdingAcc)
	var order []string
	var policies []models.InsurancePolicy

	for _, tx := range txs {
		if tx.AssetClass == models.AssetClassInsurance {
			switch tx.Kind {
			case models.KindBuy:
				policies = append(policies, models.InsurancePolicy{
					PolicyID:    tx.ID,
					AssetID:     tx.AssetID,
					AssetName:   tx.AssetName,
					Premium:     tx.UnitPrice,
					PurchasedAt: tx.Timestamp,
				})
			case models.KindCancel:
				for i := range policies {
					if policies[i].PolicyID == tx.PolicyID {
						policies = append(policies[:i], policies[i+1:]...)
						break
					}
				}
			}
			continue
		}

		qty := decimal.NewFromFloat(tx.Quantity)
		price := decimal.NewFromFloat(tx.UnitPrice)

		switch tx.Kind {
		case models.KindBuy:
			a, ok := accs[tx.AssetID]
			if !ok {
				a = &holdingAcc{assetID: tx.AssetID, assetName: tx.AssetName, class: tx.AssetClass}
				accs[tx.AssetID] = a
				order = append(order, tx.AssetID)
			}
			a.qty = a.qty.Add(qty)
			a.cost = a.cost.Add(qty.Mul(price))
		case models.KindSell:
			a, ok := accs[tx.AssetID]
			if !ok || qty.GreaterThan(a.qty) {
				return nil, fmt.Errorf("%w: asset %s", ErrInsufficientHoldings, tx.AssetID)
			}
			// Remove the sold units at the running average so the
			// average of the remainder is untouched.
			avg := a.cost.Div(a.qty)
			a.qty = a.qty.Sub(qty)
			a.cost = a.cost.Sub(avg.Mul(qty))
			if a.qty.IsZero() {
				delete(accs, tx.AssetID)
			}
		}
	}

	p := &models.Portfolio{
		Stocks:    []models.Position{},
		Crypto:    []models.Position{},
		Insurance: policies,
	}
	if p.Insurance == nil {
		p.Insurance = []models.InsurancePolicy{}
	}

	for _, id := range order {
		a, ok := accs[id]
		if !ok {
			continue // fully sold
		}
		pos := buildPosition(a, lookup)
		switch a.class {
		case models.AssetClassStock:
			p.Stocks = append(p.Stocks, pos)
			p.StocksValue += pos.TotalValue
		case models.AssetClassCrypto:
			p.Crypto = append(p.Crypto, pos)
			p.CryptoValue += pos.TotalValue
		}
	}

	for _, policy := range p.Insurance {
		p.InsuranceValue += policy.Premium
	}
	p.TotalValue = p.StocksValue + p.CryptoValue + p.InsuranceValue

	return p, nil
}

func buildPosition(a *holdingAcc, lookup QuoteLookup) models.Position {
	avg := decimal.Zero
	if !a.qty.IsZero() {
		avg = a.cost.Div(a.qty)
	}

	pos := models.Position{
		AssetID:     a.assetID,
		AssetName:   a.assetName,
		AssetClass:  a.class,
		Quantity:    a.qty.InexactFloat64(),
		AvgBuyPrice: avg.InexactFloat64(),
		CostBasis:   a.cost.InexactFloat64(),
	}

	price := avg
	if lookup != nil {
		if quote, ok := lookup(a.assetID); ok {
			price = decimal.NewFromFloat(quote.Price)
			pos.Change24h = quote.Change24h
			pos.Stale = quote.Stale
		} else {
			// No quote at all: value at cost and flag it.
			pos.Stale = true
		}
	} else {
		pos.Stale = true
	}

	value := a.qty.Mul(price)
	pos.CurrentPrice = price.InexactFloat64()
	pos.TotalValue = value.InexactFloat64()
	pos.Profit = value.Sub(a.cost).InexactFloat64()
	if avg.IsZero() {
		pos.ProfitPercentage = 0
	} else {
		pos.ProfitPercentage = price.Div(avg).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return pos
}
