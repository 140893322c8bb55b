// Package market is the price oracle: it serves current prices and 24h
// changes for stocks and crypto from live public APIs, degrading to a static
// catalog when a fetch fails, and keeps a bounded last-known cache so
// holdings can be valued through outages.
package market

import (
	"context"
	"errors"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/arjunmehra/folio-tracker/backend/internal/metrics"
	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

// lastKnownCacheSize bounds the last-known quote cache. The tracked
// universe is small (tens of assets), so this is generous.
const lastKnownCacheSize = 256

// ErrUnknownClass is returned for an asset class the oracle has no source for.
var ErrUnknownClass = errors.New("market: unknown asset class")

// Source fetches live quotes for one asset class.
type Source interface {
	Fetch(ctx context.Context) ([]models.MarketQuote, error)
}

// Oracle serves quotes per asset class. Fallback order on a live fetch
// failure: static catalog, marked stale. Lookup additionally serves
// individual last-known quotes for assets missing from the latest fetch,
// preserving whether each came from a live fetch or a fallback.
type Oracle struct {
	crypto Source
	stocks Source

	lastKnown *lru.Cache[string, models.MarketQuote]
}

func NewOracle(crypto, stocks Source) *Oracle {
	cache, err := lru.New[string, models.MarketQuote](lastKnownCacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Oracle{
		crypto:    crypto,
		stocks:    stocks,
		lastKnown: cache,
	}
}

// FetchPrices returns current quotes for the given class. A live API failure
// is not an error to the caller: the static catalog is served instead and
// the failure is logged and counted.
func (o *Oracle) FetchPrices(ctx context.Context, class models.AssetClass) ([]models.MarketQuote, error) {
	var (
		src      Source
		fallback []models.MarketQuote
		name     string
	)
	switch class {
	case models.AssetClassCrypto:
		src, fallback, name = o.crypto, CryptoCatalog(), "coingecko"
	case models.AssetClassStock:
		src, fallback, name = o.stocks, StocksCatalog(), "alphavantage"
	case models.AssetClassInsurance:
		// Insurance products have no live market; the catalog is the source.
		return InsuranceCatalog(), nil
	default:
		return nil, ErrUnknownClass
	}

	quotes, err := src.Fetch(ctx)
	if err != nil || len(quotes) == 0 {
		if err != nil {
			log.Printf("market: %s fetch failed, serving fallback catalog: %v", name, err)
			metrics.QuoteFetchFailures.WithLabelValues(name).Inc()
		}
		quotes = fallback
		// Catalog prices stand in for a live fetch that did not happen.
		for i := range quotes {
			quotes[i].Stale = true
		}
	}

	for _, q := range quotes {
		o.lastKnown.Add(q.ID, q)
	}
	return quotes, nil
}

// Lookup returns the last known quote for an asset id. The stale flag
// carried on the quote reflects its origin: false when it was cached from a
// successful live fetch, true when it was served from the fallback catalog.
func (o *Oracle) Lookup(assetID string) (models.MarketQuote, bool) {
	return o.lastKnown.Get(assetID)
}
