package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

const (
	coinGeckoBaseURL        = "https://api.coingecko.com/api/v3"
	coinGeckoDefaultTimeout = 10 * time.Second
)

// CoinGeckoClient fetches crypto market data from the CoinGecko public API.
type CoinGeckoClient struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// coinGeckoMarket mirrors one entry of the /coins/markets response.
type coinGeckoMarket struct {
	ID               string  `json:"id"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	CurrentPrice     float64 `json:"current_price"`
	MarketCap        float64 `json:"market_cap"`
	TotalVolume      float64 `json:"total_volume"`
	PriceChange24hPc float64 `json:"price_change_percentage_24h"`
}

func NewCoinGeckoClient() *CoinGeckoClient {
	return &CoinGeckoClient{
		client:  &http.Client{Timeout: coinGeckoDefaultTimeout},
		baseURL: coinGeckoBaseURL,
		// CoinGecko's free tier allows roughly 10-30 calls/minute.
		limiter: rate.NewLimiter(rate.Every(6*time.Second), 2),
	}
}

// NewCoinGeckoClientWithBaseURL is used by tests to point at a stub server.
func NewCoinGeckoClientWithBaseURL(baseURL string) *CoinGeckoClient {
	c := NewCoinGeckoClient()
	c.baseURL = baseURL
	return c
}

func (c *CoinGeckoClient) Fetch(ctx context.Context) ([]models.MarketQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := c.baseURL + "/coins/markets?vs_currency=inr&order=market_cap_desc&per_page=20&page=1&sparkline=false&price_change_percentage=24h"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	var markets []coinGeckoMarket
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, fmt.Errorf("failed to decode coingecko response: %w", err)
	}

	quotes := make([]models.MarketQuote, 0, len(markets))
	for _, m := range markets {
		quotes = append(quotes, models.MarketQuote{
			ID:        m.ID,
			Name:      m.Name,
			Ticker:    strings.ToUpper(m.Symbol),
			Class:     models.AssetClassCrypto,
			Price:     m.CurrentPrice,
			Change24h: m.PriceChange24hPc,
			MarketCap: formatLargeNumber(m.MarketCap),
			Volume:    formatLargeNumber(m.TotalVolume),
		})
	}
	return quotes, nil
}

// formatLargeNumber renders market cap / volume figures the way the
// dashboard displays them (1.2T, 3.4B, 5.6M).
func formatLargeNumber(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.1fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
