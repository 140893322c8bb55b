package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

const (
	alphaVantageBaseURL        = "https://www.alphavantage.co"
	alphaVantageDefaultTimeout = 10 * time.Second
)

// defaultStockSymbols is the BSE universe the dashboard tracks.
var defaultStockSymbols = []string{
	"RELIANCE.BSE", "HDFCBANK.BSE", "INFY.BSE", "TCS.BSE", "ICICIBANK.BSE",
}

// AlphaVantageClient fetches stock quotes via the GLOBAL_QUOTE endpoint,
// one request per symbol.
type AlphaVantageClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
	symbols []string
	limiter *rate.Limiter
}

type alphaVantageResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

func NewAlphaVantageClient(apiKey string, symbols []string) *AlphaVantageClient {
	if len(symbols) == 0 {
		symbols = defaultStockSymbols
	}
	return &AlphaVantageClient{
		client:  &http.Client{Timeout: alphaVantageDefaultTimeout},
		apiKey:  apiKey,
		baseURL: alphaVantageBaseURL,
		symbols: symbols,
		// Free tier allows 5 requests/minute.
		limiter: rate.NewLimiter(rate.Every(12*time.Second), 1),
	}
}

// NewAlphaVantageClientWithBaseURL is used by tests to point at a stub server.
func NewAlphaVantageClientWithBaseURL(baseURL string, symbols []string) *AlphaVantageClient {
	c := NewAlphaVantageClient("demo", symbols)
	c.baseURL = baseURL
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

// Fetch returns a quote per configured symbol. Symbols that fail
// individually fall back to their catalog entry; Fetch errors only when no
// symbol produced data at all.
func (c *AlphaVantageClient) Fetch(ctx context.Context) ([]models.MarketQuote, error) {
	catalog := make(map[string]models.MarketQuote)
	for _, q := range StocksCatalog() {
		catalog[q.ID] = q
	}

	var quotes []models.MarketQuote
	live := 0
	for _, symbol := range c.symbols {
		q, err := c.fetchSymbol(ctx, symbol)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("market: alphavantage quote for %s failed: %v", symbol, err)
			if fallback, ok := catalog[symbol]; ok {
				quotes = append(quotes, fallback)
			}
			continue
		}
		quotes = append(quotes, q)
		live++
	}

	if live == 0 {
		return nil, fmt.Errorf("alphavantage: no live quotes for %d symbols", len(c.symbols))
	}
	return quotes, nil
}

func (c *AlphaVantageClient) fetchSymbol(ctx context.Context, symbol string) (models.MarketQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.MarketQuote{}, err
	}

	reqURL := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.MarketQuote{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.MarketQuote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.MarketQuote{}, fmt.Errorf("alphavantage returned status %d", resp.StatusCode)
	}

	var payload alphaVantageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.MarketQuote{}, fmt.Errorf("failed to decode alphavantage response: %w", err)
	}
	if payload.GlobalQuote.Price == "" {
		return models.MarketQuote{}, fmt.Errorf("alphavantage returned no quote for %s", symbol)
	}

	price, err := strconv.ParseFloat(payload.GlobalQuote.Price, 64)
	if err != nil {
		return models.MarketQuote{}, fmt.Errorf("invalid price %q for %s", payload.GlobalQuote.Price, symbol)
	}
	changePct, _ := strconv.ParseFloat(strings.TrimSuffix(payload.GlobalQuote.ChangePercent, "%"), 64)

	ticker := strings.SplitN(symbol, ".", 2)[0]
	name := ticker
	if cat, ok := stockName(symbol); ok {
		name = cat
	}

	quote := models.MarketQuote{
		ID:        symbol,
		Name:      name,
		Ticker:    ticker,
		Class:     models.AssetClassStock,
		Price:     price,
		Change24h: changePct,
		MarketCap: "N/A",
	}
	if vol, err := strconv.ParseFloat(payload.GlobalQuote.Volume, 64); err == nil {
		quote.Volume = formatLargeNumber(vol)
	}
	return quote, nil
}

func stockName(symbol string) (string, bool) {
	for _, q := range StocksCatalog() {
		if q.ID == symbol {
			return q.Name, true
		}
	}
	return "", false
}
