package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

func TestCoinGeckoFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("vs_currency"); got != "inr" {
			t.Errorf("expected vs_currency=inr, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":5850000,"market_cap":115000000000000,"total_volume":2500000000000,"price_change_percentage_24h":2.4},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":310000,"market_cap":37000000000000,"total_volume":1200000000000,"price_change_percentage_24h":-1.1}
		]`))
	}))
	defer server.Close()

	client := NewCoinGeckoClientWithBaseURL(server.URL)
	quotes, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}

	btc := quotes[0]
	if btc.ID != "bitcoin" || btc.Ticker != "BTC" || btc.Class != models.AssetClassCrypto {
		t.Errorf("unexpected quote identity: %+v", btc)
	}
	if btc.Price != 5850000 || btc.Change24h != 2.4 {
		t.Errorf("unexpected quote figures: %+v", btc)
	}
	if btc.MarketCap != "115.0T" {
		t.Errorf("expected market cap 115.0T, got %s", btc.MarketCap)
	}
	if btc.Volume != "2.5T" {
		t.Errorf("expected volume 2.5T, got %s", btc.Volume)
	}
}

func TestCoinGeckoFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewCoinGeckoClientWithBaseURL(server.URL)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for a 429 response")
	}
}

func TestAlphaVantageFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "GLOBAL_QUOTE" {
			t.Errorf("expected function=GLOBAL_QUOTE, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Global Quote":{
			"01. symbol":"RELIANCE.BSE",
			"05. price":"2954.3500",
			"06. volume":"4821345",
			"09. change":"31.1000",
			"10. change percent":"1.0640%"
		}}`))
	}))
	defer server.Close()

	client := NewAlphaVantageClientWithBaseURL(server.URL, []string{"RELIANCE.BSE"})
	quotes, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}

	q := quotes[0]
	if q.ID != "RELIANCE.BSE" || q.Ticker != "RELIANCE" || q.Class != models.AssetClassStock {
		t.Errorf("unexpected quote identity: %+v", q)
	}
	if q.Price != 2954.35 {
		t.Errorf("expected price 2954.35, got %g", q.Price)
	}
	if q.Change24h != 1.064 {
		t.Errorf("expected change 1.064, got %g", q.Change24h)
	}
	if q.Volume != "4.8M" {
		t.Errorf("expected volume 4.8M, got %s", q.Volume)
	}
}

func TestAlphaVantageFetchPartialFailure(t *testing.T) {
	// One symbol answers, the other returns the empty payload the API sends
	// when throttled. The failing symbol falls back to its catalog entry.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("symbol") == "RELIANCE.BSE" {
			w.Write([]byte(`{"Global Quote":{"01. symbol":"RELIANCE.BSE","05. price":"2954.35","06. volume":"100","09. change":"0","10. change percent":"0.00%"}}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewAlphaVantageClientWithBaseURL(server.URL, []string{"RELIANCE.BSE", "TCS.BSE"})
	quotes, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected live + catalog quote, got %d", len(quotes))
	}
	if quotes[0].ID != "RELIANCE.BSE" || quotes[1].ID != "TCS.BSE" {
		t.Errorf("unexpected quotes: %+v", quotes)
	}
}

func TestAlphaVantageFetchAllFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewAlphaVantageClientWithBaseURL(server.URL, []string{"RELIANCE.BSE"})
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected an error when no symbol produced a live quote")
	}
}

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5e12, "1.5T"},
		{2.3e9, "2.3B"},
		{4.2e6, "4.2M"},
		{950, "950"},
	}
	for _, tt := range tests {
		if got := formatLargeNumber(tt.in); got != tt.want {
			t.Errorf("formatLargeNumber(%g) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
