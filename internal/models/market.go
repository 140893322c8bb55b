package models

// MarketQuote is the price oracle's answer for one asset. The same shape is
// served whether the data came from a live API, the static fallback catalog,
// or the last-known cache.
type MarketQuote struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Ticker    string     `json:"ticker"`
	Class     AssetClass `json:"class"`
	Price     float64    `json:"price"`
	Change24h float64    `json:"change_24h"`
	MarketCap string     `json:"market_cap,omitempty"`
	Volume    string     `json:"volume,omitempty"`
	// Stale marks a quote whose price did not come from a successful live
	// fetch (fallback catalog, or last cached before an outage).
	Stale bool `json:"stale,omitempty"`
}

// Trader is one leaderboard entry of the top-traders feed.
type Trader struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	ReturnPct float64 `json:"return_pct"`
	Followers int     `json:"followers"`
}
