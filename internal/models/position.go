package models

// Position is the derived aggregate holding for one stock or crypto asset.
// Positions are rebuilt from the transaction ledger on every valuation pass
// and hold no identity beyond AssetID.
type Position struct {
	AssetID    string     `json:"asset_id"`
	AssetName  string     `json:"asset_name"`
	AssetClass AssetClass `json:"asset_class"`
	Quantity   float64    `json:"quantity"`
	// AvgBuyPrice is the weighted-average cost per unit across remaining
	// holdings. Sells never change it.
	AvgBuyPrice float64 `json:"avg_buy_price"`
	// CostBasis is quantity * avg buy price, the P&L denominator.
	CostBasis        float64 `json:"cost_basis"`
	CurrentPrice     float64 `json:"current_price"`
	Change24h        float64 `json:"change_24h"`
	TotalValue       float64 `json:"total_value"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
	// Stale is set when no fresh quote was available and the price shown
	// is the last known (or cost) value.
	Stale bool `json:"stale"`
}

// InsurancePolicy is a single purchased policy. Unlike stock and crypto,
// insurance holdings are not quantity-aggregated: every purchase is its own
// line item until cancelled.
type InsurancePolicy struct {
	PolicyID    string  `json:"policy_id"` // id of the originating buy transaction
	AssetID     string  `json:"asset_id"`
	AssetName   string  `json:"asset_name"`
	Premium     float64 `json:"premium"`
	PurchasedAt int64   `json:"purchased_at"` // milliseconds since epoch
}

// Portfolio is the full derived holdings view plus value totals per class.
type Portfolio struct {
	Stocks    []Position        `json:"stocks"`
	Crypto    []Position        `json:"crypto"`
	Insurance []InsurancePolicy `json:"insurance"`

	TotalValue     float64 `json:"total_value"`
	StocksValue    float64 `json:"stocks_value"`
	CryptoValue    float64 `json:"crypto_value"`
	InsuranceValue float64 `json:"insurance_value"`
}
