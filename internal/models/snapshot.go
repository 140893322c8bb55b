package models

import "time"

// PortfolioSnapshot stores one portfolio valuation per calendar day for
// historical performance tracking. Date is the device-local day key; a
// second valuation on the same day replaces the first.
type PortfolioSnapshot struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Date           string    `json:"date" gorm:"uniqueIndex;not null"` // YYYY-MM-DD, local time
	TotalValue     float64   `json:"total_value"`
	StocksValue    float64   `json:"stocks_value"`
	CryptoValue    float64   `json:"crypto_value"`
	InsuranceValue float64   `json:"insurance_value"`
	CreatedAt      time.Time `json:"created_at"`
}

// PerformancePoint is one charting entry of the performance series,
// oldest first.
type PerformancePoint struct {
	Label string  `json:"label"` // short month name
	Date  string  `json:"date,omitempty"`
	Value float64 `json:"value"`
}

// AssetAllocation is each class's integer percentage share of total value.
// Rounding may cause the sum to drift from 100 by one point.
type AssetAllocation struct {
	Stocks    int `json:"stocks"`
	Crypto    int `json:"crypto"`
	Insurance int `json:"insurance"`
}

// MonthlyChange is the percentage change between the two most recent
// snapshots, per class, rounded to two decimals.
type MonthlyChange struct {
	Total     float64 `json:"total"`
	Stocks    float64 `json:"stocks"`
	Crypto    float64 `json:"crypto"`
	Insurance float64 `json:"insurance"`
}
