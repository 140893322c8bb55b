package models

import "time"

// Balance is the user's INR cash balance. A single row; deposits and
// withdrawals replace Amount.
type Balance struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Amount    float64   `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BalanceRequest struct {
	Amount float64 `json:"amount"`
}
