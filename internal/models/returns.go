package models

import "time"

// CashFlow is a single dated flow for return calculations.
// Outflows (purchases) are negative; the terminal valuation is positive.
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// ReturnsResult holds the portfolio return metrics, each as a percentage
// (an AbsoluteROI of 10 means 10%). A metric that cannot be computed is
// reported as 0.
type ReturnsResult struct {
	AbsoluteROI   float64   `json:"absolute_roi"`
	CAGR          float64   `json:"cagr"`
	XIRR          float64   `json:"xirr"`
	TotalInvested float64   `json:"total_invested"`
	CurrentValue  float64   `json:"current_value"`
	LotCount      int       `json:"lot_count"`
	ComputedAt    time.Time `json:"computed_at"`
}
