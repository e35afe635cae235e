package models

import "time"

// LotStatus tracks a lot through its lifecycle.
type LotStatus string

const (
	LotStatusHold   LotStatus = "hold"
	LotStatusSold   LotStatus = "sold"
	LotStatusGifted LotStatus = "gifted"
)

// validLotStatuses lists all accepted lot statuses.
var validLotStatuses = map[LotStatus]bool{
	LotStatusHold:   true,
	LotStatusSold:   true,
	LotStatusGifted: true,
}

// ValidLotStatus returns true if s is a valid lot status.
func ValidLotStatus(s LotStatus) bool {
	return validLotStatuses[s]
}

// Lot represents one recorded purchase of metal, tracked individually.
type Lot struct {
	ID           string    `json:"id"`
	Metal        string    `json:"metal"`
	Purity       float64   `json:"purity"` // fraction, e.g. 0.9999
	WeightGrams  float64   `json:"weight_grams"`
	TotalPaid    float64   `json:"total_paid"`
	PurchaseDate time.Time `json:"purchase_date"`
	Status       LotStatus `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FineWeightGrams returns the pure-metal weight of the lot.
func (l Lot) FineWeightGrams() float64 {
	return l.WeightGrams * l.Purity
}
