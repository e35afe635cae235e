package models

import "time"

// TrendSignal is the discrete signal emitted by the trend engine.
type TrendSignal string

const (
	SignalBuyTrendReclaim TrendSignal = "BUY_TREND_RECLAIM"
	SignalBuySafeZone     TrendSignal = "BUY_SAFE_ZONE"
	SignalHoldExtended    TrendSignal = "HOLD_EXTENDED"
	SignalHoldUptrend     TrendSignal = "HOLD_UPTREND"
	SignalSellReduce      TrendSignal = "SELL_REDUCE"
	SignalHoldWatchlist   TrendSignal = "HOLD_WATCHLIST"
)

// DMAType labels which moving average was used as the main DMA.
type DMAType string

const (
	DMA200 DMAType = "200DMA"
	DMA100 DMAType = "100DMA"
)

// TechnicalMetrics holds the derived trend metrics. Recomputed on demand,
// never persisted.
type TechnicalMetrics struct {
	LastPrice          float64 `json:"last_price"`
	SMA50              float64 `json:"sma_50"`
	SMA200             float64 `json:"sma_200"`
	MainDMA            float64 `json:"main_dma"`
	DMAType            DMAType `json:"dma_type"`
	DistancePct        float64 `json:"distance_pct"`
	RegimeAboveDays    int     `json:"regime_above_days"`
	RegimeBelowDays    int     `json:"regime_below_days"`
	CrossedWithin5Days bool    `json:"crossed_within_5_days"`
}

// OverlayPoint is one day of the charting overlay: the price together with the
// moving averages as they were computable on that day (prefix data only).
type OverlayPoint struct {
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	SMA50  float64   `json:"sma_50,omitempty"`
	SMA200 float64   `json:"sma_200,omitempty"`
}

// TrendReport is the full output of the trend signal engine.
type TrendReport struct {
	Metal          string           `json:"metal,omitempty"`
	ComputedAt     time.Time        `json:"computed_at"`
	Signal         TrendSignal      `json:"signal"`
	Label          string           `json:"label"`
	TechnicalScore float64          `json:"technical_score"`
	Rationale      string           `json:"rationale"`
	Metrics        TechnicalMetrics `json:"metrics"`
	Overlay        []OverlayPoint   `json:"overlay,omitempty"`
}
