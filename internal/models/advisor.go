package models

import "time"

// InvestMode selects the investment style for advisory rules.
type InvestMode string

const (
	ModeLumpSum InvestMode = "LUMPSUM"
	ModeSIP     InvestMode = "SIP"
)

// ValidInvestMode returns true if m is a recognised investment mode.
func ValidInvestMode(m InvestMode) bool {
	return m == ModeLumpSum || m == ModeSIP
}

// AdvisorSignal is the action signal produced by the advisory rule engine.
type AdvisorSignal string

const (
	AdvisorSellRiskOff AdvisorSignal = "SELL_RISK_OFF"
	AdvisorStrongBuy   AdvisorSignal = "STRONG_BUY"
	AdvisorBuy         AdvisorSignal = "BUY"
	AdvisorAccumulate  AdvisorSignal = "ACCUMULATE"
	AdvisorHold        AdvisorSignal = "HOLD"
	AdvisorWaitTrim    AdvisorSignal = "WAIT_TRIM"
)

// AdvisorOutput is the concrete allocation advice for one metal.
type AdvisorOutput struct {
	Signal              AdvisorSignal `json:"signal"`
	InvestPctNow        float64       `json:"invest_pct_now"` // 0-100
	LumpSumAllowed      bool          `json:"lump_sum_allowed"`
	SIPAllowed          bool          `json:"sip_allowed"`
	Message             string        `json:"message"`
	NextAction          string        `json:"next_action"`
	AllocationNowAmount float64       `json:"allocation_now_amount,omitempty"`
	Delta50Pct          float64       `json:"delta_50_pct"`
	Delta200Pct         float64       `json:"delta_200_pct"`
	GoldenCross         bool          `json:"golden_cross"`
}

// NarrativeInput is the externally supplied sentiment reading for a metal.
// The core never inspects how it was derived.
type NarrativeInput struct {
	SentimentScore float64   `json:"sentiment_score"` // 0-100
	Tone           string    `json:"tone"`
	GeoModifier    int       `json:"geo_modifier"`
	LastUpdated    time.Time `json:"last_updated"`
}

// HealthScore blends the technical score with the narrative sentiment score.
type HealthScore struct {
	Score          float64 `json:"score"`
	Label          string  `json:"label"` // Optimal, Neutral, Critical
	TechnicalScore float64 `json:"technical_score"`
	NarrativeScore float64 `json:"narrative_score"` // after damping
	Damped         bool    `json:"damped"`
}
