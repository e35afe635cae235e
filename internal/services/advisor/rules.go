// Package advisor provides allocation advice and health scoring services
package advisor

import (
	"fmt"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// blockLumpsumAbovePct is the 50-day stretch beyond which lump-sum deployment
// is blocked even when accumulation is otherwise allowed.
const blockLumpsumAbovePct = 4.0

// Advise turns live spot and moving averages into a concrete action under the
// given investment mode. Rules are evaluated top-down, first match wins; the
// fallback guarantees a definite output for any well-formed input.
//
// This is deliberately a separate decision surface from the trend signal
// engine: same family of inputs, different thresholds and product intent.
func Advise(price, sma50, sma200 float64, mode models.InvestMode, plannedAllocation float64) *models.AdvisorOutput {
	if price == 0 || sma50 == 0 || sma200 == 0 {
		return &models.AdvisorOutput{
			Signal:     models.AdvisorHold,
			Message:    "Awaiting data: live price or moving averages unavailable.",
			NextAction: "Retry once at least 200 days of price history are cached.",
		}
	}

	delta50 := (price - sma50) / sma50 * 100
	delta200 := (price - sma200) / sma200 * 100
	goldenCross := sma50 >= sma200
	blockLumpsum := delta50 > blockLumpsumAbovePct

	out := &models.AdvisorOutput{
		Delta50Pct:  delta50,
		Delta200Pct: delta200,
		GoldenCross: goldenCross,
	}

	switch {
	case price < sma200 && sma50 < sma200:
		out.Signal = models.AdvisorSellRiskOff
		out.InvestPctNow = 0
		out.Message = fmt.Sprintf("Risk-off: price is below the 200-day average (%.1f%%) with the 50-day average also under it.", delta200)
		out.NextAction = "Pause deployments and consider trimming until price reclaims the 200-day average."

	case price <= sma200 || delta200 <= 2:
		out.Signal = models.AdvisorStrongBuy
		out.InvestPctNow = 100
		out.LumpSumAllowed = true
		out.SIPAllowed = true
		out.Message = fmt.Sprintf("Strong buy: price is at or near its 200-day average (%.1f%%), a historically favourable entry.", delta200)
		out.NextAction = "Deploy the full planned allocation now."

	case goldenCross && delta50 <= 2:
		out.Signal = models.AdvisorBuy
		out.InvestPctNow = 80
		out.LumpSumAllowed = true
		out.SIPAllowed = true
		out.Message = fmt.Sprintf("Buy: golden cross with price only %.1f%% above the 50-day average.", delta50)
		out.NextAction = "Deploy most of the planned allocation, keep a small reserve for dips."

	case goldenCross && delta50 > 2 && delta50 <= 6:
		out.Signal = models.AdvisorAccumulate
		out.InvestPctNow = 40
		out.LumpSumAllowed = !blockLumpsum
		out.SIPAllowed = true
		out.Message = fmt.Sprintf("Accumulate: uptrend intact but price is %.1f%% above the 50-day average.", delta50)
		out.NextAction = "Stagger purchases; avoid a single large entry at this stretch."

	case goldenCross && delta50 > 6 && delta50 <= 10:
		out.Signal = models.AdvisorHold
		if mode == models.ModeSIP {
			out.InvestPctNow = 10
		}
		out.SIPAllowed = true
		out.Message = fmt.Sprintf("Hold: price is stretched %.1f%% above the 50-day average.", delta50)
		out.NextAction = "Continue SIP only; wait for a pullback before lump-sum entries."

	case delta50 > 10:
		out.Signal = models.AdvisorWaitTrim
		if mode == models.ModeSIP {
			out.InvestPctNow = 5
		}
		out.SIPAllowed = true
		out.Message = fmt.Sprintf("Wait: price is %.1f%% above the 50-day average, a historically overheated zone.", delta50)
		out.NextAction = "Hold off new money; consider trimming into strength."

	default:
		out.Signal = models.AdvisorHold
		if mode == models.ModeSIP {
			out.InvestPctNow = 5
		}
		out.SIPAllowed = true
		out.Message = "No strong edge either way; defaulting to a small systematic contribution."
		out.NextAction = "Maintain SIP cadence and reassess next cycle."
	}

	if plannedAllocation > 0 {
		out.AllocationNowAmount = plannedAllocation * out.InvestPctNow / 100
	}

	return out
}
