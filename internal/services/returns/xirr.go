// Package returns computes portfolio performance metrics over recorded lots.
package returns

import (
	"math"
	"sort"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

const (
	xirrGuess        = 0.1
	xirrTolerance    = 1e-7
	xirrMaxIter      = 100
	xirrMinDeriv     = 1e-15
	daysPerYearExact = 365.25
)

// XIRR computes the annualized internal rate of return for a set of dated
// cash flows using Newton-Raphson iteration, returned as a decimal fraction
// (0.10 is 10%). Outflows are negative, the terminal valuation positive.
// Returns 0 whenever the iteration cannot converge to a meaningful rate.
func XIRR(flows []models.CashFlow) float64 {
	if len(flows) < 2 {
		return 0
	}

	sorted := append([]models.CashFlow(nil), flows...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	hasNeg, hasPos := false, false
	for _, f := range sorted {
		if f.Amount < 0 {
			hasNeg = true
		}
		if f.Amount > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return 0
	}

	t0 := sorted[0].Date
	years := make([]float64, len(sorted))
	for i, f := range sorted {
		years[i] = f.Date.Sub(t0).Hours() / 24 / daysPerYearExact
	}

	rate := xirrGuess
	for iter := 0; iter < xirrMaxIter; iter++ {
		npv, deriv := 0.0, 0.0
		for i, f := range sorted {
			factor := math.Pow(1+rate, years[i])
			if factor == 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
				return 0
			}
			npv += f.Amount / factor
			deriv -= years[i] * f.Amount / (factor * (1 + rate))
		}

		if math.Abs(deriv) < xirrMinDeriv || math.IsNaN(deriv) || math.IsInf(deriv, 0) {
			return 0
		}

		next := rate - npv/deriv
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			return 0
		}

		if math.Abs(next-rate) < xirrTolerance {
			return next
		}
		rate = next
	}

	return 0
}

// CAGR computes the compound annual growth rate between an initial outlay and
// a final value over the given holding period, as a decimal fraction.
func CAGR(initial, final float64, from, to time.Time) float64 {
	if initial <= 0 || final <= 0 {
		return 0
	}
	years := to.Sub(from).Hours() / 24 / daysPerYearExact
	if years <= 0 {
		return 0
	}
	return math.Pow(final/initial, 1/years) - 1
}
