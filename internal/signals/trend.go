package signals

import (
	"errors"
	"fmt"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// MinPoints is the minimum chronological series length the engine accepts.
const MinPoints = models.MinSeededPoints

// ErrInsufficientData is returned when the series is shorter than MinPoints.
// Callers present "insufficient data" rather than a failure.
var ErrInsufficientData = errors.New("insufficient price history for trend analysis")

// Analyze computes the trend report for a chronological daily price series.
// All per-day values use only the prefix available at that day, so historical
// comparisons carry no look-ahead bias.
func Analyze(points []models.PricePoint) (*models.TrendReport, error) {
	if len(points) < MinPoints {
		return nil, fmt.Errorf("%w: have %d points, need %d", ErrInsufficientData, len(points), MinPoints)
	}

	sums := prefixSums(points)
	last := len(points) - 1
	lastPrice := points[last].Price

	sma50, _ := smaAt(sums, last, 50)
	sma200, has200 := smaAt(sums, last, 200)
	mainDMA, dmaType, _ := dmaAt(sums, last)

	metrics := models.TechnicalMetrics{
		LastPrice:   lastPrice,
		SMA50:       sma50,
		SMA200:      sma200,
		MainDMA:     mainDMA,
		DMAType:     dmaType,
		DistancePct: DistancePct(lastPrice, mainDMA),
	}

	above := lastPrice > mainDMA
	regime := regimeDays(points, sums, above)
	if above {
		metrics.RegimeAboveDays = regime
	} else {
		metrics.RegimeBelowDays = regime
	}
	metrics.CrossedWithin5Days = crossedBelowWithin(points, sums, 5)

	report := &models.TrendReport{
		ComputedAt: time.Now(),
		Metrics:    metrics,
		Overlay:    overlay(points, sums),
	}
	decide(report)

	// Cross clause only when both averages are defined.
	if sma50 != 0 && has200 {
		if sma50 >= sma200 {
			report.Rationale += " Golden Cross in effect: the 50-day average sits above the 200-day average."
		} else {
			report.Rationale += " Death Cross in effect: the 50-day average sits below the 200-day average."
		}
	}

	return report, nil
}

// regimeDays walks backward from the most recent point counting consecutive
// days the price stayed on the given side of its own contemporaneous DMA.
// Counting stops at the first flip or where no DMA is computable.
func regimeDays(points []models.PricePoint, sums []float64, above bool) int {
	days := 0
	for i := len(points) - 1; i >= 0; i-- {
		dma, _, ok := dmaAt(sums, i)
		if !ok {
			break
		}
		if (points[i].Price > dma) != above {
			break
		}
		days++
	}
	return days
}

// crossedBelowWithin reports whether the price fell below its contemporaneous
// DMA at any of the last n points.
func crossedBelowWithin(points []models.PricePoint, sums []float64, n int) bool {
	start := len(points) - n
	if start < 0 {
		start = 0
	}
	for i := start; i < len(points); i++ {
		dma, _, ok := dmaAt(sums, i)
		if !ok {
			continue
		}
		if points[i].Price < dma {
			return true
		}
	}
	return false
}

// overlay reconstructs the per-day (price, sma50, sma200) chart series using
// only prefix data at each day.
func overlay(points []models.PricePoint, sums []float64) []models.OverlayPoint {
	out := make([]models.OverlayPoint, len(points))
	for i, p := range points {
		op := models.OverlayPoint{Date: p.Date, Price: p.Price}
		if v, ok := smaAt(sums, i, 50); ok {
			op.SMA50 = v
		}
		if v, ok := smaAt(sums, i, 200); ok {
			op.SMA200 = v
		}
		out[i] = op
	}
	return out
}

// decide applies the signal decision table top-down, first match wins.
func decide(r *models.TrendReport) {
	m := r.Metrics
	above := m.LastPrice > m.MainDMA

	switch {
	case above && m.CrossedWithin5Days && m.RegimeAboveDays >= 3:
		r.Signal = models.SignalBuyTrendReclaim
		r.Label = "BUY (Trend Reclaim)"
		r.TechnicalScore = 75
		r.Rationale = fmt.Sprintf("Price reclaimed its %s after a recent dip and has held above it for %d days.", m.DMAType, m.RegimeAboveDays)
	case above && m.DistancePct >= 0 && m.DistancePct <= 3:
		r.Signal = models.SignalBuySafeZone
		r.Label = "BUY (Safe Zone)"
		r.TechnicalScore = 90
		r.Rationale = fmt.Sprintf("Price is %.2f%% above its %s, inside the low-risk accumulation zone.", m.DistancePct, m.DMAType)
	case above && m.DistancePct > 8:
		r.Signal = models.SignalHoldExtended
		r.Label = "HOLD (Extended)"
		r.TechnicalScore = 60
		r.Rationale = fmt.Sprintf("Price is stretched %.2f%% above its %s; wait for a pullback before adding.", m.DistancePct, m.DMAType)
	case above:
		r.Signal = models.SignalHoldUptrend
		r.Label = "HOLD (Uptrend)"
		r.TechnicalScore = 70
		r.Rationale = fmt.Sprintf("Uptrend intact with price %.2f%% above its %s after %d days on the right side.", m.DistancePct, m.DMAType, m.RegimeAboveDays)
	case m.RegimeBelowDays >= 10:
		r.Signal = models.SignalSellReduce
		r.Label = "SELL (Reduce)"
		r.TechnicalScore = 20
		r.Rationale = fmt.Sprintf("Price has spent %d consecutive days below its %s; the downtrend is established.", m.RegimeBelowDays, m.DMAType)
	default:
		r.Signal = models.SignalHoldWatchlist
		r.Label = "HOLD (Watchlist)"
		r.TechnicalScore = 40
		r.Rationale = fmt.Sprintf("Price slipped below its %s %d days ago; watch for either a reclaim or an established break.", m.DMAType, m.RegimeBelowDays)
	}
}
