// Package signals provides the pure trend-signal math for daily price series.
package signals

import "github.com/intellinez-com/GoldTrack-sub000/internal/models"

// prefixSums returns the running sum of prices: sums[i] is the total of the
// first i points. Built once so every historical SMA is an O(1) window lookup
// instead of an O(n) rescan.
func prefixSums(points []models.PricePoint) []float64 {
	sums := make([]float64, len(points)+1)
	for i, p := range points {
		sums[i+1] = sums[i] + p.Price
	}
	return sums
}

// smaAt returns the simple moving average of the `period` points ending at
// index i (inclusive), using only data available at that point in time.
// Returns (0, false) when fewer than `period` points exist.
func smaAt(sums []float64, i, period int) (float64, bool) {
	if period <= 0 || i+1 < period {
		return 0, false
	}
	return (sums[i+1] - sums[i+1-period]) / float64(period), true
}

// dmaAt returns the contemporaneous main DMA at index i: the 200-day SMA when
// enough prefix data exists, else the 100-day SMA, else undefined.
func dmaAt(sums []float64, i int) (float64, models.DMAType, bool) {
	if v, ok := smaAt(sums, i, 200); ok {
		return v, models.DMA200, true
	}
	if v, ok := smaAt(sums, i, 100); ok {
		return v, models.DMA100, true
	}
	return 0, "", false
}

// SMA returns the simple moving average of the last `period` points of a
// chronological series, or 0 when fewer points exist.
func SMA(points []models.PricePoint, period int) float64 {
	if len(points) < period || period <= 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points[len(points)-period:] {
		sum += p.Price
	}
	return sum / float64(period)
}

// DistancePct returns the percentage distance of price from the reference
// average, or 0 when the reference is zero.
func DistancePct(price, ref float64) float64 {
	if ref == 0 {
		return 0
	}
	return (price - ref) / ref * 100
}
