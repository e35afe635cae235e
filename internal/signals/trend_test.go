package signals

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// genSeries builds a chronological daily series ending today from the given prices.
func genSeries(prices []float64) []models.PricePoint {
	points := make([]models.PricePoint, len(prices))
	start := models.DayStart(time.Now()).AddDate(0, 0, -len(prices)+1)
	for i, p := range prices {
		points[i] = models.PricePoint{Date: start.AddDate(0, 0, i), Price: p}
	}
	return points
}

// flat returns n copies of price.
func flat(n int, price float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = price
	}
	return prices
}

func TestAnalyze_InsufficientData(t *testing.T) {
	_, err := Analyze(genSeries(flat(99, 1000)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestAnalyze_FlatSeriesAverages(t *testing.T) {
	// 250 identical prices: both SMAs equal the price and distance is zero.
	report, err := Analyze(genSeries(flat(250, 1000)))
	require.NoError(t, err)

	assert.InDelta(t, 1000, report.Metrics.SMA50, 1e-9)
	assert.InDelta(t, 1000, report.Metrics.SMA200, 1e-9)
	assert.InDelta(t, 0, report.Metrics.DistancePct, 1e-9)
	assert.Equal(t, models.DMA200, report.Metrics.DMAType)
}

func TestAnalyze_ShortSeriesUses100DMA(t *testing.T) {
	report, err := Analyze(genSeries(flat(150, 1000)))
	require.NoError(t, err)
	assert.Equal(t, models.DMA100, report.Metrics.DMAType)
	assert.InDelta(t, 1000, report.Metrics.MainDMA, 1e-9)
}

func TestAnalyze_SafeZoneScenario(t *testing.T) {
	// Flat at 1000, then rising linearly over the last 60 days so the close
	// sits about 2.5% above its 200-day average.
	prices := flat(190, 1000)
	for i := 1; i <= 60; i++ {
		prices = append(prices, 1000+0.5*float64(i))
	}
	report, err := Analyze(genSeries(prices))
	require.NoError(t, err)

	assert.Equal(t, models.SignalBuySafeZone, report.Signal)
	assert.Equal(t, "BUY (Safe Zone)", report.Label)
	assert.Equal(t, 90.0, report.TechnicalScore)
	assert.GreaterOrEqual(t, report.Metrics.DistancePct, 0.0)
	assert.LessOrEqual(t, report.Metrics.DistancePct, 3.0)
}

func TestAnalyze_TrendReclaim(t *testing.T) {
	// A one-day dip below the DMA four days ago, reclaimed since.
	prices := flat(245, 1000)
	prices = append(prices, 990, 1005, 1005, 1005, 1005)
	report, err := Analyze(genSeries(prices))
	require.NoError(t, err)

	assert.Equal(t, models.SignalBuyTrendReclaim, report.Signal)
	assert.Equal(t, 75.0, report.TechnicalScore)
	assert.True(t, report.Metrics.CrossedWithin5Days)
	assert.GreaterOrEqual(t, report.Metrics.RegimeAboveDays, 3)
}

func TestAnalyze_Extended(t *testing.T) {
	prices := append(flat(249, 1000), 1100) // ~9.9% above the 200-day average
	report, err := Analyze(genSeries(prices))
	require.NoError(t, err)

	assert.Equal(t, models.SignalHoldExtended, report.Signal)
	assert.Equal(t, 60.0, report.TechnicalScore)
	assert.Greater(t, report.Metrics.DistancePct, 8.0)
}

func TestAnalyze_Uptrend(t *testing.T) {
	prices := append(flat(249, 1000), 1050) // ~5% above, neither safe zone nor extended
	report, err := Analyze(genSeries(prices))
	require.NoError(t, err)

	assert.Equal(t, models.SignalHoldUptrend, report.Signal)
	assert.Equal(t, 70.0, report.TechnicalScore)
}

func TestAnalyze_SellReduce(t *testing.T) {
	// Fifteen straight closes below the contemporaneous DMA.
	prices := flat(235, 1000)
	for i := 0; i < 15; i++ {
		prices = append(prices, 950)
	}
	report, err := Analyze(genSeries(prices))
	require.NoError(t, err)

	assert.Equal(t, models.SignalSellReduce, report.Signal)
	assert.Equal(t, 20.0, report.TechnicalScore)
	assert.GreaterOrEqual(t, report.Metrics.RegimeBelowDays, 10)
	assert.Zero(t, report.Metrics.RegimeAboveDays)
}

func TestAnalyze_Watchlist(t *testing.T) {
	// Only three closes below: no established downtrend yet. The drift keeps
	// the earlier closes strictly above their trailing averages.
	prices := make([]float64, 0, 250)
	for i := 0; i < 247; i++ {
		prices = append(prices, 1000+0.1*float64(i))
	}
	prices = append(prices, 900, 900, 900)
	report, err := Analyze(genSeries(prices))
	require.NoError(t, err)

	assert.Equal(t, models.SignalHoldWatchlist, report.Signal)
	assert.Equal(t, 40.0, report.TechnicalScore)
	assert.Less(t, report.Metrics.RegimeBelowDays, 10)
}

func TestAnalyze_RegimeSidesMutuallyExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		prices := make([]float64, 250)
		price := 1000.0
		for i := range prices {
			price += rng.Float64()*20 - 10
			if price < 1 {
				price = 1
			}
			prices[i] = price
		}
		report, err := Analyze(genSeries(prices))
		require.NoError(t, err)

		above, below := report.Metrics.RegimeAboveDays, report.Metrics.RegimeBelowDays
		assert.True(t, above == 0 || below == 0, "one regime side must be zero (above=%d below=%d)", above, below)
	}
}

func TestAnalyze_CrossClauseMatchesAverages(t *testing.T) {
	// Golden cross iff SMA50 >= SMA200, across random walks.
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		prices := make([]float64, 250)
		price := 500 + rng.Float64()*1000
		for i := range prices {
			price += rng.Float64()*10 - 5
			if price < 1 {
				price = 1
			}
			prices[i] = price
		}
		report, err := Analyze(genSeries(prices))
		require.NoError(t, err)

		if report.Metrics.SMA50 >= report.Metrics.SMA200 {
			assert.Contains(t, report.Rationale, "Golden Cross")
		} else {
			assert.Contains(t, report.Rationale, "Death Cross")
		}
	}
}

func TestAnalyze_OverlayHasNoLookAhead(t *testing.T) {
	prices := flat(260, 1000)
	prices[259] = 1100
	report, err := Analyze(genSeries(prices))
	require.NoError(t, err)
	require.Len(t, report.Overlay, 260)

	// Days before index 49 have no 50-day average; before 199 no 200-day average.
	assert.Zero(t, report.Overlay[48].SMA50)
	assert.NotZero(t, report.Overlay[49].SMA50)
	assert.Zero(t, report.Overlay[198].SMA200)
	assert.NotZero(t, report.Overlay[199].SMA200)

	// The final jump must not leak into earlier averages.
	assert.InDelta(t, 1000, report.Overlay[258].SMA50, 1e-9)
	assert.InDelta(t, 1002, report.Overlay[259].SMA50, 1e-9)
}

func TestSMA_TailWindow(t *testing.T) {
	points := genSeries([]float64{10, 20, 30, 40, 50})
	assert.InDelta(t, 40, SMA(points, 3), 1e-9)
	assert.InDelta(t, 30, SMA(points, 5), 1e-9)
	assert.Zero(t, SMA(points, 6))
}
