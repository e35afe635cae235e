package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

func TestAdvise_AwaitingData(t *testing.T) {
	for _, out := range []*models.AdvisorOutput{
		Advise(0, 1050, 1100, models.ModeLumpSum, 10000),
		Advise(1000, 0, 1100, models.ModeLumpSum, 10000),
		Advise(1000, 1050, 0, models.ModeSIP, 10000),
	} {
		assert.Equal(t, models.AdvisorHold, out.Signal)
		assert.Zero(t, out.InvestPctNow)
		assert.False(t, out.LumpSumAllowed)
		assert.False(t, out.SIPAllowed)
		assert.Zero(t, out.AllocationNowAmount)
		assert.Contains(t, out.Message, "Awaiting data")
	}
}

func TestAdvise_SellRiskOff(t *testing.T) {
	// Price below a declining stack: 1000 < 1050 (50d) < 1100 (200d).
	out := Advise(1000, 1050, 1100, models.ModeLumpSum, 10000)

	assert.Equal(t, models.AdvisorSellRiskOff, out.Signal)
	assert.Zero(t, out.InvestPctNow)
	assert.False(t, out.LumpSumAllowed)
	assert.False(t, out.SIPAllowed)
	assert.Zero(t, out.AllocationNowAmount)
	assert.False(t, out.GoldenCross)
	assert.InDelta(t, -9.09, out.Delta200Pct, 0.01)
}

func TestAdvise_StrongBuyAtSupport(t *testing.T) {
	// Golden cross with price sitting right on the 200-day average.
	out := Advise(1000, 1040, 1000, models.ModeLumpSum, 10000)

	require.Equal(t, models.AdvisorStrongBuy, out.Signal)
	assert.Equal(t, 100.0, out.InvestPctNow)
	assert.True(t, out.LumpSumAllowed)
	assert.True(t, out.SIPAllowed)
	assert.Equal(t, 10000.0, out.AllocationNowAmount)
}

func TestAdvise_StrongBuyNearSupport(t *testing.T) {
	// Above the 200-day by under 2%: still a strong entry.
	out := Advise(1015, 1030, 1000, models.ModeSIP, 0)

	assert.Equal(t, models.AdvisorStrongBuy, out.Signal)
	assert.InDelta(t, 1.5, out.Delta200Pct, 0.01)
	assert.Zero(t, out.AllocationNowAmount)
}

func TestAdvise_BuyOnGoldenCross(t *testing.T) {
	// Golden cross, 3% over the 200-day, 1% over the 50-day.
	out := Advise(1030, 1020, 1000, models.ModeLumpSum, 5000)

	require.Equal(t, models.AdvisorBuy, out.Signal)
	assert.Equal(t, 80.0, out.InvestPctNow)
	assert.True(t, out.GoldenCross)
	assert.True(t, out.LumpSumAllowed)
	assert.Equal(t, 4000.0, out.AllocationNowAmount)
}

func TestAdvise_AccumulateAllowsLumpSumUnderFourPct(t *testing.T) {
	// delta50 = 3%, delta200 = 8%: accumulate, lump sum still fine.
	out := Advise(1080, 1048.54, 1000, models.ModeLumpSum, 10000)

	require.Equal(t, models.AdvisorAccumulate, out.Signal)
	assert.Equal(t, 40.0, out.InvestPctNow)
	assert.True(t, out.LumpSumAllowed)
	assert.True(t, out.SIPAllowed)
	assert.Equal(t, 4000.0, out.AllocationNowAmount)
}

func TestAdvise_AccumulateBlocksLumpSumOverFourPct(t *testing.T) {
	// delta50 = 5%, delta200 = 8%: still accumulating but no single entry.
	out := Advise(1080, 1028.57, 1000, models.ModeLumpSum, 10000)

	require.Equal(t, models.AdvisorAccumulate, out.Signal)
	assert.False(t, out.LumpSumAllowed)
	assert.True(t, out.SIPAllowed)
}

func TestAdvise_HoldStretched(t *testing.T) {
	// delta50 = 8%: SIP gets a token 10%, lump sum gets nothing.
	sip := Advise(1080, 1000, 990, models.ModeSIP, 10000)
	require.Equal(t, models.AdvisorHold, sip.Signal)
	assert.Equal(t, 10.0, sip.InvestPctNow)
	assert.False(t, sip.LumpSumAllowed)
	assert.True(t, sip.SIPAllowed)
	assert.Equal(t, 1000.0, sip.AllocationNowAmount)

	lump := Advise(1080, 1000, 990, models.ModeLumpSum, 10000)
	require.Equal(t, models.AdvisorHold, lump.Signal)
	assert.Zero(t, lump.InvestPctNow)
	assert.Zero(t, lump.AllocationNowAmount)
}

func TestAdvise_WaitTrimOverheated(t *testing.T) {
	// delta50 = 15%: overheated regardless of mode.
	sip := Advise(1150, 1000, 980, models.ModeSIP, 10000)
	require.Equal(t, models.AdvisorWaitTrim, sip.Signal)
	assert.Equal(t, 5.0, sip.InvestPctNow)
	assert.Equal(t, 500.0, sip.AllocationNowAmount)

	lump := Advise(1150, 1000, 980, models.ModeLumpSum, 10000)
	require.Equal(t, models.AdvisorWaitTrim, lump.Signal)
	assert.Zero(t, lump.InvestPctNow)
}

func TestAdvise_FallbackHold(t *testing.T) {
	// Death cross but price above the 200-day, modestly above the 50-day:
	// no earlier rule fires.
	out := Advise(1080, 990, 1000, models.ModeSIP, 10000)

	require.Equal(t, models.AdvisorHold, out.Signal)
	assert.Equal(t, 5.0, out.InvestPctNow)
	assert.False(t, out.GoldenCross)
}
