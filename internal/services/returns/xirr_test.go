package returns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

func flowDay(daysFromStart int) time.Time {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, daysFromStart)
}

func TestXIRR_SingleYearGain(t *testing.T) {
	flows := []models.CashFlow{
		{Date: flowDay(0), Amount: -1000},
		{Date: flowDay(365), Amount: 1100},
	}

	rate := XIRR(flows)
	assert.InDelta(t, 0.10, rate, 1e-4)
}

func TestXIRR_MultipleContributions(t *testing.T) {
	flows := []models.CashFlow{
		{Date: flowDay(0), Amount: -1000},
		{Date: flowDay(182), Amount: -1000},
		{Date: flowDay(365), Amount: 2200},
	}

	rate := XIRR(flows)
	// Two staggered outflows returning 10% total: the annualized rate sits
	// above the simple return because the second leg compounds for half a year.
	assert.Greater(t, rate, 0.10)
	assert.Less(t, rate, 0.20)
}

func TestXIRR_Loss(t *testing.T) {
	flows := []models.CashFlow{
		{Date: flowDay(0), Amount: -1000},
		{Date: flowDay(365), Amount: 900},
	}

	rate := XIRR(flows)
	assert.InDelta(t, -0.10, rate, 1e-4)
}

func TestXIRR_OrderIndependent(t *testing.T) {
	a := []models.CashFlow{
		{Date: flowDay(0), Amount: -1000},
		{Date: flowDay(400), Amount: 1250},
	}
	b := []models.CashFlow{
		{Date: flowDay(400), Amount: 1250},
		{Date: flowDay(0), Amount: -1000},
	}

	assert.InDelta(t, XIRR(a), XIRR(b), 1e-9)
}

func TestXIRR_DegenerateInputs(t *testing.T) {
	assert.Zero(t, XIRR(nil))
	assert.Zero(t, XIRR([]models.CashFlow{{Date: flowDay(0), Amount: -1000}}))

	// All flows on one side cannot price a rate.
	assert.Zero(t, XIRR([]models.CashFlow{
		{Date: flowDay(0), Amount: -1000},
		{Date: flowDay(100), Amount: -500},
	}))
	assert.Zero(t, XIRR([]models.CashFlow{
		{Date: flowDay(0), Amount: 1000},
		{Date: flowDay(100), Amount: 500},
	}))
}

func TestCAGR_TwoYearGain(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(2, 0, 0)

	// 100000 -> 121000 over two years is 10% per year.
	rate := CAGR(100000, 121000, from, to)
	assert.InDelta(t, 0.10, rate, 1e-3)
}

func TestCAGR_DegenerateInputs(t *testing.T) {
	now := time.Now().UTC()
	assert.Zero(t, CAGR(0, 1000, now.AddDate(-1, 0, 0), now))
	assert.Zero(t, CAGR(1000, 0, now.AddDate(-1, 0, 0), now))
	assert.Zero(t, CAGR(1000, 1100, now, now))
	assert.Zero(t, CAGR(1000, 1100, now, now.AddDate(-1, 0, 0)))
}
