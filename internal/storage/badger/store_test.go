package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mgr.Close())
	})
	return mgr
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeriesStorage_RoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	repo := mgr.SeriesRepository()
	ctx := context.Background()

	series := &models.CachedSeries{
		Metal:    models.MetalGold,
		Currency: "INR",
		Points: []models.PricePoint{
			{Date: day(2026, 1, 2), Price: 6520.5},
			{Date: day(2026, 1, 1), Price: 6500.0},
		},
		DataStartDate: day(2026, 1, 1),
		DataEndDate:   day(2026, 1, 2),
		LastSeededAt:  time.Now().UTC(),
		LastUpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, series))

	got, err := repo.Get(ctx, models.MetalGold, "INR")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Points, 2)

	// Save sorts points ascending by date.
	assert.Equal(t, day(2026, 1, 1), got.Points[0].Date)
	assert.Equal(t, day(2026, 1, 2), got.Points[1].Date)
	assert.Equal(t, 6500.0, got.Points[0].Price)
}

func TestSeriesStorage_MissReturnsNil(t *testing.T) {
	mgr := newTestManager(t)

	got, err := mgr.SeriesRepository().Get(context.Background(), models.MetalSilver, "USD")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSeriesStorage_SaveReplacesWholeDocument(t *testing.T) {
	mgr := newTestManager(t)
	repo := mgr.SeriesRepository()
	ctx := context.Background()

	first := &models.CachedSeries{
		Metal:    models.MetalGold,
		Currency: "USD",
		Points: []models.PricePoint{
			{Date: day(2026, 1, 1), Price: 65.0},
			{Date: day(2026, 1, 2), Price: 66.0},
		},
	}
	require.NoError(t, repo.Save(ctx, first))

	second := &models.CachedSeries{
		Metal:    models.MetalGold,
		Currency: "USD",
		Points: []models.PricePoint{
			{Date: day(2026, 2, 1), Price: 70.0},
		},
	}
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Get(ctx, models.MetalGold, "USD")
	require.NoError(t, err)
	require.Len(t, got.Points, 1)
	assert.Equal(t, day(2026, 2, 1), got.Points[0].Date)
}

func TestSeriesStorage_RequiresKeyFields(t *testing.T) {
	mgr := newTestManager(t)

	err := mgr.SeriesRepository().Save(context.Background(), &models.CachedSeries{Metal: models.MetalGold})
	assert.Error(t, err)
}

func TestSeriesStorage_List(t *testing.T) {
	mgr := newTestManager(t)
	repo := mgr.SeriesRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.CachedSeries{Metal: models.MetalGold, Currency: "USD"}))
	require.NoError(t, repo.Save(ctx, &models.CachedSeries{Metal: models.MetalSilver, Currency: "USD"}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLotStorage_SaveAssignsIDAndDefaults(t *testing.T) {
	mgr := newTestManager(t)
	lots := mgr.LotStore()
	ctx := context.Background()

	lot := &models.Lot{
		Metal:        models.MetalGold,
		Purity:       0.9999,
		WeightGrams:  10,
		TotalPaid:    65000,
		PurchaseDate: day(2025, 6, 1),
	}
	require.NoError(t, lots.Save(ctx, lot))

	assert.NotEmpty(t, lot.ID)
	assert.Equal(t, models.LotStatusHold, lot.Status)
	assert.False(t, lot.CreatedAt.IsZero())

	got, err := lots.Get(ctx, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.WeightGrams)
}

func TestLotStorage_ListByStatus(t *testing.T) {
	mgr := newTestManager(t)
	lots := mgr.LotStore()
	ctx := context.Background()

	hold := &models.Lot{Metal: models.MetalGold, WeightGrams: 10, Purity: 0.995, PurchaseDate: day(2025, 3, 1)}
	sold := &models.Lot{Metal: models.MetalGold, WeightGrams: 5, Purity: 0.995, PurchaseDate: day(2024, 3, 1), Status: models.LotStatusSold}
	require.NoError(t, lots.Save(ctx, hold))
	require.NoError(t, lots.Save(ctx, sold))

	held, err := lots.ListByStatus(ctx, models.LotStatusHold)
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, hold.ID, held[0].ID)

	all, err := lots.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Oldest purchase first.
	assert.Equal(t, sold.ID, all[0].ID)
}

func TestLotStorage_Delete(t *testing.T) {
	mgr := newTestManager(t)
	lots := mgr.LotStore()
	ctx := context.Background()

	lot := &models.Lot{Metal: models.MetalSilver, WeightGrams: 100, Purity: 0.999, PurchaseDate: day(2025, 1, 1)}
	require.NoError(t, lots.Save(ctx, lot))
	require.NoError(t, lots.Delete(ctx, lot.ID))

	_, err := lots.Get(ctx, lot.ID)
	assert.Error(t, err)

	// Deleting a missing lot is not an error.
	assert.NoError(t, lots.Delete(ctx, "no-such-lot"))
}

func TestKVStorage_RoundTrip(t *testing.T) {
	mgr := newTestManager(t)
	kv := mgr.KeyValueStore()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "goldapi_api_key", "secret"))

	val, err := kv.Get(ctx, "goldapi_api_key")
	require.NoError(t, err)
	assert.Equal(t, "secret", val)

	require.NoError(t, kv.Set(ctx, "goldapi_api_key", "rotated"))
	val, err = kv.Get(ctx, "goldapi_api_key")
	require.NoError(t, err)
	assert.Equal(t, "rotated", val)

	require.NoError(t, kv.Delete(ctx, "goldapi_api_key"))
	_, err = kv.Get(ctx, "goldapi_api_key")
	assert.Error(t, err)
}
