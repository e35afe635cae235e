package badger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

type seriesStorage struct {
	store  *Store
	logger *common.Logger
}

// NewSeriesStorage creates a new SeriesRepository backed by BadgerHold.
func NewSeriesStorage(store *Store, logger *common.Logger) interfaces.SeriesRepository {
	return &seriesStorage{store: store, logger: logger}
}

func (s *seriesStorage) Get(_ context.Context, metal, currency string) (*models.CachedSeries, error) {
	var series models.CachedSeries
	err := s.store.db.Get(models.SeriesKey(metal, currency), &series)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get series '%s/%s': %w", metal, currency, err)
	}
	return &series, nil
}

func (s *seriesStorage) Save(_ context.Context, series *models.CachedSeries) error {
	if series.Metal == "" || series.Currency == "" {
		return fmt.Errorf("series requires metal and currency")
	}
	series.SortPoints()

	if err := s.store.db.Upsert(series.Key(), series); err != nil {
		return fmt.Errorf("failed to save series '%s': %w", series.Key(), err)
	}

	s.logger.Debug().
		Str("key", series.Key()).
		Int("points", len(series.Points)).
		Time("end", series.DataEndDate).
		Msg("Series saved")
	return nil
}

func (s *seriesStorage) Delete(_ context.Context, metal, currency string) error {
	err := s.store.db.Delete(models.SeriesKey(metal, currency), models.CachedSeries{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete series '%s/%s': %w", metal, currency, err)
	}
	return nil
}

func (s *seriesStorage) List(_ context.Context) ([]*models.CachedSeries, error) {
	var all []models.CachedSeries
	if err := s.store.db.Find(&all, nil); err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	result := make([]*models.CachedSeries, len(all))
	for i := range all {
		result[i] = &all[i]
	}
	return result, nil
}
