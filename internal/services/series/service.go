// Package series maintains the cached daily price history for each metal.
package series

import (
	"context"
	"sync"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/common"
	"github.com/intellinez-com/GoldTrack-sub000/internal/interfaces"
	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// Service implements the series cache: it reconciles the persisted history
// with the price provider and always hands callers the best data it has.
type Service struct {
	client      interfaces.PriceClient
	repo        interfaces.SeriesRepository
	logger      *common.Logger
	historyDays int

	// mu serializes refreshes per (metal, currency) key so concurrent
	// callers cannot trigger duplicate provider sweeps.
	mu sync.Map
}

// NewService creates a series cache service. The client may be nil, in which
// case the service serves cached data only.
func NewService(client interfaces.PriceClient, repo interfaces.SeriesRepository, logger *common.Logger, historyDays int) *Service {
	if historyDays <= 0 {
		historyDays = 365
	}
	return &Service{
		client:      client,
		repo:        repo,
		logger:      logger,
		historyDays: historyDays,
	}
}

// Compile-time interface check
var _ interfaces.SeriesService = (*Service)(nil)

func (s *Service) keyLock(key string) *sync.Mutex {
	lock, _ := s.mu.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// GetSeries returns up to desiredDays of daily per-gram closes, oldest first.
// The cache is reseeded from the provider when it is missing, thin, or stale;
// otherwise a single daily top-up keeps it current. Provider failures never
// fail the call: the best cached data is returned instead, possibly empty.
func (s *Service) GetSeries(ctx context.Context, metal, currency string, desiredDays int, forceRefresh bool) []models.PricePoint {
	if desiredDays <= 0 {
		desiredDays = s.historyDays
	}

	lock := s.keyLock(models.SeriesKey(metal, currency))
	lock.Lock()
	defer lock.Unlock()

	cached, err := s.repo.Get(ctx, metal, currency)
	if err != nil {
		s.logger.Warn().Err(err).Str("metal", metal).Msg("Series cache read failed, treating as empty")
		cached = nil
	}

	now := time.Now().UTC()

	if s.needsReseed(cached, desiredDays, forceRefresh, now) {
		if fresh := s.reseed(ctx, metal, currency, desiredDays, now); fresh != nil {
			return fresh.Points
		}
		return cachedPoints(cached)
	}

	if !models.SameDay(cached.LastUpdatedAt, now) {
		if updated := s.dailyUpdate(ctx, cached, desiredDays, now); updated != nil {
			return updated.Points
		}
	}

	return cached.Points
}

// LatestPrice returns the most recent cached per-gram price, 0 when no data
// is available.
func (s *Service) LatestPrice(ctx context.Context, metal, currency string) float64 {
	points := s.GetSeries(ctx, metal, currency, s.historyDays, false)
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Price
}

func cachedPoints(cached *models.CachedSeries) []models.PricePoint {
	if cached == nil {
		return nil
	}
	return cached.Points
}

// needsReseed decides whether the cache must be rebuilt from scratch rather
// than topped up.
func (s *Service) needsReseed(cached *models.CachedSeries, desiredDays int, force bool, now time.Time) bool {
	switch {
	case force:
		return true
	case cached == nil || !cached.Seeded():
		return true
	case float64(len(cached.Points)) < common.SeriesCoverage*float64(desiredDays):
		return true
	case cached.GapDays(now) > common.MaxSeriesGapDays:
		return true
	}
	return false
}

// reseed rebuilds the whole series from the provider in bounded date chunks,
// walking backwards from today. Returns nil when the provider cannot serve.
func (s *Service) reseed(ctx context.Context, metal, currency string, desiredDays int, now time.Time) *models.CachedSeries {
	if s.client == nil {
		return nil
	}

	end := models.DayStart(now)
	start := end.AddDate(0, 0, -desiredDays)

	byDay := make(map[string]models.PricePoint, desiredDays)

	chunkEnd := end
	for !chunkEnd.Before(start) {
		chunkStart := chunkEnd.AddDate(0, 0, -(common.ChunkDays - 1))
		if chunkStart.Before(start) {
			chunkStart = start
		}

		records, err := s.client.GetHistory(ctx, metal, currency, chunkStart, chunkEnd)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("metal", metal).
				Time("chunk_start", chunkStart).
				Time("chunk_end", chunkEnd).
				Msg("History chunk fetch failed, keeping cached series")
			return nil
		}

		for _, rec := range records {
			point := models.PricePoint{
				Date:  models.DayStart(rec.Date),
				Price: rec.PricePerGram(),
			}
			byDay[point.DayKey()] = point
		}

		chunkEnd = chunkStart.AddDate(0, 0, -1)
	}

	// The provider's history often lags a day; top up with the live quote.
	todayKey := end.Format("2006-01-02")
	if _, ok := byDay[todayKey]; !ok {
		if quote, err := s.client.GetLatest(ctx, metal, currency); err == nil && quote.PricePerGram > 0 {
			byDay[todayKey] = models.PricePoint{Date: end, Price: quote.PricePerGram}
		}
	}

	if len(byDay) == 0 {
		s.logger.Warn().Str("metal", metal).Msg("Provider returned no history")
		return nil
	}

	series := &models.CachedSeries{
		Metal:         metal,
		Currency:      currency,
		Points:        make([]models.PricePoint, 0, len(byDay)),
		LastSeededAt:  now,
		LastUpdatedAt: now,
	}
	for _, point := range byDay {
		series.Points = append(series.Points, point)
	}
	series.SortPoints()

	if err := s.repo.Save(ctx, series); err != nil {
		s.logger.Error().Err(err).Str("key", series.Key()).Msg("Failed to persist reseeded series")
	}

	s.logger.Info().
		Str("key", series.Key()).
		Int("points", len(series.Points)).
		Msg("Series reseeded")

	return series
}

// dailyUpdate appends (or replaces) today's close from the live quote and
// trims the series to the retention window. Returns nil on provider failure.
func (s *Service) dailyUpdate(ctx context.Context, cached *models.CachedSeries, desiredDays int, now time.Time) *models.CachedSeries {
	if s.client == nil {
		return nil
	}

	quote, err := s.client.GetLatest(ctx, cached.Metal, cached.Currency)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", cached.Key()).Msg("Daily quote fetch failed, serving cached series")
		return nil
	}
	if quote.PricePerGram <= 0 {
		return nil
	}

	point := models.PricePoint{Date: models.DayStart(quote.Date), Price: quote.PricePerGram}

	replaced := false
	for i := len(cached.Points) - 1; i >= 0; i-- {
		if models.SameDay(cached.Points[i].Date, point.Date) {
			cached.Points[i] = point
			replaced = true
			break
		}
	}
	if !replaced {
		cached.Points = append(cached.Points, point)
	}

	cached.SortPoints()
	if len(cached.Points) > desiredDays {
		cached.Points = cached.Points[len(cached.Points)-desiredDays:]
		cached.SortPoints()
	}
	cached.LastUpdatedAt = now

	if err := s.repo.Save(ctx, cached); err != nil {
		s.logger.Error().Err(err).Str("key", cached.Key()).Msg("Failed to persist updated series")
	}

	s.logger.Debug().
		Str("key", cached.Key()).
		Float64("price", point.Price).
		Msg("Series topped up with daily quote")

	return cached
}
