package interfaces

import (
	"context"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// SeriesService owns the per-(metal, currency) daily price series cache.
type SeriesService interface {
	// GetSeries returns the chronological series for the requested window,
	// reseeding or incrementally updating the cache as needed. Provider
	// failures degrade to the best data already cached (possibly empty);
	// callers treat an empty result as "insufficient data", not an error.
	GetSeries(ctx context.Context, metal, currency string, desiredDays int, forceRefresh bool) []models.PricePoint

	// LatestPrice returns the most recent cached price per gram, or 0 when
	// no data is available.
	LatestPrice(ctx context.Context, metal, currency string) float64
}

// AdvisorService produces health scores backed by the narrative provider.
type AdvisorService interface {
	// HealthScore blends the technical score with the (cached) narrative
	// sentiment for the metal. A missing or stale narrative degrades to a
	// neutral sentiment of 50.
	HealthScore(ctx context.Context, metal string, technicalScore float64) *models.HealthScore
}

// ReturnsService computes portfolio return metrics over held lots.
type ReturnsService interface {
	PortfolioReturns(ctx context.Context, currency string) (*models.ReturnsResult, error)
}
