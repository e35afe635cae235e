package interfaces

import (
	"context"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	SeriesRepository() SeriesRepository
	LotStore() LotStore
	KeyValueStore() KeyValueStore

	Close() error
}

// SeriesRepository persists cached price series, keyed by (metal, currency).
// Writes replace the whole document; there are no partial field updates.
// Get returns (nil, nil) when no series is cached for the key.
type SeriesRepository interface {
	Get(ctx context.Context, metal, currency string) (*models.CachedSeries, error)
	Save(ctx context.Context, series *models.CachedSeries) error
	Delete(ctx context.Context, metal, currency string) error
	List(ctx context.Context) ([]*models.CachedSeries, error)
}

// LotStore persists recorded metal purchases.
type LotStore interface {
	Save(ctx context.Context, lot *models.Lot) error
	Get(ctx context.Context, id string) (*models.Lot, error)
	List(ctx context.Context) ([]models.Lot, error)
	ListByStatus(ctx context.Context, status models.LotStatus) ([]models.Lot, error)
	Delete(ctx context.Context, id string) error
}

// KeyValueStore holds system-level settings (API keys, cached narrative readings).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
