// Package interfaces defines service contracts for GoldTrack
package interfaces

import (
	"context"
	"time"

	"github.com/intellinez-com/GoldTrack-sub000/internal/models"
)

// PriceClient is the metal price provider (historical + live spot).
type PriceClient interface {
	// GetHistory retrieves per-date prices for the window [start, end].
	// The provider paginates at 30 days per request; callers chunk accordingly.
	GetHistory(ctx context.Context, metal, currency string, start, end time.Time) ([]models.ProviderRecord, error)

	// GetLatest retrieves today's spot quote, per gram in the requested currency.
	GetLatest(ctx context.Context, metal, currency string) (*models.LatestQuote, error)
}

// NarrativeClient supplies the externally derived sentiment reading for a metal.
type NarrativeClient interface {
	GetNarrative(ctx context.Context, metal string) (*models.NarrativeInput, error)
}
