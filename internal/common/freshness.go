// Package common provides shared utilities for GoldTrack
package common

import "time"

// Freshness TTLs for cached data components
const (
	FreshnessNarrative = 6 * time.Hour // sentiment readings
	MaxSeriesGapDays   = 3             // calendar-day gap that forces a full reseed
	SeriesCoverage     = 0.90          // cached points must cover 90% of the requested window
	ChunkDays          = 30            // provider pagination limit per historical request
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
