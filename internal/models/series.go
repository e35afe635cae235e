// Package models defines data structures for GoldTrack
package models

import (
	"sort"
	"time"
)

// GramsPerTroyOunce converts provider per-ounce prices to price-per-gram.
const GramsPerTroyOunce = 31.1035

// MinSeededPoints is the minimum series length for a cache entry to count as seeded.
const MinSeededPoints = 100

// PricePoint is a single daily close for a metal in a given currency, per gram.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// DayKey returns the calendar-day key for the point (dates are unique per series).
func (p PricePoint) DayKey() string {
	return p.Date.Format("2006-01-02")
}

// CachedSeries is the persisted daily price series for one (metal, currency) pair.
// It is owned by the series cache and always written as a whole document.
type CachedSeries struct {
	Metal         string       `json:"metal"`
	Currency      string       `json:"currency"`
	Points        []PricePoint `json:"points"`
	DataStartDate time.Time    `json:"data_start_date"`
	DataEndDate   time.Time    `json:"data_end_date"`
	LastSeededAt  time.Time    `json:"last_seeded_at"`
	LastUpdatedAt time.Time    `json:"last_updated_at"`
}

// SeriesKey builds the storage key for a (metal, currency) pair.
func SeriesKey(metal, currency string) string {
	return metal + ":" + currency
}

// Key returns the storage key for this series.
func (s *CachedSeries) Key() string {
	return SeriesKey(s.Metal, s.Currency)
}

// Seeded reports whether the series has enough history to drive trend analysis.
func (s *CachedSeries) Seeded() bool {
	return s != nil && len(s.Points) >= MinSeededPoints
}

// GapDays returns the number of calendar days between the newest cached point
// and now. Returns a large value when the series is empty.
func (s *CachedSeries) GapDays(now time.Time) int {
	if s == nil || len(s.Points) == 0 || s.DataEndDate.IsZero() {
		return 1 << 20
	}
	end := DayStart(s.DataEndDate)
	return int(DayStart(now).Sub(end).Hours() / 24)
}

// SortPoints sorts the series points ascending by date and refreshes the
// start/end date fields.
func (s *CachedSeries) SortPoints() {
	sort.Slice(s.Points, func(i, j int) bool {
		return s.Points[i].Date.Before(s.Points[j].Date)
	})
	if len(s.Points) > 0 {
		s.DataStartDate = s.Points[0].Date
		s.DataEndDate = s.Points[len(s.Points)-1].Date
	} else {
		s.DataStartDate = time.Time{}
		s.DataEndDate = time.Time{}
	}
}

// DayStart normalizes a timestamp to midnight UTC.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}
