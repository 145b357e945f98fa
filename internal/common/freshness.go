// Package common provides shared utilities for Asset Cockpit
package common

import "time"

// Freshness TTLs for the cached data tiers. Quotes are near-real-time and
// expire quickly; inferred dividend schedules change at most a few times a
// year. Metadata has no TTL; it lives until explicitly invalidated.
const (
	FreshnessQuotes           = 10 * time.Minute
	FreshnessDividendSchedule = 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}

// IsFreshAt is IsFresh against an explicit reference time, for callers with
// an injectable clock.
func IsFreshAt(updated time.Time, ttl time.Duration, now time.Time) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}
