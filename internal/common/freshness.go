package common

import "time"

// Freshness TTLs for per-company artifacts. Slightly shorter than the
// harvest cadence so a scheduled run always refreshes.
const (
	FreshnessHistory    = 20 * time.Hour      // daily price history
	FreshnessFinancials = 6 * 24 * time.Hour  // weekly statements
	FreshnessAnalyst    = 27 * 24 * time.Hour // monthly analyst/earnings
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
