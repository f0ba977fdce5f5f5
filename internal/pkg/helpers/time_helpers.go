package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Global logger: this may run before the configured logger exists.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// RecentYears returns count years ending at the year of now, newest first.
func RecentYears(now time.Time, count int) []int {
	years := make([]int, 0, count)
	for i := 0; i < count; i++ {
		years = append(years, now.Year()-i)
	}
	return years
}
