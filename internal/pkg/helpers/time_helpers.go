package helpers

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// The configured logger may not exist yet, so use the global one.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

var clockLayouts = []string{"15:04:05", "15:04"}

// ParseClockTime parses a time of day in "HH:MM" or "HH:MM:SS" form
// (fractional seconds allowed) into a Postgres TIME value.
func ParseClockTime(s string) (pgtype.Time, error) {
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		us := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
			int64(t.Minute())*int64(time.Minute/time.Microsecond) +
			int64(t.Second())*int64(time.Second/time.Microsecond) +
			int64(t.Nanosecond())/int64(time.Microsecond)
		return pgtype.Time{Microseconds: us, Valid: true}, nil
	}
	return pgtype.Time{}, fmt.Errorf("invalid clock time %q", s)
}

// IsClockTime reports whether s parses as a clock time
func IsClockTime(s string) bool {
	_, err := ParseClockTime(s)
	return err == nil
}

// FormatClockTime renders a TIME value as "HH:MM:SS". An invalid (NULL)
// value renders as the empty string.
func FormatClockTime(t pgtype.Time) string {
	if !t.Valid {
		return ""
	}
	secs := t.Microseconds / int64(time.Second/time.Microsecond)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
