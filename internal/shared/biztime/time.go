// Package biztime keeps storage in UTC and interprets calendar dates
// (received dates on tickets and canvass forms) in the business timezone.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	DefaultTimezone = "UTC"

	// DateLayout is the wire format of calendar dates.
	DateLayout = "2006-01-02"
)

var (
	mu       sync.RWMutex
	location = time.UTC
)

// Init sets the business timezone. An empty tz keeps UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	mu.Lock()
	location = loc
	mu.Unlock()
	return nil
}

func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return location
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses a YYYY-MM-DD date as midnight in the business timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as a calendar date in the business timezone.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location()).Format(DateLayout)
}

// ToUnixMilli converts t to epoch milliseconds, zero for the zero time.
func ToUnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromUnixMilli is the inverse of ToUnixMilli.
func FromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
