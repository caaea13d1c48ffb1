// Package kst provides clock helpers pinned to Korea Standard Time.
// All day-boundary and review-hour checks use a fixed UTC+9 offset,
// independent of the host's configured timezone.
package kst

import "time"

// Location is the fixed UTC+9 zone used for every date comparison.
var Location = time.FixedZone("KST", 9*60*60)

// Review window bounds (hours of day, KST). The form opens at 12:00 and
// closes at 23:00.
const (
	WindowOpenHour  = 12
	WindowCloseHour = 23
)

// DateFormat is the wire format for menu dates.
const DateFormat = "2006-01-02"

// Now returns the current instant in KST.
func Now() time.Time {
	return time.Now().In(Location)
}

// Today returns today's date in KST as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.In(Location).Format(DateFormat)
}

// IsToday reports whether date (YYYY-MM-DD) equals today's KST date.
// A malformed date is never today.
func IsToday(date string, now time.Time) bool {
	if _, err := time.ParseInLocation(DateFormat, date, Location); err != nil {
		return false
	}
	return date == Today(now)
}

// InReviewWindow reports whether the instant falls within review hours
// (12:00 inclusive to 23:00 exclusive, KST).
func InReviewWindow(now time.Time) bool {
	h := now.In(Location).Hour()
	return h >= WindowOpenHour && h < WindowCloseHour
}
