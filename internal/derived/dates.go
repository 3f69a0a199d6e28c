// Package derived computes read-only projections over the entity
// collections: contract expiry, finance totals, occupancy, tenant history,
// report summaries and dashboard counts.
//
// Everything here is a pure function of its inputs and an injected "now".
// Nothing is cached and nothing writes back into the slices it is given.
package derived

import (
	"time"
)

// DateLayout is the wire format of every date-only field.
const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD date as UTC midnight. Longer values such
// as full RFC3339 timestamps are cut to their date part.
func ParseDate(s string) (time.Time, bool) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns UTC midnight of now.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
