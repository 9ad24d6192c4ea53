// Package tzconvert converts between wall-clock date-times and instants.
// Instants are always handled in UTC; a wall-clock reading only becomes an
// instant once an offset is chosen for it.
package tzconvert

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// localLayouts are tried in order by ParseLocal.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ToInstant returns the instant at which the wall clock reads dt under the
// given offset (seconds east of UTC).
// Example: 2024-03-31T02:30 at +7200 is 2024-03-31T00:30Z.
func ToInstant(dt civil.DateTime, offsetSeconds int) time.Time {
	return dt.In(time.UTC).Add(-time.Duration(offsetSeconds) * time.Second)
}

// ToLocal returns the wall-clock reading of t under the given offset
// (seconds east of UTC).
// Example: 2024-10-27T00:59Z at +7200 reads 2024-10-27T02:59.
func ToLocal(t time.Time, offsetSeconds int) civil.DateTime {
	return civil.DateTimeOf(t.UTC().Add(time.Duration(offsetSeconds) * time.Second))
}

// AtHour returns midnight-based dt with the clock set to hour:00.
func AtHour(dt civil.DateTime, hour int) civil.DateTime {
	return civil.DateTime{Date: dt.Date, Time: civil.Time{Hour: hour}}
}

// ParseLocal parses a zone-less date-time. Seconds are optional, and a bare
// date means midnight.
func ParseLocal(s string) (civil.DateTime, error) {
	for _, layout := range localLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return civil.DateTimeOf(t), nil
		}
	}
	return civil.DateTime{}, fmt.Errorf("parsing local date-time %q: want YYYY-MM-DDTHH:MM[:SS]", s)
}

// FormatLocal formats dt as YYYY-MM-DDTHH:MM:SS, dropping fractional seconds
// when they are zero.
func FormatLocal(dt civil.DateTime) string {
	if dt.Time.Nanosecond == 0 {
		return dt.In(time.UTC).Format("2006-01-02T15:04:05")
	}
	return dt.String()
}
