// Package adjust provides calendar adjusters that move a civil.Date to
// another date in the same month, such as the last Sunday of the month.
package adjust

import (
	"time"

	"cloud.google.com/go/civil"
)

// Adjuster maps a date to another date.
type Adjuster func(civil.Date) civil.Date

// With applies a to d.
func With(d civil.Date, a Adjuster) civil.Date {
	return a(d)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Weekday returns the day of the week d falls on.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// FirstDayOfMonth returns an adjuster that moves to day 1 of the month.
func FirstDayOfMonth() Adjuster {
	return func(d civil.Date) civil.Date {
		return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
	}
}

// LastDayOfMonth returns an adjuster that moves to the last day of the month.
func LastDayOfMonth() Adjuster {
	return func(d civil.Date) civil.Date {
		return civil.Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
	}
}

// LastInMonth returns an adjuster that moves to the last day of the month
// falling on weekday w.
func LastInMonth(w time.Weekday) Adjuster {
	return func(d civil.Date) civil.Date {
		last := LastDayOfMonth()(d)
		back := (int(Weekday(last)) - int(w) + 7) % 7
		return last.AddDays(-back)
	}
}

// FirstInMonth returns an adjuster that moves to the first day of the month
// falling on weekday w.
func FirstInMonth(w time.Weekday) Adjuster {
	return func(d civil.Date) civil.Date {
		first := FirstDayOfMonth()(d)
		forward := (int(w) - int(Weekday(first)) + 7) % 7
		return first.AddDays(forward)
	}
}
