// Package transition computes the two yearly offset transitions of a zone
// that changes its clocks on the last Sunday of March and October.
//
// Each transition has two views. As an instant it happens at 01:00 UTC. As
// a wall-clock reading it starts at 02:00 local time and covers one hour:
// a gap in spring (02:00-03:00 never occurs) and an overlap in autumn
// (02:00-03:00 occurs twice).
package transition

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/codeGROOVE-dev/cestz/pkg/adjust"
	"github.com/codeGROOVE-dev/cestz/pkg/tzconvert"
)

const (
	// SpringMonth is the month clocks move forward.
	SpringMonth = time.March
	// FallMonth is the month clocks move back.
	FallMonth = time.October
	// InstantHour is the UTC hour at which both transitions happen.
	InstantHour = 1
	// WallHour is the local hour at which the gap and the overlap start.
	WallHour = 2
	// WindowLength is the duration of the gap and of the overlap.
	WindowLength = time.Hour
)

// LastSundayAtMidnight returns local midnight on the last Sunday of month in year.
func LastSundayAtMidnight(year int, month time.Month) civil.DateTime {
	d := civil.Date{Year: year, Month: time.January, Day: 1}
	d.Month = month
	return civil.DateTime{Date: adjust.With(d, adjust.LastInMonth(time.Sunday))}
}

// SpringForward returns midnight on the day clocks move forward in year.
func SpringForward(year int) civil.DateTime {
	return LastSundayAtMidnight(year, SpringMonth)
}

// FallBack returns midnight on the day clocks move back in year.
func FallBack(year int) civil.DateTime {
	return LastSundayAtMidnight(year, FallMonth)
}

// Pair holds the transition days of one year.
type Pair struct {
	Year   int
	Spring civil.DateTime // midnight, last Sunday of March
	Fall   civil.DateTime // midnight, last Sunday of October
}

// Of computes the transition pair for year.
func Of(year int) Pair {
	return Pair{Year: year, Spring: SpringForward(year), Fall: FallBack(year)}
}

// SpringInstant is the first instant of summer time.
func (p Pair) SpringInstant() time.Time {
	return tzconvert.ToInstant(tzconvert.AtHour(p.Spring, InstantHour), 0)
}

// FallInstant is the first instant of winter time after summer.
func (p Pair) FallInstant() time.Time {
	return tzconvert.ToInstant(tzconvert.AtHour(p.Fall, InstantHour), 0)
}

// SpringWall is the local reading at which the gap starts.
func (p Pair) SpringWall() civil.DateTime {
	return tzconvert.AtHour(p.Spring, WallHour)
}

// GapEnd is the first local reading after the gap.
func (p Pair) GapEnd() civil.DateTime {
	return tzconvert.AtHour(p.Spring, WallHour+int(WindowLength/time.Hour))
}

// FallWall is the local reading at which the overlap starts.
func (p Pair) FallWall() civil.DateTime {
	return tzconvert.AtHour(p.Fall, WallHour)
}

// OverlapEnd is the first local reading after the overlap.
func (p Pair) OverlapEnd() civil.DateTime {
	return tzconvert.AtHour(p.Fall, WallHour+int(WindowLength/time.Hour))
}

// Source yields the transition pair for a year.
type Source interface {
	Pair(year int) Pair
}

// Calculator is a Source that recomputes the pair on every call.
type Calculator struct{}

// Pair implements Source.
func (Calculator) Pair(year int) Pair {
	return Of(year)
}
