package zone

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/codeGROOVE-dev/cestz/pkg/transition"
)

// Region locates a wall-clock reading relative to the year's transitions.
type Region int

const (
	// RegionWinterEarly is before the spring gap.
	RegionWinterEarly Region = iota
	// RegionGap is the hour skipped when clocks move forward.
	RegionGap
	// RegionSummer is between the gap and the overlap.
	RegionSummer
	// RegionOverlap is the hour repeated when clocks move back.
	RegionOverlap
	// RegionWinterLate is after the autumn overlap.
	RegionWinterLate
)

func (r Region) String() string {
	switch r {
	case RegionWinterEarly:
		return "winter"
	case RegionGap:
		return "gap"
	case RegionSummer:
		return "summer"
	case RegionOverlap:
		return "overlap"
	case RegionWinterLate:
		return "winter"
	default:
		return "unknown"
	}
}

// CESTRules is the perpetual CET/CEST rule. Transitions are derived per
// query from a transition.Source; by default nothing is cached.
type CESTRules struct {
	source transition.Source
}

// NewCESTRules returns the CET/CEST rule.
func NewCESTRules(opts ...Option) *CESTRules {
	o := buildOptions(opts)
	return &CESTRules{source: o.source}
}

func (r *CESTRules) pair(year int) transition.Pair {
	if r == nil || r.source == nil {
		return transition.Of(year)
	}
	return r.source.Pair(year)
}

// Transitions returns the transition pair for year.
func (r *CESTRules) Transitions(year int) transition.Pair {
	return r.pair(year)
}

// IsFixedOffset implements Rules. The zone has two offsets.
func (*CESTRules) IsFixedOffset() bool {
	return false
}

// OffsetOfInstant implements Rules. Summer time is the half-open interval
// [spring 01:00Z, fall 01:00Z) of the instant's UTC year.
func (r *CESTRules) OffsetOfInstant(t time.Time) Offset {
	p := r.pair(t.UTC().Year())
	if t.Before(p.SpringInstant()) || !t.Before(p.FallInstant()) {
		return WinterOffset
	}
	return SummerOffset
}

// Classify returns the region of the year dt falls in.
func (r *CESTRules) Classify(dt civil.DateTime) Region {
	p := r.pair(dt.Date.Year)
	switch {
	case dt.Before(p.SpringWall()):
		return RegionWinterEarly
	case dt.Before(p.GapEnd()):
		return RegionGap
	case dt.Before(p.FallWall()):
		return RegionSummer
	case dt.Before(p.OverlapEnd()):
		return RegionOverlap
	default:
		return RegionWinterLate
	}
}

// OffsetOfLocalDateTime implements Rules. A reading in the spring gap
// resolves to summer time; a reading in the autumn overlap resolves to
// winter time.
func (r *CESTRules) OffsetOfLocalDateTime(dt civil.DateTime) Offset {
	switch r.Classify(dt) {
	case RegionGap, RegionSummer:
		return SummerOffset
	default:
		return WinterOffset
	}
}

// IsValidOffset implements Rules. Only the best-fit offset is valid, so
// during the overlap summer time is reported invalid.
func (r *CESTRules) IsValidOffset(dt civil.DateTime, offset Offset) bool {
	return r.OffsetOfLocalDateTime(dt) == offset
}

// NextTransition returns the first transition instant strictly after t.
func (r *CESTRules) NextTransition(t time.Time) time.Time {
	year := t.UTC().Year()
	p := r.pair(year)
	switch {
	case t.Before(p.SpringInstant()):
		return p.SpringInstant()
	case t.Before(p.FallInstant()):
		return p.FallInstant()
	default:
		return r.pair(year + 1).SpringInstant()
	}
}

// PreviousTransition returns the last transition instant at or before t.
func (r *CESTRules) PreviousTransition(t time.Time) time.Time {
	year := t.UTC().Year()
	p := r.pair(year)
	switch {
	case !t.Before(p.FallInstant()):
		return p.FallInstant()
	case !t.Before(p.SpringInstant()):
		return p.SpringInstant()
	default:
		return r.pair(year - 1).FallInstant()
	}
}

// Equal implements Rules. Every CESTRules behaves the same, so only the
// concrete type is compared.
func (r *CESTRules) Equal(other Rules) bool {
	o, ok := other.(*CESTRules)
	return ok && o != nil && r != nil
}

func (*CESTRules) String() string {
	return "CurrentCESTZoneRules()"
}
