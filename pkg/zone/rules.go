// Package zone answers UTC offset queries for a zone.
//
// Rules is the contract every zone variant implements. CESTRules models the
// perpetual central European rule (UTC+1 in winter, UTC+2 in summer, clocks
// moving on the last Sundays of March and October); FixedRules models zones
// that never change offset. Zone binds a name to one Rules value.
package zone

import (
	"time"

	"cloud.google.com/go/civil"
)

// Rules answers offset queries for one zone. Implementations are stateless
// from the caller's point of view and safe for concurrent use.
type Rules interface {
	// IsFixedOffset reports whether the zone only ever has one offset.
	IsFixedOffset() bool
	// OffsetOfInstant returns the offset in effect at t.
	OffsetOfInstant(t time.Time) Offset
	// OffsetOfLocalDateTime returns the best-fit offset for a wall-clock
	// reading, resolving gaps and overlaps deterministically.
	OffsetOfLocalDateTime(dt civil.DateTime) Offset
	// IsValidOffset reports whether offset is the best fit for dt.
	IsValidOffset(dt civil.DateTime, offset Offset) bool
	// Equal reports whether other behaves identically.
	Equal(other Rules) bool
	String() string
}
