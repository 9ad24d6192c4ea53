package zone

import (
	"time"

	"cloud.google.com/go/civil"
)

// FixedRules is a zone whose offset never changes.
type FixedRules struct {
	offset Offset
}

// Fixed returns rules that always answer offset.
func Fixed(offset Offset) *FixedRules {
	return &FixedRules{offset: offset}
}

// Offset returns the zone's only offset.
func (r *FixedRules) Offset() Offset {
	return r.offset
}

// IsFixedOffset implements Rules.
func (*FixedRules) IsFixedOffset() bool {
	return true
}

// OffsetOfInstant implements Rules.
func (r *FixedRules) OffsetOfInstant(time.Time) Offset {
	return r.offset
}

// OffsetOfLocalDateTime implements Rules.
func (r *FixedRules) OffsetOfLocalDateTime(civil.DateTime) Offset {
	return r.offset
}

// IsValidOffset implements Rules.
func (r *FixedRules) IsValidOffset(_ civil.DateTime, offset Offset) bool {
	return r.offset == offset
}

// Equal implements Rules. Fixed rules are equal when their offsets are.
func (r *FixedRules) Equal(other Rules) bool {
	o, ok := other.(*FixedRules)
	return ok && o != nil && r != nil && o.offset == r.offset
}

func (r *FixedRules) String() string {
	return "FixedRules(" + r.offset.String() + ")"
}
