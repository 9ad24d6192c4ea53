package zone

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/codeGROOVE-dev/cestz/pkg/tzconvert"
)

// CESTZoneName is the name of the zone returned by NewCESTZone.
const CESTZoneName = "CurrentCESTZone"

// Zone binds a name to a Rules value. The rules never change after
// construction.
type Zone struct {
	rules Rules
	name  string
}

// New returns a zone named name governed by rules.
func New(name string, rules Rules) *Zone {
	return &Zone{name: name, rules: rules}
}

// NewCESTZone returns the CET/CEST zone.
func NewCESTZone(opts ...Option) *Zone {
	return New(CESTZoneName, NewCESTRules(opts...))
}

// NewFixedZone returns a zone that is always at offset.
func NewFixedZone(name string, offset Offset) *Zone {
	return New(name, Fixed(offset))
}

// Rules returns the zone's rules.
func (z *Zone) Rules() Rules {
	return z.rules
}

// Name returns the zone name.
func (z *Zone) Name() string {
	return z.name
}

func (z *Zone) String() string {
	return z.name
}

// Equal reports whether z and other are the same zone. Zones compare by
// identity; two zones with equal rules are still distinct.
func (z *Zone) Equal(other *Zone) bool {
	return z == other
}

// ToInstant resolves a wall-clock reading to an instant using the best-fit
// offset.
func (z *Zone) ToInstant(dt civil.DateTime) time.Time {
	return tzconvert.ToInstant(dt, z.rules.OffsetOfLocalDateTime(dt).Seconds())
}

// ToLocal returns the wall-clock reading of t in the zone.
func (z *Zone) ToLocal(t time.Time) civil.DateTime {
	return tzconvert.ToLocal(t, z.rules.OffsetOfInstant(t).Seconds())
}

// In returns t in a fixed location carrying the zone's offset at t.
func (z *Zone) In(t time.Time) time.Time {
	return t.In(z.rules.OffsetOfInstant(t).Location())
}
