// Package histogram renders how a zone's offset behaves across one local day.
package histogram

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/cestz/pkg/tzconvert"
	"github.com/codeGROOVE-dev/cestz/pkg/zone"
)

// Kind classifies a wall-clock bucket.
type Kind int

const (
	// Standard buckets occur once, at the standard offset.
	Standard Kind = iota
	// Daylight buckets occur once, at a non-standard offset.
	Daylight
	// Gap buckets never occur on the wall clock.
	Gap
	// Overlap buckets occur twice.
	Overlap
)

// Bucket is one 30-minute slot of local time.
type Bucket struct {
	Local  civil.DateTime
	Kind   Kind
	Offset zone.Offset   // best-fit offset for Local
	Valid  []zone.Offset // offsets under which Local actually occurs
}

// Buckets classifies every 30-minute slot of day. An offset is a candidate
// for a slot when converting the slot with it and resolving the resulting
// instant gives the same offset back. No candidate is a gap, two are an
// overlap.
func Buckets(rules zone.Rules, day civil.Date, standard zone.Offset) []Bucket {
	midnight := civil.DateTime{Date: day}
	candidates := []zone.Offset{
		rules.OffsetOfLocalDateTime(midnight),
		rules.OffsetOfLocalDateTime(civil.DateTime{Date: day, Time: civil.Time{Hour: 23, Minute: 59}}),
	}
	if candidates[0] == candidates[1] {
		candidates = candidates[:1]
	}

	buckets := make([]Bucket, 0, 48)
	for slot := range 48 {
		dt := civil.DateTime{Date: day, Time: civil.Time{Hour: slot / 2, Minute: slot % 2 * 30}}

		var valid []zone.Offset
		for _, c := range candidates {
			if rules.OffsetOfInstant(tzconvert.ToInstant(dt, c.Seconds())) == c {
				valid = append(valid, c)
			}
		}

		b := Bucket{Local: dt, Offset: rules.OffsetOfLocalDateTime(dt), Valid: valid}
		switch {
		case len(valid) == 0:
			b.Kind = Gap
		case len(valid) > 1:
			b.Kind = Overlap
		case b.Offset == standard:
			b.Kind = Standard
		default:
			b.Kind = Daylight
		}
		buckets = append(buckets, b)
	}
	return buckets
}

func kindColor(k Kind) *color.Color {
	switch k {
	case Daylight:
		return color.New(color.FgYellow)
	case Gap:
		return color.New(color.FgRed)
	case Overlap:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgBlue)
	}
}

// barLength scales an offset to one block per quarter hour east of UTC.
func barLength(o zone.Offset) int {
	n := int(o.Duration() / (15 * time.Minute))
	if n < 1 {
		return 1
	}
	return n
}

// GenerateHistogram draws the buckets of day with a legend.
func GenerateHistogram(rules zone.Rules, day civil.Date, standard zone.Offset) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("🕑 %s offsets for %s (30-minute resolution)\n", rules, day))
	output.WriteString(strings.Repeat("─", 50) + "\n")

	for _, b := range Buckets(rules, day, standard) {
		c := kindColor(b.Kind)
		line := fmt.Sprintf("%02d:%02d ", b.Local.Time.Hour, b.Local.Time.Minute)

		switch b.Kind {
		case Gap:
			line += c.Sprint("!") + " " + fmt.Sprintf("%-7s", b.Offset) + c.Sprint(strings.Repeat("░", barLength(b.Offset))) + " never occurs"
		case Overlap:
			var offsets []string
			for _, o := range b.Valid {
				offsets = append(offsets, o.String())
			}
			line += c.Sprint("=") + " " + fmt.Sprintf("%-7s", b.Offset) + c.Sprint(strings.Repeat("▓", barLength(b.Offset))) +
				" occurs twice (" + strings.Join(offsets, ", ") + ")"
		default:
			line += "  " + fmt.Sprintf("%-7s", b.Offset) + c.Sprint(strings.Repeat("█", barLength(b.Offset)))
		}

		output.WriteString(line + "\n")
	}

	output.WriteString(strings.Repeat("─", 50) + "\n")
	output.WriteString(kindColor(Standard).Sprint("█") + " standard  " +
		kindColor(Daylight).Sprint("█") + " daylight  " +
		kindColor(Gap).Sprint("░") + " gap  " +
		kindColor(Overlap).Sprint("▓") + " overlap\n")

	return output.String()
}
