package zone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidOffset is returned by ParseOffset for malformed or out-of-range input.
var ErrInvalidOffset = errors.New("invalid UTC offset")

// maxOffsetSeconds bounds offsets to ±18:00.
const maxOffsetSeconds = 18 * 3600

// Offset is a fixed signed distance from UTC, in seconds east of Greenwich.
// Offsets are comparable with ==.
type Offset struct {
	seconds int
}

var (
	// UTC is the zero offset.
	UTC = Offset{}
	// WinterOffset is standard time, UTC+01:00.
	WinterOffset = OfHours(1)
	// SummerOffset is daylight saving time, UTC+02:00.
	SummerOffset = OfHours(2)
)

// OfHours returns an offset of whole hours.
func OfHours(hours int) Offset {
	return Offset{seconds: hours * 3600}
}

// OfSeconds returns an offset of the given seconds east of UTC.
func OfSeconds(seconds int) Offset {
	return Offset{seconds: seconds}
}

// Seconds returns the offset in seconds east of UTC.
func (o Offset) Seconds() int {
	return o.seconds
}

// Duration returns the offset as a duration.
func (o Offset) Duration() time.Duration {
	return time.Duration(o.seconds) * time.Second
}

// Location returns a fixed time.Location for the offset.
func (o Offset) Location() *time.Location {
	return time.FixedZone(o.String(), o.seconds)
}

// String formats the offset as "+01:00", or "Z" for UTC.
func (o Offset) String() string {
	if o.seconds == 0 {
		return "Z"
	}
	sign := '+'
	abs := o.seconds
	if abs < 0 {
		sign = '-'
		abs = -abs
	}
	hours, minutes, seconds := abs/3600, abs%3600/60, abs%60
	if seconds != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, hours, minutes, seconds)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, hours, minutes)
}

// ParseOffset parses an offset string.
// Examples:
//   - "Z", "UTC" return UTC
//   - "+02:00", "+0200", "+02", "+2" return UTC+2
//   - "UTC+1", "UTC-5:30" are accepted too
func ParseOffset(s string) (Offset, error) {
	in := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "UTC")
	s = strings.TrimPrefix(s, "GMT")
	if s == "" || s == "Z" {
		return UTC, nil
	}

	sign := 1
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	default:
		return Offset{}, fmt.Errorf("%w: %q: missing sign", ErrInvalidOffset, in)
	}

	var hh, mm string
	switch {
	case strings.Contains(s, ":"):
		hh, mm, _ = strings.Cut(s, ":")
	case len(s) == 4:
		hh, mm = s[:2], s[2:]
	default:
		hh = s
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || len(hh) > 2 {
		return Offset{}, fmt.Errorf("%w: %q: bad hours", ErrInvalidOffset, in)
	}
	minutes := 0
	if mm != "" {
		minutes, err = strconv.Atoi(mm)
		if err != nil || len(mm) != 2 || minutes > 59 {
			return Offset{}, fmt.Errorf("%w: %q: bad minutes", ErrInvalidOffset, in)
		}
	}

	seconds := sign * (hours*3600 + minutes*60)
	if seconds > maxOffsetSeconds || seconds < -maxOffsetSeconds {
		return Offset{}, fmt.Errorf("%w: %q: out of range", ErrInvalidOffset, in)
	}
	return Offset{seconds: seconds}, nil
}
