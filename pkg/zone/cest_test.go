package zone

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/codeGROOVE-dev/cestz/pkg/transition"
)

func local(year int, month time.Month, day, hour, minute int) civil.DateTime {
	return civil.DateTime{
		Date: civil.Date{Year: year, Month: month, Day: day},
		Time: civil.Time{Hour: hour, Minute: minute},
	}
}

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestOffsetOfInstant2024(t *testing.T) {
	rules := NewCESTRules()
	tests := []struct {
		name    string
		instant time.Time
		want    Offset
	}{
		{"new year", utc(2024, time.January, 1, 0, 0), WinterOffset},
		{"minute before spring", utc(2024, time.March, 31, 0, 59), WinterOffset},
		{"spring instant", utc(2024, time.March, 31, 1, 0), SummerOffset},
		{"midsummer", utc(2024, time.July, 1, 12, 0), SummerOffset},
		{"minute before fall", utc(2024, time.October, 27, 0, 59), SummerOffset},
		{"fall instant", utc(2024, time.October, 27, 1, 0), WinterOffset},
		{"new year's eve", utc(2024, time.December, 31, 23, 59), WinterOffset},
		{"non-utc location", time.Date(2024, time.March, 31, 3, 0, 0, 0, time.FixedZone("x", 2*3600)), SummerOffset},
		{"non-utc location before", time.Date(2024, time.March, 31, 1, 59, 0, 0, time.FixedZone("x", 3600)), WinterOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.OffsetOfInstant(tt.instant); got != tt.want {
				t.Errorf("OffsetOfInstant(%v) = %v, want %v", tt.instant, got, tt.want)
			}
		})
	}
}

func TestOffsetOfLocalDateTime2024(t *testing.T) {
	rules := NewCESTRules()
	tests := []struct {
		name   string
		dt     civil.DateTime
		want   Offset
		region Region
	}{
		{"january", local(2024, time.January, 15, 12, 0), WinterOffset, RegionWinterEarly},
		{"before gap", local(2024, time.March, 31, 1, 59), WinterOffset, RegionWinterEarly},
		{"gap start", local(2024, time.March, 31, 2, 0), SummerOffset, RegionGap},
		{"inside gap", local(2024, time.March, 31, 2, 30), SummerOffset, RegionGap},
		{"gap last minute", local(2024, time.March, 31, 2, 59), SummerOffset, RegionGap},
		{"gap end", local(2024, time.March, 31, 3, 0), SummerOffset, RegionSummer},
		{"july", local(2024, time.July, 1, 12, 0), SummerOffset, RegionSummer},
		{"before overlap", local(2024, time.October, 27, 1, 59), SummerOffset, RegionSummer},
		{"overlap start", local(2024, time.October, 27, 2, 0), WinterOffset, RegionOverlap},
		{"inside overlap", local(2024, time.October, 27, 2, 30), WinterOffset, RegionOverlap},
		{"overlap end", local(2024, time.October, 27, 3, 0), WinterOffset, RegionWinterLate},
		{"december", local(2024, time.December, 24, 18, 0), WinterOffset, RegionWinterLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.OffsetOfLocalDateTime(tt.dt); got != tt.want {
				t.Errorf("OffsetOfLocalDateTime(%v) = %v, want %v", tt.dt, got, tt.want)
			}
			if got := rules.Classify(tt.dt); got != tt.region {
				t.Errorf("Classify(%v) = %v, want %v", tt.dt, got, tt.region)
			}
		})
	}
}

func TestGapAndOverlapEveryYear(t *testing.T) {
	rules := NewCESTRules()
	for year := 1970; year <= 2100; year++ {
		p := transition.Of(year)
		for minute := 0; minute < 60; minute++ {
			gap := local(year, time.March, p.Spring.Date.Day, 2, minute)
			if got := rules.OffsetOfLocalDateTime(gap); got != SummerOffset {
				t.Fatalf("gap %v resolved to %v", gap, got)
			}
			overlap := local(year, time.October, p.Fall.Date.Day, 2, minute)
			if got := rules.OffsetOfLocalDateTime(overlap); got != WinterOffset {
				t.Fatalf("overlap %v resolved to %v", overlap, got)
			}
		}
	}
}

func TestOffsetOfInstantSteps(t *testing.T) {
	// Walking a year hour by hour must see exactly two changes:
	// winter to summer at spring, summer to winter at fall.
	rules := NewCESTRules()
	for _, year := range []int{1999, 2024, 2025, 2038, 2100} {
		p := transition.Of(year)
		var changes []time.Time
		prev := rules.OffsetOfInstant(utc(year, time.January, 1, 0, 0))
		if prev != WinterOffset {
			t.Fatalf("%d starts in %v", year, prev)
		}
		for h := utc(year, time.January, 1, 1, 0); h.Year() == year; h = h.Add(time.Hour) {
			cur := rules.OffsetOfInstant(h)
			if cur != prev {
				changes = append(changes, h)
			}
			prev = cur
		}
		if len(changes) != 2 {
			t.Fatalf("%d: %d offset changes, want 2: %v", year, len(changes), changes)
		}
		if !changes[0].Equal(p.SpringInstant()) || !changes[1].Equal(p.FallInstant()) {
			t.Errorf("%d: changes at %v, want %v and %v", year, changes, p.SpringInstant(), p.FallInstant())
		}
	}
}

func TestIsValidOffset(t *testing.T) {
	rules := NewCESTRules()
	tests := []struct {
		dt     civil.DateTime
		offset Offset
		want   bool
	}{
		{local(2024, time.January, 1, 12, 0), WinterOffset, true},
		{local(2024, time.January, 1, 12, 0), SummerOffset, false},
		{local(2024, time.March, 31, 2, 30), SummerOffset, true},
		{local(2024, time.March, 31, 2, 30), WinterOffset, false},
		{local(2024, time.October, 27, 2, 30), WinterOffset, true},
		{local(2024, time.October, 27, 2, 30), SummerOffset, false},
		{local(2024, time.July, 1, 12, 0), SummerOffset, true},
		{local(2024, time.July, 1, 12, 0), UTC, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v@%v", tt.dt, tt.offset), func(t *testing.T) {
			if got := rules.IsValidOffset(tt.dt, tt.offset); got != tt.want {
				t.Errorf("IsValidOffset(%v, %v) = %v, want %v", tt.dt, tt.offset, got, tt.want)
			}
		})
	}
}

func TestIsValidOffsetSelfConsistent(t *testing.T) {
	rules := NewCESTRules()
	start := local(2024, time.January, 1, 0, 0).In(time.UTC)
	for i := 0; i < 366*24*4; i++ {
		dt := civil.DateTimeOf(start.Add(time.Duration(i) * 15 * time.Minute))
		if !rules.IsValidOffset(dt, rules.OffsetOfLocalDateTime(dt)) {
			t.Fatalf("IsValidOffset(%v, OffsetOfLocalDateTime) = false", dt)
		}
	}
}

func TestIsFixedOffset(t *testing.T) {
	if NewCESTRules().IsFixedOffset() {
		t.Error("CESTRules.IsFixedOffset() = true")
	}
}

func TestCESTRulesEqual(t *testing.T) {
	a := NewCESTRules()
	b := NewCESTRules(WithCache(4))
	var nilRules *CESTRules

	tests := []struct {
		name  string
		other Rules
		want  bool
	}{
		{"self", a, true},
		{"other instance", b, true},
		{"nil interface", nil, false},
		{"typed nil", nilRules, false},
		{"fixed", Fixed(WinterOffset), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Equal(tt.other); got != tt.want {
				t.Errorf("Equal(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
	if got := a.String(); got != "CurrentCESTZoneRules()" {
		t.Errorf("String() = %q", got)
	}
}

func TestCachedRulesMatchUncached(t *testing.T) {
	plain := NewCESTRules()
	cached := NewCESTRules(WithCache(2))

	for i := 0; i < 2000; i++ {
		instant := utc(2020, time.January, 1, 0, 0).Add(time.Duration(i) * 37 * time.Hour)
		if a, b := plain.OffsetOfInstant(instant), cached.OffsetOfInstant(instant); a != b {
			t.Fatalf("OffsetOfInstant(%v): plain %v, cached %v", instant, a, b)
		}
		dt := civil.DateTimeOf(instant)
		if a, b := plain.OffsetOfLocalDateTime(dt), cached.OffsetOfLocalDateTime(dt); a != b {
			t.Fatalf("OffsetOfLocalDateTime(%v): plain %v, cached %v", dt, a, b)
		}
	}
}

func TestZeroValueRules(t *testing.T) {
	var r CESTRules
	if got := r.OffsetOfInstant(utc(2024, time.July, 1, 0, 0)); got != SummerOffset {
		t.Errorf("zero CESTRules OffsetOfInstant = %v, want summer", got)
	}
}

func TestNextAndPreviousTransition(t *testing.T) {
	rules := NewCESTRules()
	spring24 := utc(2024, time.March, 31, 1, 0)
	fall24 := utc(2024, time.October, 27, 1, 0)
	fall23 := utc(2023, time.October, 29, 1, 0)
	spring25 := utc(2025, time.March, 30, 1, 0)

	tests := []struct {
		name string
		t    time.Time
		next time.Time
		prev time.Time
	}{
		{"january", utc(2024, time.January, 5, 0, 0), spring24, fall23},
		{"at spring", spring24, fall24, spring24},
		{"summer", utc(2024, time.August, 1, 0, 0), fall24, spring24},
		{"at fall", fall24, spring25, fall24},
		{"december", utc(2024, time.December, 1, 0, 0), spring25, fall24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.NextTransition(tt.t); !got.Equal(tt.next) {
				t.Errorf("NextTransition(%v) = %v, want %v", tt.t, got, tt.next)
			}
			if got := rules.PreviousTransition(tt.t); !got.Equal(tt.prev) {
				t.Errorf("PreviousTransition(%v) = %v, want %v", tt.t, got, tt.prev)
			}
		})
	}
}

func TestConcurrentQueries(t *testing.T) {
	rules := NewCESTRules(WithCache(8))
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for year := 2000 + g; year < 2050; year++ {
				if got := rules.OffsetOfInstant(utc(year, time.July, 1, 0, 0)); got != SummerOffset {
					t.Errorf("July %d = %v", year, got)
				}
			}
		}()
	}
	wg.Wait()
}
