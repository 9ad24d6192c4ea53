// Package main implements the cestz CLI for CET/CEST offset lookups.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/cestz/pkg/client"
	"github.com/codeGROOVE-dev/cestz/pkg/histogram"
	"github.com/codeGROOVE-dev/cestz/pkg/tzconvert"
	"github.com/codeGROOVE-dev/cestz/pkg/zone"
)

var (
	instantFlag = flag.String("instant", "", "Instant to resolve, RFC 3339 (default now)")
	localFlag   = flag.String("local", "", "Local date-time to resolve, YYYY-MM-DDTHH:MM[:SS]")
	offsetFlag  = flag.String("offset", "", "With -local: check whether this offset (e.g. +02:00) is valid")
	yearFlag    = flag.Int("year", 0, "Print the transitions of this year")
	dayFlag     = flag.String("day", "", "Draw the offsets of this local day, YYYY-MM-DD")
	remoteURL   = flag.String("remote", "", "Query a cestz server instead of computing locally (or set CESTZ_SERVER)")
	cacheSize   = flag.Int("cache", 0, "Memoize transitions for up to N years (or set CESTZ_CACHE)")
	noColor     = flag.Bool("no-color", false, "Disable colored output")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Show version")
)

var (
	winterColor = color.New(color.FgBlue, color.Bold)
	summerColor = color.New(color.FgYellow, color.Bold)
	noteColor   = color.New(color.FgHiBlack)
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("cestz CLI v1.0.0")
		return
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if *noColor {
		color.NoColor = true
	}
	if *remoteURL == "" {
		*remoteURL = os.Getenv("CESTZ_SERVER")
	}
	if *cacheSize == 0 {
		if v, err := strconv.Atoi(os.Getenv("CESTZ_CACHE")); err == nil {
			*cacheSize = v
		}
	}

	var err error
	if *remoteURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err = runRemote(ctx, client.New(*remoteURL, client.WithLogger(logger)))
	} else {
		err = runLocal(zone.NewCESTZone(zone.WithCache(*cacheSize), zone.WithLogger(logger)))
	}
	if err != nil {
		logger.Error("lookup failed", "error", err)
		fmt.Fprintf(os.Stderr, "cestz: %v\n", err)
		os.Exit(1)
	}
}

func offsetColor(offset string) *color.Color {
	if offset == zone.SummerOffset.String() {
		return summerColor
	}
	return winterColor
}

func parseInstant() (time.Time, error) {
	if *instantFlag == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, *instantFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing -instant: %w", err)
	}
	return t, nil
}

func runLocal(z *zone.Zone) error {
	rules, ok := z.Rules().(*zone.CESTRules)
	if !ok {
		return errors.New("zone has no CET/CEST rules")
	}

	switch {
	case *yearFlag != 0:
		p := rules.Transitions(*yearFlag)
		fmt.Printf("🌱 spring forward: %s  (local %s → 03:00)\n",
			p.SpringInstant().Format(time.RFC3339), tzconvert.FormatLocal(p.SpringWall()))
		fmt.Printf("🍂 fall back:      %s  (local 03:00 → %s)\n",
			p.FallInstant().Format(time.RFC3339), tzconvert.FormatLocal(p.FallWall()))

	case *dayFlag != "":
		day, err := civil.ParseDate(*dayFlag)
		if err != nil {
			return fmt.Errorf("parsing -day: %w", err)
		}
		fmt.Print(histogram.GenerateHistogram(rules, day, zone.WinterOffset))

	case *localFlag != "":
		dt, err := tzconvert.ParseLocal(*localFlag)
		if err != nil {
			return err
		}
		if *offsetFlag != "" {
			offset, err := zone.ParseOffset(*offsetFlag)
			if err != nil {
				return err
			}
			printValid(dt, offset.String(), rules.IsValidOffset(dt, offset))
			return nil
		}
		offset := rules.OffsetOfLocalDateTime(dt)
		printLocal(dt, offset.String(), rules.Classify(dt).String(), z.ToInstant(dt))

	default:
		t, err := parseInstant()
		if err != nil {
			return err
		}
		offset := rules.OffsetOfInstant(t)
		printInstant(t, offset.String(), z.ToLocal(t), rules.NextTransition(t))
	}
	return nil
}

func runRemote(ctx context.Context, c *client.Client) error {
	switch {
	case *yearFlag != 0:
		tr, err := c.Transitions(ctx, *yearFlag)
		if err != nil {
			return err
		}
		fmt.Printf("🌱 spring forward: %s  (local %s → 03:00)\n", tr.Spring.Format(time.RFC3339), tr.SpringLocal)
		fmt.Printf("🍂 fall back:      %s  (local 03:00 → %s)\n", tr.Fall.Format(time.RFC3339), tr.FallLocal)

	case *dayFlag != "":
		return errors.New("-day is only available locally")

	case *localFlag != "":
		dt, err := tzconvert.ParseLocal(*localFlag)
		if err != nil {
			return err
		}
		if *offsetFlag != "" {
			offset, err := zone.ParseOffset(*offsetFlag)
			if err != nil {
				return err
			}
			valid, err := c.IsValidOffset(ctx, dt, offset)
			if err != nil {
				return err
			}
			printValid(dt, offset.String(), valid)
			return nil
		}
		resp, err := c.OffsetOfLocalDateTime(ctx, dt)
		if err != nil {
			return err
		}
		printLocal(dt, resp.Offset, resp.Region, resp.Instant)

	default:
		t, err := parseInstant()
		if err != nil {
			return err
		}
		resp, err := c.OffsetOfInstant(ctx, t)
		if err != nil {
			return err
		}
		local, err := tzconvert.ParseLocal(resp.LocalTime)
		if err != nil {
			return fmt.Errorf("server returned local time %q: %w", resp.LocalTime, err)
		}
		printInstant(resp.Instant, resp.Offset, local, resp.NextTransition)
	}
	return nil
}

func printInstant(t time.Time, offset string, local civil.DateTime, next time.Time) {
	fmt.Printf("🕐 %s  →  %s  %s\n",
		t.UTC().Format(time.RFC3339), tzconvert.FormatLocal(local), offsetColor(offset).Sprint(offset))
	if !next.IsZero() {
		noteColor.Printf("   next transition %s\n", next.Format(time.RFC3339))
	}
}

func printLocal(dt civil.DateTime, offset, region string, instant time.Time) {
	fmt.Printf("🕐 %s  %s  →  %s\n",
		tzconvert.FormatLocal(dt), offsetColor(offset).Sprint(offset), instant.UTC().Format(time.RFC3339))
	switch region {
	case "gap":
		noteColor.Println("   this local time never occurs; resolved forward to summer time")
	case "overlap":
		noteColor.Println("   this local time occurs twice; resolved to winter time")
	}
}

func printValid(dt civil.DateTime, offset string, valid bool) {
	verdict := color.New(color.FgGreen).Sprint("valid")
	if !valid {
		verdict = color.New(color.FgRed).Sprint("not valid")
	}
	fmt.Printf("%s at %s is %s\n", offset, tzconvert.FormatLocal(dt), verdict)
}
