// Package main implements the cestz web server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/codeGROOVE-dev/cestz/pkg/api"
	"github.com/codeGROOVE-dev/cestz/pkg/zone"
)

var (
	port      = flag.String("port", "8080", "Port for web server (or set PORT)")
	cacheSize = flag.Int("cache", 256, "Memoize transitions for up to N years, 0 disables")
	rateLimit = flag.Int("rate", api.DefaultRateLimit, "Requests per minute per client, 0 disables (or set RATE_LIMIT)")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	version   = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("cestz Server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if p := os.Getenv("PORT"); p != "" && *port == "8080" {
		*port = p
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" && *rateLimit == api.DefaultRateLimit {
		if n, err := strconv.Atoi(v); err == nil {
			*rateLimit = n
		} else {
			logger.Warn("ignoring invalid RATE_LIMIT", "value", v, "error", err)
		}
	}

	logger.Info("Server configuration",
		"port", *port,
		"verbose", *verbose,
		"cache", *cacheSize,
		"rate_limit", *rateLimit)

	z := zone.NewCESTZone(zone.WithCache(*cacheSize), zone.WithLogger(logger))
	server := api.New(z, api.WithLogger(logger), api.WithRateLimit(*rateLimit))

	srv := &http.Server{
		Addr:              ":" + *port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", *port, "zone", z)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
