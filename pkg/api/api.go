// Package api serves offset queries over HTTP as JSON.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"cloud.google.com/go/civil"

	"github.com/codeGROOVE-dev/cestz/pkg/tzconvert"
	"github.com/codeGROOVE-dev/cestz/pkg/zone"
)

// ErrBadRequest marks errors caused by client input.
var ErrBadRequest = errors.New("bad request")

// DefaultRateLimit is the per-client requests-per-minute limit.
const DefaultRateLimit = 600

// Option configures a Server.
type Option func(*Server)

// WithRateLimit sets the per-client requests-per-minute limit. Zero disables it.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		s.limiter = newRateLimiter(perMinute)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server answers offset queries for one zone.
type Server struct {
	zone    *zone.Zone
	limiter *rateLimiter
	logger  *slog.Logger
	mux     *http.ServeMux
	seq     atomic.Uint64
}

// transitioner is implemented by rules that change offset over the year.
type transitioner interface {
	NextTransition(t time.Time) time.Time
}

// classifier is implemented by rules that can place a reading in a region.
type classifier interface {
	Classify(dt civil.DateTime) zone.Region
}

// New returns a Server for z.
func New(z *zone.Zone, opts ...Option) *Server {
	s := &Server{
		zone:    z,
		limiter: newRateLimiter(DefaultRateLimit),
		logger:  slog.Default(),
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/offset", s.handleOffset)
	s.mux.HandleFunc("GET /api/v1/local", s.handleLocal)
	s.mux.HandleFunc("GET /api/v1/valid", s.handleValid)
	s.mux.HandleFunc("GET /api/v1/transitions", s.handleTransitions)
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.wrap(s.mux)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) wrap(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := fmt.Sprintf("%d-%d", time.Now().Unix(), s.seq.Add(1))
		w.Header().Set("X-Request-ID", requestID)
		ip := clientIP(r)

		defer func() {
			if err := recover(); err != nil {
				const size = 64 << 10
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]
				s.logger.Error("PANIC: request handler crashed",
					"error", err,
					"path", r.URL.Path,
					"method", r.Method,
					"request_id", requestID,
					"client_ip", ip,
					"stack", string(buf))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		if !s.limiter.allow(ip) {
			s.logger.Warn("rate limit exceeded", "client_ip", ip, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		start := time.Now()
		handler.ServeHTTP(w, r)
		s.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"request_id", requestID,
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// fail writes err, as a 400 when it wraps ErrBadRequest.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrBadRequest) {
		s.logger.Info("rejected request", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func regime(rules zone.Rules, o zone.Offset) string {
	switch {
	case rules.IsFixedOffset():
		return "fixed"
	case o == zone.WinterOffset:
		return "winter"
	case o == zone.SummerOffset:
		return "summer"
	default:
		return "other"
	}
}

func requireParam(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", fmt.Errorf("%w: missing %q parameter", ErrBadRequest, name)
	}
	return v, nil
}

func parseInstant(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("instant")
	if v == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: instant must be RFC 3339: %w", ErrBadRequest, err)
	}
	return t.UTC(), nil
}

func parseDateTime(r *http.Request) (civil.DateTime, error) {
	v, err := requireParam(r, "datetime")
	if err != nil {
		return civil.DateTime{}, err
	}
	dt, err := tzconvert.ParseLocal(v)
	if err != nil {
		return civil.DateTime{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return dt, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "zone": s.zone.Name()})
}

func (s *Server) handleOffset(w http.ResponseWriter, r *http.Request) {
	t, err := parseInstant(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rules := s.zone.Rules()
	offset := rules.OffsetOfInstant(t)
	resp := OffsetResponse{
		Instant:   t,
		Offset:    offset.String(),
		Regime:    regime(rules, offset),
		LocalTime: tzconvert.FormatLocal(s.zone.ToLocal(t)),
	}
	if tr, ok := rules.(transitioner); ok {
		resp.NextTransition = tr.NextTransition(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLocal(w http.ResponseWriter, r *http.Request) {
	dt, err := parseDateTime(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rules := s.zone.Rules()
	offset := rules.OffsetOfLocalDateTime(dt)
	resp := LocalResponse{
		Instant:  s.zone.ToInstant(dt),
		DateTime: tzconvert.FormatLocal(dt),
		Offset:   offset.String(),
		Regime:   regime(rules, offset),
	}
	if c, ok := rules.(classifier); ok {
		resp.Region = c.Classify(dt).String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValid(w http.ResponseWriter, r *http.Request) {
	dt, err := parseDateTime(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	raw, err := requireParam(r, "offset")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	offset, err := zone.ParseOffset(raw)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	writeJSON(w, http.StatusOK, ValidResponse{
		DateTime: tzconvert.FormatLocal(dt),
		Offset:   offset.String(),
		Valid:    s.zone.Rules().IsValidOffset(dt, offset),
	})
}

func (s *Server) handleTransitions(w http.ResponseWriter, r *http.Request) {
	raw, err := requireParam(r, "year")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		s.fail(w, r, fmt.Errorf("%w: year must be between 1 and 9999", ErrBadRequest))
		return
	}

	rules, ok := s.zone.Rules().(*zone.CESTRules)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("zone %s has no transitions", s.zone))
		return
	}

	p := rules.Transitions(year)
	writeJSON(w, http.StatusOK, TransitionsResponse{
		Year:        year,
		Spring:      p.SpringInstant(),
		Fall:        p.FallInstant(),
		SpringLocal: tzconvert.FormatLocal(p.SpringWall()),
		FallLocal:   tzconvert.FormatLocal(p.FallWall()),
	})
}
