package api

import "time"

// OffsetResponse answers /api/v1/offset.
type OffsetResponse struct {
	Instant        time.Time `json:"instant"`
	NextTransition time.Time `json:"next_transition,omitzero"`
	Offset         string    `json:"offset"`
	Regime         string    `json:"regime"`
	LocalTime      string    `json:"local_time"`
}

// LocalResponse answers /api/v1/local.
type LocalResponse struct {
	Instant  time.Time `json:"instant"`
	DateTime string    `json:"datetime"`
	Offset   string    `json:"offset"`
	Regime   string    `json:"regime"`
	Region   string    `json:"region,omitempty"`
}

// ValidResponse answers /api/v1/valid.
type ValidResponse struct {
	DateTime string `json:"datetime"`
	Offset   string `json:"offset"`
	Valid    bool   `json:"valid"`
}

// TransitionsResponse answers /api/v1/transitions.
type TransitionsResponse struct {
	Spring      time.Time `json:"spring"`
	Fall        time.Time `json:"fall"`
	SpringLocal string    `json:"spring_local"`
	FallLocal   string    `json:"fall_local"`
	Year        int       `json:"year"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
