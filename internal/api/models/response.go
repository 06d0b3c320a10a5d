package models

import "time"

// StatusResponse is the entity view: binary state plus attributes.
type StatusResponse struct {
	Name       string      `json:"name"`
	UniqueID   string      `json:"unique_id"`
	State      string      `json:"state"` // "on" or "off"
	Attributes interface{} `json:"attributes"`
}

// Event represents one scheduled outage
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Group       string    `json:"group"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// EventsResponse is returned by range queries
type EventsResponse struct {
	Events []Event    `json:"events"`
	Count  int        `json:"count"`
	Window TimeWindow `json:"window"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RefreshResponse reports refresher health
type RefreshResponse struct {
	LastAttempt     *time.Time `json:"last_attempt,omitempty"`
	LastSuccess     *time.Time `json:"last_success,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	Intervals       int        `json:"intervals"`
	Issues          int        `json:"issues"`
	IntervalMinutes int        `json:"interval_minutes"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
