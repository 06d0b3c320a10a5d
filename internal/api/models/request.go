package models

// EventsRequest is the query for GET /api/v1/events.
// Times are RFC 3339.
type EventsRequest struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

// AtRequest carries an optional evaluation instant (RFC 3339); empty means now.
type AtRequest struct {
	Now string `form:"now,omitempty"`
}
