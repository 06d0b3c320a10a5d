package handlers

import (
	"fmt"
	"net/http"
	"time"

	"yasno-outages/internal/api/models"
	"yasno-outages/internal/model"
	"yasno-outages/internal/outage"
	"yasno-outages/internal/refresh"

	"github.com/gin-gonic/gin"
)

// Source is where handlers read the current schedule from.
type Source interface {
	Snapshot() *outage.Snapshot
	Status() refresh.Status
}

// OutageHandler serves the calendar, status and attributes for one
// city/group.
type OutageHandler struct {
	source   Source
	name     string
	uniqueID string
	interval time.Duration
	loc      *time.Location

	// Now is overridable for tests.
	Now func() time.Time
}

// NewOutageHandler creates a new outage handler
func NewOutageHandler(source Source, name, uniqueID string, interval time.Duration, loc *time.Location) *OutageHandler {
	return &OutageHandler{
		source:   source,
		name:     name,
		uniqueID: uniqueID,
		interval: interval,
		loc:      loc,
		Now:      time.Now,
	}
}

// GetStatus handles GET /api/v1/status
func (h *OutageHandler) GetStatus(c *gin.Context) {
	now, ok := h.bindNow(c)
	if !ok {
		return
	}
	snap := h.source.Snapshot()
	status := snap.StatusAt(now)

	c.JSON(http.StatusOK, models.StatusResponse{
		Name:       h.name,
		UniqueID:   h.uniqueID,
		State:      status.BinaryState(),
		Attributes: snap.Attributes(now),
	})
}

// GetEvent handles GET /api/v1/event: the current outage, else the next one
func (h *OutageHandler) GetEvent(c *gin.Context) {
	now, ok := h.bindNow(c)
	if !ok {
		return
	}
	iv, found := h.source.Snapshot().Event(now)
	if !found {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toEvent(iv))
}

// ListEvents handles GET /api/v1/events?start=...&end=...
func (h *OutageHandler) ListEvents(c *gin.Context) {
	var req models.EventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	start, err := h.parseTime(req.Start)
	if err != nil {
		badRequest(c, "INVALID_START", err.Error())
		return
	}
	end, err := h.parseTime(req.End)
	if err != nil {
		badRequest(c, "INVALID_END", err.Error())
		return
	}
	if end.Before(start) {
		badRequest(c, "INVALID_WINDOW", "end must not be before start")
		return
	}

	intervals := h.source.Snapshot().EventsOverlapping(start, end)
	events := make([]models.Event, len(intervals))
	for i, iv := range intervals {
		events[i] = toEvent(iv)
	}
	c.JSON(http.StatusOK, models.EventsResponse{
		Events: events,
		Count:  len(events),
		Window: models.TimeWindow{Start: start, End: end},
	})
}

// GetRefreshStatus handles GET /api/v1/refresh
func (h *OutageHandler) GetRefreshStatus(c *gin.Context) {
	st := h.source.Status()
	resp := models.RefreshResponse{
		Intervals:       st.Intervals,
		Issues:          st.Issues,
		IntervalMinutes: int(h.interval / time.Minute),
	}
	if !st.LastAttempt.IsZero() {
		t := st.LastAttempt
		resp.LastAttempt = &t
	}
	if !st.LastSuccess.IsZero() {
		t := st.LastSuccess
		resp.LastSuccess = &t
	}
	if st.LastError != nil {
		resp.LastError = st.LastError.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OutageHandler) bindNow(c *gin.Context) (time.Time, bool) {
	var req models.AtRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return time.Time{}, false
	}
	if req.Now == "" {
		return h.Now().In(h.loc), true
	}
	now, err := h.parseTime(req.Now)
	if err != nil {
		badRequest(c, "INVALID_NOW", err.Error())
		return time.Time{}, false
	}
	return now, true
}

func (h *OutageHandler) parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected RFC 3339): %w", s, err)
	}
	return t.In(h.loc), nil
}

func toEvent(iv model.OutageInterval) models.Event {
	return models.Event{
		Summary:     iv.Summary,
		Description: iv.Description,
		Group:       iv.Group,
		Start:       iv.Start,
		End:         iv.End,
	}
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
