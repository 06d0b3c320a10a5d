package outage

import (
	"time"

	"yasno-outages/internal/model"
)

// Snapshot is an immutable, sorted interval list produced by one build. All
// queries are pure reads, so a Snapshot can be shared between goroutines
// without locking. A nil *Snapshot behaves as an empty one.
type Snapshot struct {
	intervals []model.OutageInterval
	builtAt   time.Time
	issues    int
}

// NewSnapshot copies intervals, which must already be sorted by start.
func NewSnapshot(intervals []model.OutageInterval, builtAt time.Time, issues int) *Snapshot {
	cp := make([]model.OutageInterval, len(intervals))
	copy(cp, intervals)
	return &Snapshot{intervals: cp, builtAt: builtAt, issues: issues}
}

// Intervals returns a copy of the interval list.
func (s *Snapshot) Intervals() []model.OutageInterval {
	if s == nil {
		return nil
	}
	cp := make([]model.OutageInterval, len(s.intervals))
	copy(cp, s.intervals)
	return cp
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.intervals)
}

func (s *Snapshot) BuiltAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.builtAt
}

// Issues is the number of days or periods skipped while building.
func (s *Snapshot) Issues() int {
	if s == nil {
		return 0
	}
	return s.issues
}

func (s *Snapshot) StatusAt(now time.Time) model.GridStatus {
	if s.Len() == 0 {
		return model.StatusNoSchedule
	}
	if _, ok := s.CurrentEvent(now); ok {
		return model.StatusOutage
	}
	return model.StatusOn
}

// CurrentEvent returns the first interval containing now, bounds included.
func (s *Snapshot) CurrentEvent(now time.Time) (model.OutageInterval, bool) {
	if s == nil {
		return model.OutageInterval{}, false
	}
	for _, iv := range s.intervals {
		if iv.Contains(now) {
			return iv, true
		}
	}
	return model.OutageInterval{}, false
}

// NextEvent returns the earliest interval starting strictly after now.
func (s *Snapshot) NextEvent(now time.Time) (model.OutageInterval, bool) {
	if s == nil {
		return model.OutageInterval{}, false
	}
	var (
		next  model.OutageInterval
		found bool
	)
	for _, iv := range s.intervals {
		if iv.Start.After(now) && (!found || iv.Start.Before(next.Start)) {
			next = iv
			found = true
		}
	}
	return next, found
}

// Event is the calendar's headline event: the current outage, or failing
// that the next one.
func (s *Snapshot) Event(now time.Time) (model.OutageInterval, bool) {
	if iv, ok := s.CurrentEvent(now); ok {
		return iv, true
	}
	return s.NextEvent(now)
}

// EventsOverlapping lists intervals that start or end inside [start, end], or
// span it entirely.
func (s *Snapshot) EventsOverlapping(start, end time.Time) []model.OutageInterval {
	out := []model.OutageInterval{}
	if s == nil {
		return out
	}
	for _, iv := range s.intervals {
		if iv.OverlapsWindow(start, end) {
			out = append(out, iv)
		}
	}
	return out
}

// Attributes are the informational values published next to the binary
// state. Optional fields are nil when there is no current or next outage.
type Attributes struct {
	DetailedState         model.GridStatus `json:"detailed_state"`
	HasSchedule           bool             `json:"has_schedule"`
	CurrentOutageStart    *time.Time       `json:"current_outage_start,omitempty"`
	CurrentOutageEnd      *time.Time       `json:"current_outage_end,omitempty"`
	MinutesUntilPower     *int             `json:"minutes_until_power,omitempty"`
	NextOutageStart       *time.Time       `json:"next_outage_start,omitempty"`
	NextOutageEnd         *time.Time       `json:"next_outage_end,omitempty"`
	MinutesUntilOutage    *int             `json:"minutes_until_outage,omitempty"`
	TotalOutagesScheduled int              `json:"total_outages_scheduled"`
}

// Attributes derives the summary attributes at now. Minute counts truncate
// toward zero.
func (s *Snapshot) Attributes(now time.Time) Attributes {
	attrs := Attributes{
		DetailedState:         s.StatusAt(now),
		HasSchedule:           s.Len() > 0,
		TotalOutagesScheduled: s.Len(),
	}
	if cur, ok := s.CurrentEvent(now); ok {
		start, end := cur.Start, cur.End
		mins := wholeMinutes(end.Sub(now))
		attrs.CurrentOutageStart = &start
		attrs.CurrentOutageEnd = &end
		attrs.MinutesUntilPower = &mins
	}
	if next, ok := s.NextEvent(now); ok {
		start, end := next.Start, next.End
		mins := wholeMinutes(start.Sub(now))
		attrs.NextOutageStart = &start
		attrs.NextOutageEnd = &end
		attrs.MinutesUntilOutage = &mins
	}
	return attrs
}

func wholeMinutes(d time.Duration) int {
	return int(d / time.Minute)
}
