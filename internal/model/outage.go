package model

import "time"

// OutagePeriod is one period as the provider reports it: a calendar date plus
// fractional start/end hours (13.5 = 13:30).
type OutagePeriod struct {
	Date  time.Time
	Start float64
	End   float64
}

// OutageInterval is a normalized outage with absolute timestamps.
// Start is always before End.
type OutageInterval struct {
	Start time.Time
	End   time.Time

	Group       string
	Summary     string
	Description string
}

func (i OutageInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether t lies within the interval, bounds included.
func (i OutageInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// Touches reports whether other shares any instant with i: either endpoint of
// other falls inside i, or other covers i entirely. Bounds are inclusive, so
// back-to-back intervals touch.
func (i OutageInterval) Touches(other OutageInterval) bool {
	return i.Contains(other.Start) ||
		i.Contains(other.End) ||
		(!other.Start.After(i.Start) && !other.End.Before(i.End))
}

// OverlapsWindow reports whether the interval should be listed for a range
// query over [start, end]: it starts or ends inside the window, or spans it.
func (i OutageInterval) OverlapsWindow(start, end time.Time) bool {
	inWindow := func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}
	return inWindow(i.Start) ||
		inWindow(i.End) ||
		(!i.Start.After(start) && !i.End.Before(end))
}
