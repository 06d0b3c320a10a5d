package outage

import (
	"encoding/json"
	"testing"
	"time"

	"yasno-outages/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kyiv = func() *time.Location {
	loc, err := time.LoadLocation(TimeZone)
	if err != nil {
		panic(err)
	}
	return loc
}()

func at(hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", "2024-11-24 "+hhmm, kyiv)
	if err != nil {
		panic(err)
	}
	return t
}

func iv(start, end string) model.OutageInterval {
	return model.OutageInterval{Start: at(start), End: at(end), Group: "1.1"}
}

func TestStatusAtEmpty(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(nil, time.Time{}, 0)
	for _, now := range []time.Time{at("00:00"), at("11:00"), time.Now()} {
		assert.Equal(t, model.StatusNoSchedule, snap.StatusAt(now))
	}
	_, ok := snap.CurrentEvent(at("11:00"))
	assert.False(t, ok)
	_, ok = snap.NextEvent(at("11:00"))
	assert.False(t, ok)

	var nilSnap *Snapshot
	assert.Equal(t, model.StatusNoSchedule, nilSnap.StatusAt(at("11:00")))
	assert.Empty(t, nilSnap.EventsOverlapping(at("00:00"), at("23:00")))
}

func TestStatusDuringOutage(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]model.OutageInterval{iv("10:00", "12:00")}, time.Now(), 0)
	now := at("11:00")

	assert.Equal(t, model.StatusOutage, snap.StatusAt(now))
	cur, ok := snap.CurrentEvent(now)
	require.True(t, ok)
	assert.True(t, cur.Start.Equal(at("10:00")))
	_, ok = snap.NextEvent(now)
	assert.False(t, ok)
}

func TestStatusBetweenOutages(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]model.OutageInterval{iv("10:00", "12:00"), iv("15:00", "17:00")}, time.Now(), 0)
	now := at("13:00")

	assert.Equal(t, model.StatusOn, snap.StatusAt(now))
	_, ok := snap.CurrentEvent(now)
	assert.False(t, ok)
	next, ok := snap.NextEvent(now)
	require.True(t, ok)
	assert.True(t, next.Start.Equal(at("15:00")))
	assert.True(t, next.End.Equal(at("17:00")))
}

func TestStatusBoundsAreInclusive(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]model.OutageInterval{iv("10:00", "12:00")}, time.Now(), 0)
	assert.Equal(t, model.StatusOutage, snap.StatusAt(at("10:00")))
	assert.Equal(t, model.StatusOutage, snap.StatusAt(at("12:00")))
	assert.Equal(t, model.StatusOn, snap.StatusAt(at("12:01")))

	_, ok := snap.NextEvent(at("10:00"))
	assert.False(t, ok, "an interval starting exactly now is current, not next")
}

func TestNextEventPicksEarliestStart(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]model.OutageInterval{iv("18:00", "19:00"), iv("15:00", "16:00")}, time.Now(), 0)
	next, ok := snap.NextEvent(at("13:00"))
	require.True(t, ok)
	assert.True(t, next.Start.Equal(at("15:00")))
}

func TestEvent(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]model.OutageInterval{iv("10:00", "12:00"), iv("15:00", "17:00")}, time.Now(), 0)

	ev, ok := snap.Event(at("11:00"))
	require.True(t, ok)
	assert.True(t, ev.Start.Equal(at("10:00")), "current outage comes first")

	ev, ok = snap.Event(at("13:00"))
	require.True(t, ok)
	assert.True(t, ev.Start.Equal(at("15:00")))

	_, ok = snap.Event(at("18:00"))
	assert.False(t, ok)
}

func TestEventsOverlapping(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]model.OutageInterval{iv("10:00", "12:00")}, time.Now(), 0)

	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{name: "end inside window", start: "11:30", end: "14:00", want: 1},
		{name: "start inside window", start: "09:00", end: "10:30", want: 1},
		{name: "interval spans window", start: "10:30", end: "11:30", want: 1},
		{name: "window spans interval", start: "09:00", end: "13:00", want: 1},
		{name: "touching window end", start: "08:00", end: "10:00", want: 1},
		{name: "before", start: "08:00", end: "09:00", want: 0},
		{name: "after", start: "12:01", end: "13:00", want: 0},
	}
	for _, tt := range tests {
		got := snap.EventsOverlapping(at(tt.start), at(tt.end))
		assert.Len(t, got, tt.want, tt.name)
	}
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]model.OutageInterval{iv("10:00", "12:00"), iv("15:00", "17:00")}, time.Now(), 0)

	attrs := snap.Attributes(at("10:30").Add(20 * time.Second))
	assert.Equal(t, model.StatusOutage, attrs.DetailedState)
	assert.True(t, attrs.HasSchedule)
	assert.Equal(t, 2, attrs.TotalOutagesScheduled)
	require.NotNil(t, attrs.MinutesUntilPower)
	assert.Equal(t, 89, *attrs.MinutesUntilPower, "minutes truncate toward zero")
	require.NotNil(t, attrs.CurrentOutageEnd)
	assert.True(t, attrs.CurrentOutageEnd.Equal(at("12:00")))
	require.NotNil(t, attrs.MinutesUntilOutage)
	assert.Equal(t, 269, *attrs.MinutesUntilOutage)

	attrs = snap.Attributes(at("18:00"))
	assert.Equal(t, model.StatusOn, attrs.DetailedState)
	assert.Nil(t, attrs.CurrentOutageStart)
	assert.Nil(t, attrs.NextOutageStart)
	assert.Nil(t, attrs.MinutesUntilOutage)

	empty := NewSnapshot(nil, time.Time{}, 0).Attributes(at("18:00"))
	assert.False(t, empty.HasSchedule)
	assert.Equal(t, model.StatusNoSchedule, empty.DetailedState)
}

func TestAttributesJSON(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot([]model.OutageInterval{iv("10:00", "12:00")}, time.Now(), 0)
	raw, err := json.Marshal(snap.Attributes(at("11:00")))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "outage", got["detailed_state"])
	assert.Equal(t, "2024-11-24T10:00:00+02:00", got["current_outage_start"])
	assert.Equal(t, "2024-11-24T12:00:00+02:00", got["current_outage_end"])
	assert.Equal(t, float64(60), got["minutes_until_power"])
	assert.NotContains(t, got, "next_outage_start")
}

func TestSnapshotIsolatedFromCaller(t *testing.T) {
	t.Parallel()

	in := []model.OutageInterval{iv("10:00", "12:00")}
	snap := NewSnapshot(in, time.Now(), 0)
	in[0] = iv("20:00", "21:00")

	out := snap.Intervals()
	out[0] = iv("22:00", "23:00")

	assert.True(t, snap.Intervals()[0].Start.Equal(at("10:00")))
}
