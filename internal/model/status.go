package model

// GridStatus is the derived power state at an instant.
// Keep these values stable; they are exposed as the detailed_state attribute.
type GridStatus string

const (
	StatusNoSchedule GridStatus = "no_schedule"
	StatusOn         GridStatus = "grid_on"
	StatusOutage     GridStatus = "outage"
)

// Binary entity states.
const (
	StateOn  = "on"
	StateOff = "off"
)

// BinaryState collapses the status to on/off. Having no schedule reads as
// off, the same as an outage.
func (s GridStatus) BinaryState() string {
	if s == StatusOn {
		return StateOn
	}
	return StateOff
}
