package outage

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDay    = errors.New("malformed day")
	ErrMalformedPeriod = errors.New("malformed period")
)

// Issue records a piece of the document that was skipped during a build.
// Period is -1 when the whole day was skipped.
type Issue struct {
	Source string
	Day    string
	Period int
	Err    error
}

func (i *Issue) Error() string {
	if i.Period < 0 {
		return fmt.Sprintf("%s day %q: %v", i.Source, i.Day, i.Err)
	}
	return fmt.Sprintf("%s day %q period %d: %v", i.Source, i.Day, i.Period, i.Err)
}

func (i *Issue) Unwrap() error { return i.Err }
