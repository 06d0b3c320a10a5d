package outage

import (
	"fmt"
	"math"
)

// SplitHours decodes a fractional hour into clock hours and minutes.
// Minutes are rounded to the nearest whole minute; a value that rounds up to
// 60 carries into the hour, so 24.0 (and anything rounding to it) yields 24:00.
func SplitHours(hours float64) (int, int, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 || hours > 24 {
		return 0, 0, fmt.Errorf("%w: hour value %v out of range [0, 24]", ErrMalformedPeriod, hours)
	}
	whole := int(hours)
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	return whole, minutes, nil
}

// FormatHours renders a fractional hour as "HH:MM".
func FormatHours(hours float64) (string, error) {
	h, m, err := SplitHours(hours)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}
