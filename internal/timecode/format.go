package timecode

import (
	"errors"
	"fmt"
	"math"
)

// ErrPrecision marks a request for an unsupported fractional digit count.
var ErrPrecision = errors.New("unsupported timestamp precision")

// Format renders a second offset as a zero-padded HH:MM:SS timestamp with
// the requested fractional digit count. Supported precisions are 0 (whole
// seconds), 3 (milliseconds), 6 (microseconds), and 9 (nanoseconds).
func Format(seconds float64, precision int) (string, error) {
	switch precision {
	case 0, 3, 6, 9:
	default:
		return "", fmt.Errorf("%w: %d (want 0, 3, 6, or 9)", ErrPrecision, precision)
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("format timestamp: invalid second offset %v", seconds)
	}

	nanos := int64(math.Round(seconds * 1e9))
	divisor := int64(1)
	for i := 0; i < 9-precision; i++ {
		divisor *= 10
	}
	// Round to the target precision first so 59.9996s at ms precision
	// carries into the next minute instead of printing 60.000.
	units := (nanos + divisor/2) / divisor
	perSecond := int64(1e9) / divisor

	frac := units % perSecond
	totalSeconds := units / perSecond
	h := totalSeconds / 3600
	m := (totalSeconds / 60) % 60
	s := totalSeconds % 60

	if precision == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
	}
	return fmt.Sprintf("%02d:%02d:%02d.%0*d", h, m, s, precision, frac), nil
}

// FormatRange renders both ends of a timestamp range.
func FormatRange(r Range, precision int) (string, string, error) {
	start, err := Format(r.Start, precision)
	if err != nil {
		return "", "", err
	}
	end, err := Format(r.End, precision)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}
