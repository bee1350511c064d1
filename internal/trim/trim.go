package trim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTrim marks a trim the caller must rewrite, such as an
	// explicit zero end (ambiguous with "no slice"; pass an open end instead).
	ErrInvalidTrim = errors.New("invalid trim")
	// ErrOutOfRange marks a raw frame index whose magnitude exceeds the
	// clip's frame count.
	ErrOutOfRange = errors.New("trim out of range")
	// ErrBackwards marks a trim whose resolved start is not before its end.
	ErrBackwards = errors.New("trim start not before end")
)

// Trim is a half-open frame interval with optional endpoints. A nil Start
// means the clip head, a nil End the clip tail. Negative values count back
// from the end of the clip.
type Trim struct {
	Start *int
	End   *int
}

// Bounds builds a trim with both endpoints explicit.
func Bounds(start, end int) Trim {
	return Trim{Start: &start, End: &end}
}

// From builds a trim open on the right.
func From(start int) Trim {
	return Trim{Start: &start}
}

// Until builds a trim open on the left.
func Until(end int) Trim {
	return Trim{End: &end}
}

// Whole builds the trim covering the entire clip.
func Whole() Trim {
	return Trim{}
}

func (t Trim) String() string {
	return fmt.Sprintf("%s:%s", formatEndpoint(t.Start), formatEndpoint(t.End))
}

func formatEndpoint(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// Parse reads a "START:END" trim specification. Either side may be empty for
// an open endpoint, and both sides accept negative offsets from the clip end.
func Parse(spec string) (Trim, error) {
	spec = strings.TrimSpace(spec)
	idx := strings.IndexByte(spec, ':')
	if idx < 0 {
		return Trim{}, fmt.Errorf("%w: %q is not START:END", ErrInvalidTrim, spec)
	}
	var out Trim
	if raw := strings.TrimSpace(spec[:idx]); raw != "" {
		start, err := strconv.Atoi(raw)
		if err != nil {
			return Trim{}, fmt.Errorf("%w: start %q is not a frame index", ErrInvalidTrim, raw)
		}
		out.Start = &start
	}
	if raw := strings.TrimSpace(spec[idx+1:]); raw != "" {
		end, err := strconv.Atoi(raw)
		if err != nil {
			return Trim{}, fmt.Errorf("%w: end %q is not a frame index", ErrInvalidTrim, raw)
		}
		out.End = &end
	}
	return out, nil
}

// Normalized is a validated frame interval: 0 <= Start < End <= numFrames.
type Normalized struct {
	Start int
	End   int
}

// Overlap reports two adjacent trims (in caller order) whose resolved
// intervals touch or overlap. It is advisory, never an error.
type Overlap struct {
	Index int // position of the second trim of the pair
	Prev  Normalized
	Next  Normalized
}

// Normalize resolves every trim against the clip's frame count. All failures
// surface before any result is returned; overlaps between adjacent trims are
// reported separately and do not fail the call. Only adjacent pairs are
// compared; trims are expected in playback order.
func Normalize(trims []Trim, numFrames int) ([]Normalized, []Overlap, error) {
	if numFrames < 0 {
		return nil, nil, fmt.Errorf("%w: negative frame count %d", ErrOutOfRange, numFrames)
	}

	out := make([]Normalized, 0, len(trims))
	for i, t := range trims {
		n, err := normalizeOne(t, numFrames)
		if err != nil {
			return nil, nil, fmt.Errorf("trim %d (%s): %w", i, t, err)
		}
		out = append(out, n)
	}

	var overlaps []Overlap
	for i := 1; i < len(out); i++ {
		if out[i-1].End >= out[i].Start {
			overlaps = append(overlaps, Overlap{Index: i, Prev: out[i-1], Next: out[i]})
		}
	}
	return out, overlaps, nil
}

func normalizeOne(t Trim, numFrames int) (Normalized, error) {
	start := 0
	if t.Start != nil {
		start = *t.Start
		if abs(start) > numFrames {
			return Normalized{}, fmt.Errorf("%w: start %d exceeds %d frames", ErrOutOfRange, start, numFrames)
		}
		if start < 0 {
			start += numFrames
		}
	}

	end := numFrames
	if t.End != nil {
		end = *t.End
		if end == 0 {
			return Normalized{}, fmt.Errorf("%w: explicit end 0 is ambiguous, leave the end open instead", ErrInvalidTrim)
		}
		if abs(end) > numFrames {
			return Normalized{}, fmt.Errorf("%w: end %d exceeds %d frames", ErrOutOfRange, end, numFrames)
		}
		if end < 0 {
			end += numFrames
		}
	}

	if start >= end {
		return Normalized{}, fmt.Errorf("%w: resolved to [%d, %d)", ErrBackwards, start, end)
	}
	return Normalized{Start: start, End: end}, nil
}

// IsWholeClip reports whether the normalized trims are the single interval
// covering the entire clip, in which case extraction is a no-op.
func IsWholeClip(norms []Normalized, numFrames int) bool {
	return len(norms) == 1 && norms[0].Start == 0 && norms[0].End == numFrames
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
