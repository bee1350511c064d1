package clip

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Rate is a rational frame rate. A zero numerator marks a variable frame rate
// clip, whose timing must come from per-frame durations or a timecode file.
type Rate struct {
	Num int64
	Den int64
}

// Variable is the VFR sentinel rate.
var Variable = Rate{Num: 0, Den: 1}

// IsVariable reports whether the rate is the VFR sentinel.
func (r Rate) IsVariable() bool {
	return r.Num == 0
}

// Seconds returns the duration of one frame in seconds. Zero for VFR.
func (r Rate) Seconds() float64 {
	if r.Num == 0 || r.Den == 0 {
		return 0
	}
	return float64(r.Den) / float64(r.Num)
}

func (r Rate) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// ParseRate parses "24000/1001", "24", or "0" (VFR).
func ParseRate(value string) (Rate, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Rate{}, errors.New("parse rate: empty value")
	}
	num, den := value, "1"
	if idx := strings.IndexByte(value, '/'); idx >= 0 {
		num, den = value[:idx], value[idx+1:]
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return Rate{}, fmt.Errorf("parse rate numerator %q: %w", num, err)
	}
	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return Rate{}, fmt.Errorf("parse rate denominator %q: %w", den, err)
	}
	if d <= 0 {
		return Rate{}, fmt.Errorf("parse rate: non-positive denominator in %q", value)
	}
	if n < 0 {
		return Rate{}, fmt.Errorf("parse rate: negative numerator in %q", value)
	}
	if n == 0 {
		return Variable, nil
	}
	return Rate{Num: n, Den: d}, nil
}

// Clip holds the immutable metadata of one video clip: how many frames it has
// and how fast they play. Durations carries per-frame timing for VFR clips.
type Clip struct {
	NumFrames   int
	Rate        Rate
	Fingerprint string

	// Durations supplies exact per-frame duration fractions for VFR clips.
	// May be nil for CFR clips or when an external timecode file is used.
	Durations DurationSource
}

// Validate checks structural invariants before the clip enters the pipeline.
func (c Clip) Validate() error {
	if c.NumFrames < 0 {
		return fmt.Errorf("clip: negative frame count %d", c.NumFrames)
	}
	if c.Rate.Den <= 0 {
		return fmt.Errorf("clip: invalid rate denominator %d", c.Rate.Den)
	}
	return nil
}

// DurationSource yields per-frame duration fractions in frame order. It is
// forward-only and single-pass: Next returns the numerator and denominator of
// the next frame's duration in seconds, with ok=false once exhausted.
type DurationSource interface {
	Next() (num, den int64, ok bool, err error)
}

// SliceDurations adapts an in-memory fraction list to a DurationSource.
type SliceDurations struct {
	Fractions [][2]int64
	pos       int
}

func (s *SliceDurations) Next() (int64, int64, bool, error) {
	if s.pos >= len(s.Fractions) {
		return 0, 0, false, nil
	}
	f := s.Fractions[s.pos]
	s.pos++
	return f[0], f[1], true, nil
}

// FileFingerprint derives a stable clip identity from a file's path, size,
// and modification time. Clips are treated as immutable, so this is a valid
// cache key for the lifetime of the file.
func FileFingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
