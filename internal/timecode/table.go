package timecode

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"

	"audiocut/internal/clip"
)

var (
	// ErrParse marks a malformed timecode file.
	ErrParse = errors.New("timecode parse error")
	// ErrLengthMismatch marks a timecode source whose entry count does not
	// match the clip's frame count.
	ErrLengthMismatch = errors.New("timecode length mismatch")
)

// Table holds absolute frame start offsets in seconds. A table for an N-frame
// clip has N+1 entries: entry i is the start of frame i, entry N the end of
// the last frame. Entries are non-decreasing and entry 0 is always zero.
type Table []float64

// NumFrames returns the frame count the table describes.
func (t Table) NumFrames() int {
	if len(t) == 0 {
		return 0
	}
	return len(t) - 1
}

// Range resolves a half-open frame interval to a timestamp range.
func (t Table) Range(start, end int) (Range, error) {
	if start < 0 || end > t.NumFrames() || start >= end {
		return Range{}, fmt.Errorf("timecode range [%d, %d) outside table of %d frames", start, end, t.NumFrames())
	}
	return Range{Start: t[start], End: t[end]}, nil
}

// Range is a timestamp interval in seconds, start strictly before end.
type Range struct {
	Start float64
	End   float64
}

// FromRate builds the table for a constant frame rate clip. Offsets are
// rounded to whole nanoseconds before the float conversion so the table does
// not accumulate floating-point drift across long clips.
func FromRate(numFrames int, rate clip.Rate) (Table, error) {
	if numFrames < 0 {
		return nil, fmt.Errorf("timecode: negative frame count %d", numFrames)
	}
	if rate.IsVariable() || rate.Den <= 0 {
		return nil, fmt.Errorf("timecode: constant-rate table requires a non-zero rate, got %s", rate)
	}
	table := make(Table, numFrames+1)
	frame := float64(rate.Den) / float64(rate.Num)
	for i := 0; i <= numFrames; i++ {
		table[i] = math.Round(1e9*float64(i)*frame) / 1e9
	}
	return table, nil
}

// BuildOption adjusts a VFR table build.
type BuildOption func(*builder)

type builder struct {
	progress func(done, total int)
}

// WithProgress installs a callback invoked after every frame during a VFR
// build. Walking a long clip's frames is the dominant cost of the whole
// pipeline, so callers usually surface this to the user.
func WithProgress(fn func(done, total int)) BuildOption {
	return func(b *builder) {
		b.progress = fn
	}
}

// FromDurations builds the table for a variable frame rate clip by summing
// exact per-frame duration fractions. The running total is kept as a rational
// so repeated conversion error cannot accumulate; only the appended table
// entries are floats.
func FromDurations(src clip.DurationSource, numFrames int, opts ...BuildOption) (Table, error) {
	if numFrames < 0 {
		return nil, fmt.Errorf("timecode: negative frame count %d", numFrames)
	}
	if src == nil {
		return nil, errors.New("timecode: duration source required for variable rate clips")
	}
	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	table := make(Table, 1, numFrames+1)
	table[0] = 0.0
	elapsed := new(big.Rat)
	for i := 0; i < numFrames; i++ {
		num, den, ok, err := src.Next()
		if err != nil {
			return nil, fmt.Errorf("timecode: read frame %d duration: %w", i, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: duration source ended at frame %d of %d", ErrLengthMismatch, i, numFrames)
		}
		if den <= 0 || num < 0 {
			return nil, fmt.Errorf("%w: frame %d has invalid duration %d/%d", ErrParse, i, num, den)
		}
		elapsed.Add(elapsed, new(big.Rat).SetFrac64(num, den))
		value, _ := elapsed.Float64()
		table = append(table, value)
		if b.progress != nil {
			b.progress(i+1, numFrames)
		}
	}
	return table, nil
}

// ReadFile parses a v2 timecode file: one header line followed by one
// millisecond offset per line, converted to seconds. The line count must be
// exactly numFrames+1; a shorter or longer file is rejected rather than
// silently truncated or extended.
func ReadFile(path string, numFrames int, opts ...BuildOption) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timecode file: %w", err)
	}
	defer file.Close()

	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read timecode header: %w", err)
		}
		return nil, fmt.Errorf("%w: %s is empty", ErrParse, path)
	}

	table := make(Table, 0, numFrames+1)
	line := 1
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		ms, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %q is not a millisecond offset", ErrParse, path, line, text)
		}
		table = append(table, ms/1000)
		if b.progress != nil && len(table) <= numFrames {
			b.progress(len(table), numFrames)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read timecode file: %w", err)
	}

	if len(table) != numFrames+1 {
		return nil, fmt.Errorf("%w: %s has %d entries, clip needs %d", ErrLengthMismatch, path, len(table), numFrames+1)
	}
	return table, nil
}
