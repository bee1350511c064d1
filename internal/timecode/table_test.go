package timecode_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"audiocut/internal/clip"
	"audiocut/internal/timecode"
)

func TestFromRateProperties(t *testing.T) {
	cases := []struct {
		frames int
		rate   clip.Rate
	}{
		{frames: 0, rate: clip.Rate{Num: 24, Den: 1}},
		{frames: 1, rate: clip.Rate{Num: 24, Den: 1}},
		{frames: 100, rate: clip.Rate{Num: 24000, Den: 1001}},
		{frames: 2048, rate: clip.Rate{Num: 30000, Den: 1001}},
		{frames: 500, rate: clip.Rate{Num: 25, Den: 1}},
	}
	for _, tc := range cases {
		table, err := timecode.FromRate(tc.frames, tc.rate)
		if err != nil {
			t.Fatalf("FromRate(%d, %s): %v", tc.frames, tc.rate, err)
		}
		if len(table) != tc.frames+1 {
			t.Fatalf("FromRate(%d, %s): length %d, want %d", tc.frames, tc.rate, len(table), tc.frames+1)
		}
		if table[0] != 0.0 {
			t.Fatalf("table[0] = %v, want 0", table[0])
		}
		for i := 1; i < len(table); i++ {
			if table[i] < table[i-1] {
				t.Fatalf("table decreases at %d: %v < %v", i, table[i], table[i-1])
			}
		}
		want := float64(tc.frames) * float64(tc.rate.Den) / float64(tc.rate.Num)
		if diff := math.Abs(table[tc.frames] - want); diff > 1e-9 {
			t.Fatalf("table[%d] = %v, want %v within 1e-9", tc.frames, table[tc.frames], want)
		}
	}
}

func TestFromRateRejectsVariable(t *testing.T) {
	if _, err := timecode.FromRate(10, clip.Variable); err == nil {
		t.Fatal("expected error for variable rate")
	}
}

func TestFromDurationsAccumulatesExactly(t *testing.T) {
	// 3 frames of 1001/30000s followed by 3 frames of 1001/24000s.
	fractions := [][2]int64{
		{1001, 30000}, {1001, 30000}, {1001, 30000},
		{1001, 24000}, {1001, 24000}, {1001, 24000},
	}
	src := &clip.SliceDurations{Fractions: fractions}
	table, err := timecode.FromDurations(src, len(fractions))
	if err != nil {
		t.Fatalf("FromDurations: %v", err)
	}
	if len(table) != len(fractions)+1 {
		t.Fatalf("length %d, want %d", len(table), len(fractions)+1)
	}
	want := 3*(1001.0/30000.0) + 3*(1001.0/24000.0)
	if diff := math.Abs(table[len(fractions)] - want); diff > 1e-12 {
		t.Fatalf("final offset %v, want %v", table[len(fractions)], want)
	}
	for i := 1; i < len(table); i++ {
		if table[i] <= table[i-1] {
			t.Fatalf("table not increasing at %d", i)
		}
	}
}

func TestFromDurationsShortSource(t *testing.T) {
	src := &clip.SliceDurations{Fractions: [][2]int64{{1, 24}}}
	_, err := timecode.FromDurations(src, 3)
	if !errors.Is(err, timecode.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestFromDurationsInvalidFraction(t *testing.T) {
	src := &clip.SliceDurations{Fractions: [][2]int64{{1, 0}}}
	_, err := timecode.FromDurations(src, 1)
	if !errors.Is(err, timecode.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestFromDurationsProgress(t *testing.T) {
	src := &clip.SliceDurations{Fractions: [][2]int64{{1, 24}, {1, 24}, {1, 24}}}
	var calls int
	_, err := timecode.FromDurations(src, 3, timecode.WithProgress(func(done, total int) {
		calls++
		if total != 3 {
			t.Fatalf("unexpected total %d", total)
		}
	}))
	if err != nil {
		t.Fatalf("FromDurations: %v", err)
	}
	if calls != 3 {
		t.Fatalf("progress called %d times, want 3", calls)
	}
}

func TestZeroFrameClip(t *testing.T) {
	table, err := timecode.FromRate(0, clip.Rate{Num: 24, Den: 1})
	if err != nil {
		t.Fatalf("FromRate: %v", err)
	}
	if len(table) != 1 || table[0] != 0.0 {
		t.Fatalf("zero-frame table = %v, want [0.0]", table)
	}
}

func writeTimecodeFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timecodes.txt")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write timecode file: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	path := writeTimecodeFile(t, "# timecode format v2\n0\n41.708333\n83.416667\n125.125\n")
	table, err := timecode.ReadFile(path, 3)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(table) != 4 {
		t.Fatalf("length %d, want 4", len(table))
	}
	if table[0] != 0 {
		t.Fatalf("table[0] = %v", table[0])
	}
	if diff := math.Abs(table[3] - 0.125125); diff > 1e-12 {
		t.Fatalf("table[3] = %v, want 0.125125", table[3])
	}
}

func TestReadFileLengthMismatch(t *testing.T) {
	path := writeTimecodeFile(t, "# timecode format v2\n0\n41.708333\n")
	_, err := timecode.ReadFile(path, 3)
	if !errors.Is(err, timecode.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestReadFileMalformedLine(t *testing.T) {
	path := writeTimecodeFile(t, "# timecode format v2\n0\nnot-a-number\n83.4\n")
	_, err := timecode.ReadFile(path, 3)
	if !errors.Is(err, timecode.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := writeTimecodeFile(t, "")
	_, err := timecode.ReadFile(path, 0)
	if !errors.Is(err, timecode.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestTableRange(t *testing.T) {
	table := timecode.Table{0, 0.5, 1.0, 1.5}
	r, err := table.Range(1, 3)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if r.Start != 0.5 || r.End != 1.5 {
		t.Fatalf("Range = %+v", r)
	}
	if _, err := table.Range(2, 2); err == nil {
		t.Fatal("expected error for empty interval")
	}
	if _, err := table.Range(0, 4); err == nil {
		t.Fatal("expected error for out-of-bounds end")
	}
}
