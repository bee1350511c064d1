package timecode_test

import (
	"errors"
	"testing"

	"audiocut/internal/timecode"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		seconds   float64
		precision int
		want      string
	}{
		{seconds: 0, precision: 0, want: "00:00:00"},
		{seconds: 0, precision: 3, want: "00:00:00.000"},
		{seconds: 1.5, precision: 3, want: "00:00:01.500"},
		{seconds: 61.25, precision: 6, want: "00:01:01.250000"},
		{seconds: 3661.000000001, precision: 9, want: "01:01:01.000000001"},
		{seconds: 59.9996, precision: 3, want: "00:01:00.000"},
		{seconds: 7322.5, precision: 0, want: "02:02:03"},
	}
	for _, tc := range cases {
		got, err := timecode.Format(tc.seconds, tc.precision)
		if err != nil {
			t.Fatalf("Format(%v, %d): %v", tc.seconds, tc.precision, err)
		}
		if got != tc.want {
			t.Fatalf("Format(%v, %d) = %q, want %q", tc.seconds, tc.precision, got, tc.want)
		}
	}
}

func TestFormatRejectsPrecision(t *testing.T) {
	for _, precision := range []int{-1, 1, 2, 4, 5, 7, 8, 10} {
		_, err := timecode.Format(1.0, precision)
		if !errors.Is(err, timecode.ErrPrecision) {
			t.Fatalf("precision %d: expected ErrPrecision, got %v", precision, err)
		}
	}
}

func TestFormatRejectsNegative(t *testing.T) {
	if _, err := timecode.Format(-0.5, 3); err == nil {
		t.Fatal("expected error for negative offset")
	}
}

func TestFormatRange(t *testing.T) {
	start, end, err := timecode.FormatRange(timecode.Range{Start: 0.125125, End: 1.0}, 3)
	if err != nil {
		t.Fatalf("FormatRange: %v", err)
	}
	if start != "00:00:00.125" || end != "00:00:01.000" {
		t.Fatalf("FormatRange = %q, %q", start, end)
	}
}
