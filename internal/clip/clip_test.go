package clip_test

import (
	"testing"

	"audiocut/internal/clip"
)

func TestParseRate(t *testing.T) {
	cases := []struct {
		in      string
		want    clip.Rate
		wantErr bool
	}{
		{in: "24000/1001", want: clip.Rate{Num: 24000, Den: 1001}},
		{in: "24", want: clip.Rate{Num: 24, Den: 1}},
		{in: "0", want: clip.Variable},
		{in: "0/1", want: clip.Variable},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "24/0", wantErr: true},
		{in: "-24", wantErr: true},
	}
	for _, tc := range cases {
		got, err := clip.ParseRate(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRate(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRate(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRateIsVariable(t *testing.T) {
	if !clip.Variable.IsVariable() {
		t.Fatal("Variable sentinel should report variable")
	}
	if (clip.Rate{Num: 24, Den: 1}).IsVariable() {
		t.Fatal("24/1 should not report variable")
	}
}

func TestSliceDurationsSinglePass(t *testing.T) {
	src := &clip.SliceDurations{Fractions: [][2]int64{{1, 24}, {1001, 30000}}}
	num, den, ok, err := src.Next()
	if err != nil || !ok || num != 1 || den != 24 {
		t.Fatalf("unexpected first frame: %d/%d ok=%v err=%v", num, den, ok, err)
	}
	if _, _, ok, _ := src.Next(); !ok {
		t.Fatal("expected second frame")
	}
	if _, _, ok, _ := src.Next(); ok {
		t.Fatal("expected exhaustion after two frames")
	}
}

func TestClipValidate(t *testing.T) {
	if err := (clip.Clip{NumFrames: -1, Rate: clip.Rate{Num: 24, Den: 1}}).Validate(); err == nil {
		t.Fatal("expected error for negative frame count")
	}
	if err := (clip.Clip{NumFrames: 10, Rate: clip.Rate{Num: 24, Den: 0}}).Validate(); err == nil {
		t.Fatal("expected error for zero denominator")
	}
	if err := (clip.Clip{NumFrames: 10, Rate: clip.Rate{Num: 24, Den: 1}}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
