package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"audiocut/internal/deps"
	"audiocut/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg", "ffprobe"))

	results := deps.CheckBinaries([]deps.Requirement{
		{Name: "ffmpeg", Command: "ffmpeg", Description: "stubbed on PATH"},
		{Name: "missing", Command: "definitely-not-a-binary-xyz"},
		{Name: "unset", Command: ""},
	})
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected stubbed ffmpeg to be available: %+v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary detail: %+v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail: %+v", results[2])
	}
}

func TestResolveFFmpegFromDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	ffmpegPath, ffprobePath, err := deps.ResolveFFmpeg(dir)
	if err != nil {
		t.Fatalf("ResolveFFmpeg: %v", err)
	}
	if ffmpegPath != filepath.Join(dir, "ffmpeg") || ffprobePath != filepath.Join(dir, "ffprobe") {
		t.Fatalf("resolved %s, %s", ffmpegPath, ffprobePath)
	}
}

func TestResolveFFmpegMissingProbe(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ffmpeg"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := deps.ResolveFFmpeg(dir); err == nil {
		t.Fatal("expected error when ffprobe is missing")
	}
}
