package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"audiocut/internal/testsupport"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = []string{"--config", configPath}
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func writeTimecodeFile(t *testing.T, dir string, offsets []string) string {
	t.Helper()
	path := filepath.Join(dir, "timecodes.txt")
	testsupport.WriteTimecodes(t, path, offsets)
	return path
}

func TestTimecodesCommandFromRate(t *testing.T) {
	out, _, err := runCLI(t, []string{
		"timecodes", "--frames", "100", "--fps", "24000/1001",
		"--trim", "3:22", "--trim", "-10:-5",
	}, "")
	if err != nil {
		t.Fatalf("timecodes: %v", err)
	}
	requireContains(t, out, "[3:22)")
	requireContains(t, out, "[90:95)")
	requireContains(t, out, "00:00:00.125")
}

func TestTimecodesCommandFromFile(t *testing.T) {
	offsets := make([]string, 0, 11)
	for i := 0; i <= 10; i++ {
		offsets = append(offsets, strconv.Itoa(i*100))
	}
	path := writeTimecodeFile(t, t.TempDir(), offsets)

	out, _, err := runCLI(t, []string{
		"timecodes", "--frames", "10", "--timecodes", path, "--trim", "2:4",
	}, "")
	if err != nil {
		t.Fatalf("timecodes: %v", err)
	}
	requireContains(t, out, "00:00:00.200")
	requireContains(t, out, "00:00:00.400")
}

func TestTimecodesCommandRejectsBadPrecision(t *testing.T) {
	_, _, err := runCLI(t, []string{
		"timecodes", "--frames", "10", "--fps", "24", "--trim", "0:5", "--precision", "4",
	}, "")
	if err == nil {
		t.Fatal("expected precision error")
	}
}

func TestTimecodesCommandRequiresSource(t *testing.T) {
	_, _, err := runCLI(t, []string{"timecodes", "--frames", "10", "--trim", "0:5"}, "")
	if err == nil || !strings.Contains(err.Error(), "--fps or --timecodes") {
		t.Fatalf("err = %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AUDIOCUT_FFMPEG_DIR", "")

	target := filepath.Join(tempHome, "audiocut", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// a second init without --overwrite refuses to clobber
	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("err = %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AUDIOCUT_FFMPEG_DIR", "")

	out, _, err := runCLI(t, []string{"config", "show"}, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, "work_dir")
}

func TestParseTrims(t *testing.T) {
	trims, err := parseTrims([]string{"3:22", ":-5", "97:"})
	if err != nil {
		t.Fatalf("parseTrims: %v", err)
	}
	if len(trims) != 3 {
		t.Fatalf("got %d trims", len(trims))
	}
	if trims[1].Start != nil || trims[2].End != nil {
		t.Fatalf("open endpoints not preserved: %+v", trims)
	}
	if _, err := parseTrims(nil); err == nil {
		t.Fatal("expected error for empty trim list")
	}
}
