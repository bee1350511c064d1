// Package deps reports the availability of the external binaries audiocut
// drives, and resolves the ffmpeg/ffprobe pair from a search path or PATH.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Requirement defines an external binary audiocut relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{Requirement: req}
		cmd := strings.TrimSpace(req.Command)
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// ResolveFFmpeg locates the ffmpeg and ffprobe binaries. With an empty search
// path both come from PATH; otherwise both must sit in the given directory
// (a file path is treated as its containing directory). The two tools must
// travel together so stream probing matches the encoder's capabilities.
func ResolveFFmpeg(searchPath string) (ffmpegPath, ffprobePath string, err error) {
	searchPath = strings.TrimSpace(searchPath)
	if searchPath == "" {
		ffmpegPath, err = exec.LookPath(binaryName("ffmpeg"))
		if err != nil {
			return "", "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
		}
		ffprobePath, err = exec.LookPath(binaryName("ffprobe"))
		if err != nil {
			return "", "", fmt.Errorf("ffprobe not found in PATH: %w", err)
		}
		return ffmpegPath, ffprobePath, nil
	}

	dir := searchPath
	if info, statErr := os.Stat(searchPath); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(searchPath)
	}
	ffmpegPath = filepath.Join(dir, binaryName("ffmpeg"))
	ffprobePath = filepath.Join(dir, binaryName("ffprobe"))
	for _, candidate := range []string{ffmpegPath, ffprobePath} {
		info, statErr := os.Stat(candidate)
		if statErr != nil || !isExecutable(info) {
			return "", "", fmt.Errorf("ffmpeg/ffprobe executables not found in %s", dir)
		}
	}
	return ffmpegPath, ffprobePath, nil
}

func binaryName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
