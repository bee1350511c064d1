package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ebmlMagic opens every Matroska container. Fixtures carry it so anything
// that sniffs magic bytes treats them as media files.
var ebmlMagic = []byte{0x1a, 0x45, 0xdf, 0xa3}

// WriteMedia creates a media container fixture of the requested size. The
// payload starts with the Matroska signature followed by filler; sizes
// smaller than the signature are rounded up to it.
func WriteMedia(t testing.TB, path string, size int64) {
	t.Helper()

	if size < int64(len(ebmlMagic)) {
		size = int64(len(ebmlMagic))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	payload := make([]byte, size)
	copy(payload, ebmlMagic)
	for i := len(ebmlMagic); i < len(payload); i++ {
		payload[i] = byte(i)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteTimecodes writes a v2 timecode file containing the given millisecond
// offsets, one per line.
func WriteTimecodes(t testing.TB, path string, offsets []string) {
	t.Helper()

	body := "# timecode format v2\n" + strings.Join(offsets, "\n") + "\n"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
