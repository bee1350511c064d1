package ffmpeg

import (
	"context"
	"fmt"
	"strings"
)

// Extract cuts one timestamp range out of the input. codecArgs carry the
// per-stream copy/decode directives, mapArgs the stream mapping; out is
// written in place (callers own collision checks).
func (c *Client) Extract(ctx context.Context, in, startTS, endTS string, codecArgs, mapArgs []string, out string) error {
	args := []string{"-i", in, "-ss", startTS, "-to", endTS}
	args = append(args, codecArgs...)
	args = append(args, mapArgs...)
	args = append(args, out, "-y")
	_, err := c.ffmpeg(ctx, fmt.Sprintf("extract [%s, %s)", startTS, endTS), args...)
	return err
}

// Concat stream-copies the files listed in the manifest into out.
func (c *Client) Concat(ctx context.Context, manifest, out string) error {
	_, err := c.ffmpeg(ctx, "concatenate segments",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		out, "-y",
	)
	return err
}

// MapTarget routes one container stream index to one output file.
type MapTarget struct {
	StreamIndex int
	Out         string
}

// Demux stream-copies each mapped audio stream of the input into its own
// output file, dropping video and subtitle streams.
func (c *Client) Demux(ctx context.Context, in string, targets []MapTarget) error {
	args := []string{"-i", in, "-c", "copy", "-vn", "-sn"}
	for _, t := range targets {
		args = append(args, "-map", fmt.Sprintf("0:%d", t.StreamIndex), t.Out)
	}
	args = append(args, "-y")
	_, err := c.ffmpeg(ctx, "demux streams", args...)
	return err
}

// Mux joins previously split audio files into one container, one audio
// stream per input in input order.
func (c *Client) Mux(ctx context.Context, out string, ins ...string) error {
	args := make([]string, 0, len(ins)*4+3)
	for _, in := range ins {
		args = append(args, "-i", in)
	}
	for i := range ins {
		args = append(args, "-map", fmt.Sprintf("%d:a", i))
	}
	args = append(args, "-c", "copy", out, "-y")
	_, err := c.ffmpeg(ctx, "mux streams", args...)
	return err
}

// FormatManifest renders the concat demuxer's file list. Single quotes inside
// paths are closed, escaped, and reopened so the demuxer reads them verbatim.
func FormatManifest(files []string) []byte {
	var b strings.Builder
	for _, f := range files {
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(f, `'`, `'\''`))
		b.WriteString("'\n")
	}
	return []byte(b.String())
}
