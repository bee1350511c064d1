package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"audiocut/internal/clip"
)

// AudioStream describes one audio stream inside a media container. Codec is
// nil when the container reports a codec the toolkit does not know.
type AudioStream struct {
	Index int
	Codec *Codec
	Depth int // bits per sample, 0 when unknown
}

type probeStream struct {
	Index            int    `json:"index"`
	CodecName        string `json:"codec_name"`
	BitsPerRawSample string `json:"bits_per_raw_sample"`
	BitsPerSample    int    `json:"bits_per_sample"`
	NBFrames         string `json:"nb_frames"`
	AvgFrameRate     string `json:"avg_frame_rate"`
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
}

// AudioStreams probes the container's audio streams. A non-nil selection
// picks streams by their zero-based position among the audio streams (not
// the container index), matching how callers count "the second audio track".
func (c *Client) AudioStreams(ctx context.Context, file string, selection []int) ([]AudioStream, error) {
	out, err := c.ffprobe(ctx, "probe audio streams", "-show_streams", "-select_streams", "a", file)
	if err != nil {
		return nil, err
	}
	var result probeResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("parse ffprobe output for %s: %w", file, err)
	}

	codecs, err := c.Codecs(ctx)
	if err != nil {
		return nil, err
	}

	streams := make([]AudioStream, 0, len(result.Streams))
	for _, s := range result.Streams {
		stream := AudioStream{Index: s.Index, Depth: streamDepth(s)}
		if codec, ok := codecs[s.CodecName]; ok {
			codecCopy := codec
			stream.Codec = &codecCopy
		}
		streams = append(streams, stream)
	}

	if selection == nil {
		return streams, nil
	}
	selected := make([]AudioStream, 0, len(selection))
	for _, i := range selection {
		if i < 0 || i >= len(streams) {
			return nil, fmt.Errorf("audio stream selection %d out of range: %s has %d audio streams", i, file, len(streams))
		}
		selected = append(selected, streams[i])
	}
	return selected, nil
}

func streamDepth(s probeStream) int {
	if raw := strings.TrimSpace(s.BitsPerRawSample); raw != "" {
		if depth, err := strconv.Atoi(raw); err == nil && depth > 0 {
			return depth
		}
	}
	if s.BitsPerSample > 0 {
		return s.BitsPerSample
	}
	return 0
}

// ClipInfo probes the first video stream for frame count and frame rate so
// callers can derive clip metadata without a separate video pipeline. Frame
// count relies on the container's nb_frames entry; containers that omit it
// need the caller to supply the count explicitly.
func (c *Client) ClipInfo(ctx context.Context, file string) (int, clip.Rate, error) {
	out, err := c.ffprobe(ctx, "probe video stream", "-show_streams", "-select_streams", "v:0", file)
	if err != nil {
		return 0, clip.Rate{}, err
	}
	var result probeResult
	if err := json.Unmarshal(out, &result); err != nil {
		return 0, clip.Rate{}, fmt.Errorf("parse ffprobe output for %s: %w", file, err)
	}
	if len(result.Streams) == 0 {
		return 0, clip.Rate{}, fmt.Errorf("%s has no video stream; pass frame count and rate explicitly", file)
	}
	s := result.Streams[0]

	frames := 0
	if raw := strings.TrimSpace(s.NBFrames); raw != "" {
		frames, err = strconv.Atoi(raw)
		if err != nil || frames < 0 {
			return 0, clip.Rate{}, fmt.Errorf("%s reports unusable frame count %q", file, raw)
		}
	}
	if frames == 0 {
		return 0, clip.Rate{}, fmt.Errorf("%s does not report a frame count; pass it explicitly", file)
	}

	rate, err := clip.ParseRate(s.AvgFrameRate)
	if err != nil {
		return 0, clip.Rate{}, fmt.Errorf("%s reports unusable frame rate %q: %w", file, s.AvgFrameRate, err)
	}
	return frames, rate, nil
}
