package ffmpeg

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// StreamType classifies a codec's stream kind.
type StreamType byte

const (
	StreamVideo    StreamType = 'V'
	StreamAudio    StreamType = 'A'
	StreamSubtitle StreamType = 'S'
	StreamData     StreamType = 'D'
)

func (t StreamType) String() string {
	switch t {
	case StreamVideo:
		return "video"
	case StreamAudio:
		return "audio"
	case StreamSubtitle:
		return "subtitle"
	case StreamData:
		return "data"
	default:
		return fmt.Sprintf("unknown(%c)", byte(t))
	}
}

// Compression classifies a codec's compression behavior.
type Compression int

const (
	Lossless Compression = iota
	Lossy
	Either
	None
)

func (c Compression) String() string {
	switch c {
	case Lossless:
		return "lossless"
	case Lossy:
		return "lossy"
	case Either:
		return "either"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// Codec holds one entry of the toolkit's capability table.
type Codec struct {
	Name        string
	Type        StreamType
	Compression Compression
	CanDecode   bool
	CanEncode   bool
}

// Codecs returns the toolkit's codec capability table, queried once per
// client and cached for the session.
func (c *Client) Codecs(ctx context.Context) (map[string]Codec, error) {
	c.codecsOnce.Do(func() {
		out, err := c.ffmpeg(ctx, "list codecs", "-codecs")
		if err != nil {
			c.codecsErr = err
			return
		}
		c.codecs = parseCodecs(string(out))
	})
	return c.codecs, c.codecsErr
}

// SortedCodecs returns the capability table as a name-ordered slice.
func (c *Client) SortedCodecs(ctx context.Context) ([]Codec, error) {
	table, err := c.Codecs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Codec, 0, len(table))
	for _, codec := range table {
		out = append(out, codec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// parseCodecs reads `ffmpeg -codecs` output. Lines before the "-------"
// separator are banner text; each entry line starts with a six-character
// feature field followed by the codec name:
//
//	D.AIL. codec_name  description
//
// Columns: decode, encode, stream type, intra-only, lossy, lossless.
func parseCodecs(output string) map[string]Codec {
	codecs := make(map[string]Codec)
	seenSeparator := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if !seenSeparator {
			if strings.HasPrefix(trimmed, "-----") {
				seenSeparator = true
			}
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 || len(fields[0]) < 6 {
			continue
		}
		features, name := fields[0], fields[1]
		streamType := StreamType(features[2])
		switch streamType {
		case StreamVideo, StreamAudio, StreamSubtitle, StreamData:
		default:
			continue
		}
		codecs[name] = Codec{
			Name:        name,
			Type:        streamType,
			CanDecode:   features[0] == 'D',
			CanEncode:   features[1] == 'E',
			Compression: parseCompression(features[4], features[5]),
		}
	}
	return codecs
}

func parseCompression(lossy, lossless byte) Compression {
	switch {
	case lossy == '.' && lossless == '.':
		return None
	case lossy == 'L' && lossless == 'S':
		return Either
	case lossy == 'L':
		return Lossy
	default:
		return Lossless
	}
}
