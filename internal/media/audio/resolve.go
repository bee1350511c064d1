package audio

import (
	"errors"
	"fmt"
	"log/slog"

	"audiocut/internal/logging"
	"audiocut/internal/media/ffmpeg"
)

// ErrUnsupportedCodec marks a stream whose codec the toolkit cannot identify.
var ErrUnsupportedCodec = errors.New("unsupported codec")

// Action is the closed copy-vs-decode decision for one stream.
type Action int

const (
	// Copy re-muxes the compressed bitstream untouched.
	Copy Action = iota
	// Decode re-encodes into the uncompressed format named by Directive.Format.
	Decode
)

// Directive is the resolved handling for one audio stream.
type Directive struct {
	Stream ffmpeg.AudioStream
	Action Action
	Format string // target uncompressed format when Action == Decode
}

// Arg returns the ffmpeg codec argument value for the directive.
func (d Directive) Arg() string {
	if d.Action == Copy {
		return "copy"
	}
	return d.Format
}

var pcmDepths = map[int]struct{}{8: {}, 16: {}, 24: {}, 32: {}, 64: {}}

// Resolve decides stream-copy versus decode-to-fallback for every stream. A
// stream whose codec the toolkit can encode is always copied; anything else
// is decoded to PCM matching the stream's bit depth, falling back to 16-bit
// when the depth is unknown or unusual. Decode decisions are logged with a
// severity matching how much the transcode can cost: warnings for lossy or
// potentially-lossy sources, informational for lossless ones.
func Resolve(streams []ffmpeg.AudioStream, logger *slog.Logger) ([]Directive, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	directives := make([]Directive, 0, len(streams))
	for _, s := range streams {
		if s.Codec == nil {
			return nil, fmt.Errorf("%w in stream %d", ErrUnsupportedCodec, s.Index)
		}
		if s.Codec.CanEncode {
			directives = append(directives, Directive{Stream: s, Action: Copy})
			continue
		}

		format := "pcm_s16le"
		if _, ok := pcmDepths[s.Depth]; ok {
			format = fmt.Sprintf("pcm_s%dle", s.Depth)
		}
		attrs := []logging.Attr{
			logging.String("codec", s.Codec.Name),
			logging.Int("stream", s.Index),
			logging.String("fallback", format),
		}
		switch s.Codec.Compression {
		case ffmpeg.Lossy:
			logger.Warn("lossy codec is unsupported for encoding, decoding to fallback", attrsToArgs(attrs)...)
		case ffmpeg.Either:
			logger.Warn("potentially-lossy codec is unsupported for encoding, decoding to fallback", attrsToArgs(attrs)...)
		default:
			logger.Info("lossless codec is unsupported for encoding, decoding to fallback", attrsToArgs(attrs)...)
		}
		directives = append(directives, Directive{Stream: s, Action: Decode, Format: format})
	}
	return directives, nil
}

// CodecArgs renders the per-stream `-c:a:i` ffmpeg arguments for the
// directives, indexed by output stream position.
func CodecArgs(directives []Directive) []string {
	args := make([]string, 0, len(directives)*2)
	for i, d := range directives {
		args = append(args, fmt.Sprintf("-c:a:%d", i), d.Arg())
	}
	return args
}

func attrsToArgs(attrs []logging.Attr) []any {
	out := make([]any, len(attrs))
	for i, attr := range attrs {
		out[i] = attr
	}
	return out
}
