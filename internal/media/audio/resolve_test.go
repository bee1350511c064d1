package audio_test

import (
	"errors"
	"strings"
	"testing"

	"audiocut/internal/logging"
	"audiocut/internal/media/audio"
	"audiocut/internal/media/ffmpeg"
)

func codec(name string, canEncode bool, compression ffmpeg.Compression) *ffmpeg.Codec {
	return &ffmpeg.Codec{
		Name:        name,
		Type:        ffmpeg.StreamAudio,
		CanDecode:   true,
		CanEncode:   canEncode,
		Compression: compression,
	}
}

func TestResolveCopiesEncodableStreams(t *testing.T) {
	// can_encode always wins, regardless of compression class.
	for _, compression := range []ffmpeg.Compression{ffmpeg.Lossless, ffmpeg.Lossy, ffmpeg.Either, ffmpeg.None} {
		streams := []ffmpeg.AudioStream{{Index: 1, Codec: codec("x", true, compression), Depth: 24}}
		directives, err := audio.Resolve(streams, nil)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if directives[0].Action != audio.Copy || directives[0].Arg() != "copy" {
			t.Fatalf("compression %s: directive = %+v", compression, directives[0])
		}
	}
}

func TestResolveDecodeFallbackDepths(t *testing.T) {
	cases := []struct {
		depth int
		want  string
	}{
		{depth: 8, want: "pcm_s8le"},
		{depth: 16, want: "pcm_s16le"},
		{depth: 24, want: "pcm_s24le"},
		{depth: 32, want: "pcm_s32le"},
		{depth: 64, want: "pcm_s64le"},
		{depth: 0, want: "pcm_s16le"},
		{depth: 20, want: "pcm_s16le"},
	}
	for _, tc := range cases {
		streams := []ffmpeg.AudioStream{{Index: 2, Codec: codec("mlp", false, ffmpeg.Lossless), Depth: tc.depth}}
		directives, err := audio.Resolve(streams, nil)
		if err != nil {
			t.Fatalf("Resolve depth %d: %v", tc.depth, err)
		}
		if directives[0].Action != audio.Decode || directives[0].Format != tc.want {
			t.Fatalf("depth %d: directive = %+v, want %s", tc.depth, directives[0], tc.want)
		}
	}
}

func TestResolveUnknownCodec(t *testing.T) {
	streams := []ffmpeg.AudioStream{{Index: 4, Codec: nil}}
	_, err := audio.Resolve(streams, nil)
	if !errors.Is(err, audio.ErrUnsupportedCodec) {
		t.Fatalf("expected ErrUnsupportedCodec, got %v", err)
	}
}

func TestResolveAdvisorySeverity(t *testing.T) {
	cases := []struct {
		compression ffmpeg.Compression
		wantLevel   string
	}{
		{compression: ffmpeg.Lossy, wantLevel: "WARN"},
		{compression: ffmpeg.Either, wantLevel: "WARN"},
		{compression: ffmpeg.Lossless, wantLevel: "INFO"},
	}
	for _, tc := range cases {
		var buf strings.Builder
		logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
		if err != nil {
			t.Fatalf("logger: %v", err)
		}
		streams := []ffmpeg.AudioStream{{Index: 1, Codec: codec("c", false, tc.compression), Depth: 16}}
		if _, err := audio.Resolve(streams, logger); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if !strings.Contains(buf.String(), tc.wantLevel) {
			t.Fatalf("compression %s: expected %s advisory, got %q", tc.compression, tc.wantLevel, buf.String())
		}
	}
}

func TestCodecArgsIndexing(t *testing.T) {
	directives := []audio.Directive{
		{Action: audio.Copy},
		{Action: audio.Decode, Format: "pcm_s24le"},
	}
	got := strings.Join(audio.CodecArgs(directives), " ")
	if got != "-c:a:0 copy -c:a:1 pcm_s24le" {
		t.Fatalf("CodecArgs = %q", got)
	}
}
