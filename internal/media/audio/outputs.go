package audio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"audiocut/internal/media/ffmpeg"
)

// ErrAmbiguousOutput marks output templates that cannot be matched one-to-one
// with the streams they must receive.
var ErrAmbiguousOutput = errors.New("ambiguous output mapping")

// DefaultExtension is appended to output templates that carry no .mka suffix.
const DefaultExtension = ".mka"

const (
	indexPlaceholder  = "{index}"
	sourcePlaceholder = "{source}"
)

// ExpandOutputs resolves output templates against the selected streams. In
// combined mode exactly one output path results and an {index} placeholder is
// rejected. In split mode one path per stream results; when the template
// count differs from the stream count a single template with an {index}
// placeholder is required to keep the mapping unambiguous.
func ExpandOutputs(templates []string, streams []ffmpeg.AudioStream, source string, combine bool) ([]string, error) {
	templates = withDefaultExtension(templates)
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: no output template supplied", ErrAmbiguousOutput)
	}

	if combine || len(streams) <= 1 {
		if len(templates) > 1 {
			return nil, fmt.Errorf("%w: %d output templates for one output", ErrAmbiguousOutput, len(templates))
		}
		if combine {
			if strings.Contains(templates[0], indexPlaceholder) {
				return nil, fmt.Errorf("%w: {index} placeholder in combined output %q", ErrAmbiguousOutput, templates[0])
			}
			return []string{expand(templates[0], source, -1)}, nil
		}
		// Split mode with a single stream: {index} still expands to that
		// stream's index.
		index := -1
		if len(streams) == 1 {
			index = streams[0].Index
		}
		return []string{expand(templates[0], source, index)}, nil
	}

	if len(templates) > 1 && len(templates) != len(streams) {
		return nil, fmt.Errorf("%w: %d output templates for %d streams", ErrAmbiguousOutput, len(templates), len(streams))
	}
	if len(templates) != len(streams) && !strings.Contains(templates[0], indexPlaceholder) {
		return nil, fmt.Errorf("%w: single template %q needs an {index} placeholder for %d streams", ErrAmbiguousOutput, templates[0], len(streams))
	}

	outputs := make([]string, 0, len(streams))
	for i, s := range streams {
		tmpl := templates[0]
		if len(templates) == len(streams) {
			tmpl = templates[i]
		}
		outputs = append(outputs, expand(tmpl, source, s.Index))
	}
	return outputs, nil
}

// MapArgs renders the `-map 0:i` arguments selecting every stream into one
// combined output.
func MapArgs(streams []ffmpeg.AudioStream) []string {
	args := make([]string, 0, len(streams)*2)
	for _, s := range streams {
		args = append(args, "-map", fmt.Sprintf("0:%d", s.Index))
	}
	return args
}

func withDefaultExtension(templates []string) []string {
	out := make([]string, len(templates))
	for i, tmpl := range templates {
		if !strings.HasSuffix(strings.ToLower(tmpl), DefaultExtension) {
			tmpl += DefaultExtension
		}
		out[i] = tmpl
	}
	return out
}

func expand(tmpl, source string, index int) string {
	out := strings.ReplaceAll(tmpl, sourcePlaceholder, source)
	if index >= 0 {
		out = strings.ReplaceAll(out, indexPlaceholder, strconv.Itoa(index))
	}
	return out
}
