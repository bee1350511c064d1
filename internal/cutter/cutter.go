package cutter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"audiocut/internal/clip"
	"audiocut/internal/fileutil"
	"audiocut/internal/logging"
	"audiocut/internal/media/audio"
	"audiocut/internal/media/ffmpeg"
	"audiocut/internal/timecode"
	"audiocut/internal/trim"
)

const (
	manifestName = "concat-manifest.txt"
	lockName     = "audiocut.lock"
)

// Phase identifies how far a cut operation progressed.
type Phase string

const (
	PhaseCreated       Phase = "created"
	PhaseExtracting    Phase = "extracting"
	PhaseExtracted     Phase = "extracted"
	PhaseConcatenating Phase = "concatenating"
	PhaseConcatenated  Phase = "concatenated"
	PhaseSplitting     Phase = "splitting"
	PhaseSplit         Phase = "split"
	PhaseRenaming      Phase = "renaming"
	PhaseDone          Phase = "done"
	PhaseFailed        Phase = "failed"
)

// Toolkit is the subset of media toolkit operations the pipeline drives.
// *ffmpeg.Client satisfies it.
type Toolkit interface {
	ClipInfo(ctx context.Context, file string) (int, clip.Rate, error)
	AudioStreams(ctx context.Context, file string, selection []int) ([]ffmpeg.AudioStream, error)
	Extract(ctx context.Context, in, startTS, endTS string, codecArgs, mapArgs []string, out string) error
	Concat(ctx context.Context, manifest, out string) error
	Demux(ctx context.Context, in string, targets []ffmpeg.MapTarget) error
}

// Request describes one cut operation.
type Request struct {
	// Input is the media container to cut.
	Input string
	// Trims are the frame ranges to keep, in order.
	Trims []trim.Trim
	// NumFrames and Rate override probed clip metadata when NumFrames > 0.
	NumFrames int
	Rate      clip.Rate
	// TimecodeFile supplies per-frame timestamps for variable frame rate
	// clips (v2 timecode format).
	TimecodeFile string
	// Durations supplies exact per-frame duration fractions for variable
	// frame rate clips when no timecode file is available.
	Durations clip.DurationSource
	// Streams selects audio streams by zero-based audio index; empty keeps
	// all of them.
	Streams []int
	// Outputs are destination templates accepting {source} and, in split
	// mode, {index}. Empty defaults to {source}-cut.mka next to the input.
	Outputs []string
	// Split demuxes each selected stream into its own output file.
	Split bool
	// Precision is the fractional digit count for extraction timestamps
	// (3, 6, or 9); zero means full nanosecond precision.
	Precision int
	// Progress, when set, receives frame counts during table construction.
	Progress func(done, total int)
}

// Result reports what a cut operation produced.
type Result struct {
	Outputs  []string
	Ranges   []trim.Normalized
	Overlaps []trim.Overlap
	NoOp     bool
	Phase    Phase
}

// Option adjusts Cutter construction.
type Option func(*Cutter)

// WithLogger routes pipeline logging to the provided logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cutter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCache shares a timecode table cache across cutters.
func WithCache(cache *timecode.Cache) Option {
	return func(c *Cutter) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// Cutter runs cut operations against a work directory that holds segment
// temp files, the concat manifest, and the work-directory lock.
type Cutter struct {
	toolkit Toolkit
	workDir string
	cache   *timecode.Cache
	logger  *slog.Logger
}

// New constructs a Cutter. The work directory is created if missing.
func New(toolkit Toolkit, workDir string, opts ...Option) (*Cutter, error) {
	if toolkit == nil {
		return nil, errors.New("cutter: toolkit is required")
	}
	workDir = strings.TrimSpace(workDir)
	if workDir == "" {
		return nil, errors.New("cutter: work directory is required")
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	c := &Cutter{
		toolkit: toolkit,
		workDir: workDir,
		cache:   timecode.NewCache(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Cut executes the pipeline for one request. Validation happens before any
// segment file is created; every temporary artifact is removed before Cut
// returns, on success and on failure alike.
func (c *Cutter) Cut(ctx context.Context, req Request) (Result, error) {
	logger := c.logger.With(logging.String("input", filepath.Base(req.Input)))

	if len(req.Trims) == 0 {
		return Result{Phase: PhaseFailed}, fmt.Errorf("%w: no trims supplied", trim.ErrInvalidTrim)
	}
	if !fileutil.Exists(req.Input) {
		return Result{Phase: PhaseFailed}, fmt.Errorf("%w: %s", ErrInputNotFound, req.Input)
	}

	// A single fully open trim keeps the whole clip; nothing to probe or cut.
	if len(req.Trims) == 1 && isOpenTrim(req.Trims[0]) {
		logger.Info("trim keeps the whole clip, skipping extraction")
		return Result{Outputs: []string{req.Input}, NoOp: true, Phase: PhaseDone}, nil
	}

	numFrames, rate := req.NumFrames, req.Rate
	if numFrames <= 0 {
		var err error
		numFrames, rate, err = c.toolkit.ClipInfo(ctx, req.Input)
		if err != nil {
			return Result{Phase: PhaseFailed}, err
		}
	}
	if req.TimecodeFile != "" {
		rate = clip.Variable
	}

	norms, overlaps, err := trim.Normalize(req.Trims, numFrames)
	if err != nil {
		return Result{Phase: PhaseFailed}, err
	}
	for _, ov := range overlaps {
		logger.Warn("adjacent trims overlap",
			logging.Int("trim", ov.Index),
			logging.String("previous", fmt.Sprintf("[%d:%d)", ov.Prev.Start, ov.Prev.End)),
			logging.String("next", fmt.Sprintf("[%d:%d)", ov.Next.Start, ov.Next.End)))
	}

	if trim.IsWholeClip(norms, numFrames) {
		logger.Info("trims resolve to the whole clip, skipping extraction")
		return Result{Outputs: []string{req.Input}, Ranges: norms, Overlaps: overlaps, NoOp: true, Phase: PhaseDone}, nil
	}

	fingerprint, err := clip.FileFingerprint(req.Input)
	if err != nil {
		return Result{Phase: PhaseFailed}, err
	}
	source := clip.Clip{NumFrames: numFrames, Rate: rate, Fingerprint: fingerprint, Durations: req.Durations}
	table, err := c.cache.GetOrBuild(fingerprint, func() (timecode.Table, error) {
		var buildOpts []timecode.BuildOption
		if req.Progress != nil {
			buildOpts = append(buildOpts, timecode.WithProgress(req.Progress))
		}
		return timecode.Build(source, req.TimecodeFile, buildOpts...)
	})
	if err != nil {
		return Result{Phase: PhaseFailed}, err
	}

	ranges := make([]timecode.Range, 0, len(norms))
	for _, n := range norms {
		r, err := table.Range(n.Start, n.End)
		if err != nil {
			return Result{Phase: PhaseFailed}, err
		}
		ranges = append(ranges, r)
	}

	streams, err := c.toolkit.AudioStreams(ctx, req.Input, req.Streams)
	if err != nil {
		return Result{Phase: PhaseFailed}, err
	}
	directives, err := audio.Resolve(streams, logger)
	if err != nil {
		return Result{Phase: PhaseFailed}, err
	}
	outputs, err := audio.ExpandOutputs(c.outputTemplates(req), streams, sourceName(req.Input), !req.Split)
	if err != nil {
		return Result{Phase: PhaseFailed}, err
	}

	lock := flock.New(filepath.Join(c.workDir, lockName))
	if err := lock.Lock(); err != nil {
		return Result{Phase: PhaseFailed}, fmt.Errorf("acquire work directory lock: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release work directory lock", logging.Error(err))
		}
	}()

	manifest := filepath.Join(c.workDir, manifestName)
	for _, out := range append([]string{manifest}, outputs...) {
		if fileutil.Exists(out) {
			return Result{Phase: PhaseFailed}, fmt.Errorf("%w: %s", ErrAlreadyExists, out)
		}
	}

	sc := &scratch{logger: logger}
	defer sc.release()

	logger.Info("extracting segments",
		logging.String("phase", string(PhaseExtracting)),
		logging.Int("ranges", len(ranges)),
		logging.Int("streams", len(streams)))
	precision := req.Precision
	if precision == 0 {
		precision = 9
	}
	codecArgs := audio.CodecArgs(directives)
	mapArgs := audio.MapArgs(streams)
	segments := make([]string, 0, len(ranges))
	for i, r := range ranges {
		startTS, endTS, err := timecode.FormatRange(r, precision)
		if err != nil {
			return c.fail(logger, PhaseExtracting, err)
		}
		segment := filepath.Join(c.workDir, fmt.Sprintf("segment-%s%s", uuid.NewString(), audio.DefaultExtension))
		sc.add(segment)
		if err := c.toolkit.Extract(ctx, req.Input, startTS, endTS, codecArgs, mapArgs, segment); err != nil {
			return c.fail(logger, PhaseExtracting, err)
		}
		segments = append(segments, segment)
		logger.Debug("segment extracted",
			logging.String("phase", string(PhaseExtracted)),
			logging.Int("segment", i+1),
			logging.Int("total", len(ranges)),
			logging.String("start", startTS),
			logging.String("end", endTS))
	}

	merged := segments[0]
	if len(segments) > 1 {
		logger.Info("concatenating segments",
			logging.String("phase", string(PhaseConcatenating)),
			logging.Int("segments", len(segments)))
		sc.add(manifest)
		if err := os.WriteFile(manifest, ffmpeg.FormatManifest(segments), 0o644); err != nil {
			return c.fail(logger, PhaseConcatenating, fmt.Errorf("write concat manifest: %w", err))
		}
		merged = filepath.Join(c.workDir, fmt.Sprintf("merged-%s%s", uuid.NewString(), audio.DefaultExtension))
		sc.add(merged)
		if err := c.toolkit.Concat(ctx, manifest, merged); err != nil {
			return c.fail(logger, PhaseConcatenating, err)
		}
		logger.Debug("segments concatenated", logging.String("phase", string(PhaseConcatenated)))
	}

	if req.Split && len(streams) > 1 {
		logger.Info("splitting streams",
			logging.String("phase", string(PhaseSplitting)),
			logging.Int("streams", len(streams)))
		targets, err := c.splitTargets(ctx, merged, outputs)
		if err != nil {
			return c.fail(logger, PhaseSplitting, err)
		}
		if err := c.toolkit.Demux(ctx, merged, targets); err != nil {
			discardOutputs(outputs)
			return c.fail(logger, PhaseSplitting, err)
		}
		logger.Debug("streams split", logging.String("phase", string(PhaseSplit)))
	} else {
		logger.Debug("moving merged result into place",
			logging.String("phase", string(PhaseRenaming)),
			logging.String("output", outputs[0]))
		if err := fileutil.Move(merged, outputs[0]); err != nil {
			discardOutputs(outputs)
			return c.fail(logger, PhaseRenaming, err)
		}
	}

	logger.Info("cut complete",
		logging.String("phase", string(PhaseDone)),
		logging.Int("outputs", len(outputs)))
	return Result{Outputs: outputs, Ranges: norms, Overlaps: overlaps, Phase: PhaseDone}, nil
}

func (c *Cutter) fail(logger *slog.Logger, phase Phase, err error) (Result, error) {
	logger.Error("cut failed",
		logging.String("phase", string(phase)),
		logging.Error(err))
	return Result{Phase: PhaseFailed}, err
}

// splitTargets pairs the merged intermediate's audio streams with the
// expanded output paths in order.
func (c *Cutter) splitTargets(ctx context.Context, merged string, outputs []string) ([]ffmpeg.MapTarget, error) {
	mergedStreams, err := c.toolkit.AudioStreams(ctx, merged, nil)
	if err != nil {
		return nil, err
	}
	if len(mergedStreams) != len(outputs) {
		return nil, fmt.Errorf("merged result carries %d audio streams for %d outputs", len(mergedStreams), len(outputs))
	}
	targets := make([]ffmpeg.MapTarget, 0, len(outputs))
	for i, s := range mergedStreams {
		targets = append(targets, ffmpeg.MapTarget{StreamIndex: s.Index, Out: outputs[i]})
	}
	return targets, nil
}

func (c *Cutter) outputTemplates(req Request) []string {
	if len(req.Outputs) > 0 {
		return req.Outputs
	}
	return []string{filepath.Join(filepath.Dir(req.Input), "{source}-cut")}
}

// discardOutputs removes destination files a failed final step may have
// partially written. Pre-existing files never reach this point thanks to the
// collision guard.
func discardOutputs(outputs []string) {
	for _, out := range outputs {
		_ = fileutil.RemoveIfExists(out)
	}
}

func isOpenTrim(t trim.Trim) bool {
	if t.End != nil {
		return false
	}
	return t.Start == nil || *t.Start == 0
}

func sourceName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// scratch tracks temporary artifacts so they are removed on every exit path.
type scratch struct {
	paths  []string
	logger *slog.Logger
}

func (s *scratch) add(path string) {
	s.paths = append(s.paths, path)
}

func (s *scratch) release() {
	for _, path := range s.paths {
		if err := fileutil.RemoveIfExists(path); err != nil {
			s.logger.Warn("failed to remove temporary file",
				logging.String("path", path),
				logging.Error(err))
		}
	}
}
