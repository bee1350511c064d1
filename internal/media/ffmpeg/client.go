package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"audiocut/internal/logging"
)

// ErrToolkit marks a failed external ffmpeg/ffprobe invocation. The wrapped
// message carries the tool's stderr diagnostics.
var ErrToolkit = errors.New("media toolkit failure")

// Executor abstracts command execution so tests can run without binaries.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) (stdout []byte, stderr []byte, err error)
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger attaches a logger for invocation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps ffmpeg and ffprobe CLI interactions. One client represents one
// toolkit session; codec capabilities are queried once and snapshotted.
type Client struct {
	ffmpegPath  string
	ffprobePath string
	baseArgs    []string
	exec        Executor
	logger      *slog.Logger

	codecsOnce sync.Once
	codecs     map[string]Codec
	codecsErr  error
}

// New constructs a toolkit client from resolved binary paths.
func New(ffmpegPath, ffprobePath string, opts ...Option) (*Client, error) {
	ffmpegPath = strings.TrimSpace(ffmpegPath)
	ffprobePath = strings.TrimSpace(ffprobePath)
	if ffmpegPath == "" || ffprobePath == "" {
		return nil, errors.New("ffmpeg and ffprobe paths required")
	}
	client := &Client{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		baseArgs:    []string{"-hide_banner", "-loglevel", "error"},
		exec:        commandExecutor{},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) ffmpeg(ctx context.Context, op string, args ...string) ([]byte, error) {
	return c.run(ctx, c.ffmpegPath, op, append(append([]string{}, c.baseArgs...), args...))
}

func (c *Client) ffprobe(ctx context.Context, op string, args ...string) ([]byte, error) {
	full := append(append([]string{}, c.baseArgs...), "-print_format", "json")
	full = append(full, args...)
	return c.run(ctx, c.ffprobePath, op, full)
}

func (c *Client) run(ctx context.Context, binary, op string, args []string) ([]byte, error) {
	c.logger.Debug("toolkit invocation",
		logging.String("op", op),
		logging.String("binary", binary),
		logging.String("args", strings.Join(args, " ")),
	)
	stdout, stderr, err := c.exec.Output(ctx, binary, args)
	if err != nil {
		diag := strings.TrimSpace(string(stderr))
		if diag == "" {
			diag = err.Error()
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrToolkit, op, diag)
	}
	return stdout, nil
}

// Version returns the first line of `ffmpeg -version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, c.ffmpegPath, "version", []string{"-version"})
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}
