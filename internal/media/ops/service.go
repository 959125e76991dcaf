// Package ops implements the stateless media operations: trim, concatenate,
// convert, extract audio and frames, GIF rendering, and waveform generation.
// Each operation validates its inputs, builds an ffmpeg argument list, invokes
// the process runner, translates failures, and cleans up its own temporary
// artifacts. No cross-call state is kept.
package ops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"splice/internal/deps"
	"splice/internal/media/ffprobe"
	"splice/internal/services"
	"splice/internal/tempfiles"
)

// ErrNoAudio reports an input without any audio stream. It is a routine
// branching condition for callers, not an exceptional failure.
var ErrNoAudio = errors.New("no audio stream")

// ErrNoVideo reports an input without any video stream.
var ErrNoVideo = errors.New("no video stream")

// Runner abstracts process execution for testability.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
	RunWithProgress(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Prober abstracts media inspection.
type Prober interface {
	Probe(ctx context.Context, path string) (*ffprobe.MediaInfo, error)
}

// Option configures the service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service carries the collaborators shared by every operation.
type Service struct {
	ffmpeg   string
	prober   Prober
	run      Runner
	tempRoot string
	logger   *slog.Logger
}

// NewService constructs the operation service. The ffmpeg value may be a bare
// command name or a path; it is resolved per invocation so a missing binary
// degrades to per-operation failures rather than refusing to construct.
func NewService(ffmpeg string, prober Prober, run Runner, tempRoot string, opts ...Option) *Service {
	service := &Service{
		ffmpeg:   ffmpeg,
		prober:   prober,
		run:      run,
		tempRoot: tempRoot,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(service)
	}
	if _, err := deps.Resolve(ffmpeg); err != nil {
		service.logger.Warn("ffmpeg unavailable; operations will fail when invoked", "error", err)
	}
	return service
}

func (s *Service) ffmpegPath() (string, error) {
	return deps.MustResolve(s.ffmpeg, "ffmpeg")
}

func (s *Service) workspace() (*tempfiles.Workspace, error) {
	return tempfiles.NewWorkspace(s.tempRoot, s.logger)
}

// checkSource verifies the input file exists.
func checkSource(component, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return services.Wrap(services.ErrValidation, component, "", "source path is empty", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return services.Wrap(services.ErrNotFound, component, "", path, err)
	}
	return nil
}

// ensureDest verifies the output path is set and creates its directory.
func ensureDest(component, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return services.Wrap(services.ErrValidation, component, "", "output path is empty", nil)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrConfiguration, component, "create output directory", dir, err)
		}
	}
	return nil
}

// translate converts a runner failure into the operation's failure, keeping
// cancellation and timeout markers intact so callers can branch on them.
func translate(component string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, services.ErrTimeout) || errors.Is(err, services.ErrConfiguration) {
		return err
	}
	return fmt.Errorf("%s: %w", component, err)
}
