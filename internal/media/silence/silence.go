// Package silence detects and removes quiet intervals in media files using
// ffmpeg's silencedetect and silenceremove audio filters. Detection parses
// filter markers from the encoder's diagnostic output; removal runs a
// sequential multi-stage pipeline that strips silence from the audio track
// and re-muxes it against the untouched video stream.
package silence

import (
	"context"
	"log/slog"
	"time"

	"splice/internal/deps"
	"splice/internal/media/ffprobe"
	"splice/internal/services"
	"splice/internal/tempfiles"
)

// Defaults applied when options leave a knob at its zero value.
const (
	DefaultNoiseFloorDb = -30.0
	DefaultMinSilence   = 2 * time.Second
)

// Period is one contiguous silent interval.
type Period struct {
	Start    time.Duration
	End      time.Duration
	Duration time.Duration
}

// Options configures the detection threshold shared by both paths.
type Options struct {
	// NoiseFloorDb is the level below which audio counts as silence.
	// Zero means DefaultNoiseFloorDb; positive values are invalid.
	NoiseFloorDb float64
	// MinSilence is the shortest interval reported or removed.
	// Zero means DefaultMinSilence.
	MinSilence time.Duration
}

func (o Options) normalized() (Options, error) {
	if o.NoiseFloorDb == 0 {
		o.NoiseFloorDb = DefaultNoiseFloorDb
	}
	if o.NoiseFloorDb > 0 {
		return o, services.Wrap(services.ErrValidation, "silence", "", "noise floor must be negative decibels", nil)
	}
	if o.MinSilence == 0 {
		o.MinSilence = DefaultMinSilence
	}
	if o.MinSilence < 0 {
		return o, services.Wrap(services.ErrValidation, "silence", "", "minimum silence duration must not be negative", nil)
	}
	return o, nil
}

// Progress reports advancement through the removal pipeline. Percent covers
// the whole pipeline, not the current stage.
type Progress struct {
	Stage      string
	StageIndex int
	StageCount int
	Percent    float64
}

// Runner abstracts process execution for testability.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
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

// Service runs silence detection and removal.
type Service struct {
	ffmpeg   string
	prober   Prober
	run      Runner
	tempRoot string
	logger   *slog.Logger
}

// NewService constructs the silence service. Like the operation service, a
// missing ffmpeg binary degrades to per-call failures.
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
	return service
}

func (s *Service) ffmpegPath() (string, error) {
	return deps.MustResolve(s.ffmpeg, "ffmpeg")
}

func (s *Service) workspace() (*tempfiles.Workspace, error) {
	return tempfiles.NewWorkspace(s.tempRoot, s.logger)
}
