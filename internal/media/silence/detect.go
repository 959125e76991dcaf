package silence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"splice/internal/services"
)

var (
	silenceStartPattern = regexp.MustCompile(`silence_start:\s*(-?\d+(?:\.\d+)?)`)
	silenceEndPattern   = regexp.MustCompile(`silence_end:\s*(-?\d+(?:\.\d+)?)\s*\|\s*silence_duration:\s*(-?\d+(?:\.\d+)?)`)
)

// Detect runs the silencedetect filter over the input's audio and returns the
// silent intervals it reports. A marker count mismatch in the filter output is
// a data-quality condition, not a failure: it is logged and yields an empty
// result.
func (s *Service) Detect(ctx context.Context, input string, opts Options) ([]Period, error) {
	const component = "silence-detect"

	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	if err := checkSource(component, input); err != nil {
		return nil, err
	}

	info, err := s.prober.Probe(ctx, input)
	if err != nil {
		return nil, translate(component, err)
	}
	if !info.HasAudio() {
		return nil, services.Wrap(services.ErrValidation, component, "", input+" has no audio stream", nil)
	}

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return nil, err
	}

	args := []string{
		"-hide_banner",
		"-i", input,
		"-af", detectFilter(opts),
		"-f", "null", "-",
	}
	var lines []string
	if err := s.run.RunWithProgress(ctx, ffmpeg, args, func(line string) {
		if strings.Contains(line, "silence_") {
			lines = append(lines, line)
		}
	}); err != nil {
		return nil, translate(component, err)
	}

	periods, ok := parsePeriods(lines)
	if !ok {
		s.logger.Warn("silence marker counts do not match; discarding detection result",
			"component", component, "input", input)
		return []Period{}, nil
	}
	s.logger.Info("silence detection complete", "component", component, "input", input, "periods", len(periods))
	return periods, nil
}

// detectFilter renders the silencedetect filter expression.
func detectFilter(opts Options) string {
	return fmt.Sprintf("silencedetect=noise=%gdB:d=%g", opts.NoiseFloorDb, opts.MinSilence.Seconds())
}

// removeFilter renders the silenceremove filter expression. stop_periods=-1
// removes every qualifying interval, not just the first.
func removeFilter(opts Options) string {
	return fmt.Sprintf("silenceremove=stop_periods=-1:stop_duration=%g:stop_threshold=%gdB",
		opts.MinSilence.Seconds(), opts.NoiseFloorDb)
}

// parsePeriods pairs silence_start and silence_end markers in order. Returns
// ok=false when the counts disagree.
func parsePeriods(lines []string) ([]Period, bool) {
	var starts, ends, durations []float64
	for _, line := range lines {
		if match := silenceStartPattern.FindStringSubmatch(line); match != nil {
			if v, err := strconv.ParseFloat(match[1], 64); err == nil {
				starts = append(starts, v)
			}
		}
		if match := silenceEndPattern.FindStringSubmatch(line); match != nil {
			end, err1 := strconv.ParseFloat(match[1], 64)
			duration, err2 := strconv.ParseFloat(match[2], 64)
			if err1 == nil && err2 == nil {
				ends = append(ends, end)
				durations = append(durations, duration)
			}
		}
	}
	if len(starts) != len(ends) {
		return nil, false
	}
	periods := make([]Period, 0, len(starts))
	for i := range starts {
		periods = append(periods, Period{
			Start:    seconds(starts[i]),
			End:      seconds(ends[i]),
			Duration: seconds(durations[i]),
		})
	}
	return periods, true
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

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
