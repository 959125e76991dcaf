package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"splice/internal/services"
)

// ExtractFrame writes the frame at the given timestamp to output.
func (s *Service) ExtractFrame(ctx context.Context, input, output string, at time.Duration) (string, error) {
	const component = "extract-frame"

	if at < 0 {
		return "", services.Wrap(services.ErrValidation, component, "", "timestamp must not be negative", nil)
	}
	if err := checkSource(component, input); err != nil {
		return "", err
	}
	if err := ensureDest(component, output); err != nil {
		return "", err
	}

	info, err := s.prober.Probe(ctx, input)
	if err != nil {
		return "", translate(component, err)
	}
	if !info.HasVideo() {
		return "", services.Wrap(services.ErrValidation, component, "", input, ErrNoVideo)
	}

	return s.extractFrame(ctx, input, output, at)
}

// ExtractFrames extracts count thumbnails at evenly spaced timestamps across
// the input's duration, skipping the very start and end. Files are named
// frame_001.jpg onward inside outputDir.
func (s *Service) ExtractFrames(ctx context.Context, input, outputDir string, count int) ([]string, error) {
	const component = "extract-frames"

	if count <= 0 {
		return nil, services.Wrap(services.ErrValidation, component, "", "count must be positive", nil)
	}
	if err := checkSource(component, input); err != nil {
		return nil, err
	}
	if outputDir == "" {
		return nil, services.Wrap(services.ErrValidation, component, "", "output directory is empty", nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "create output directory", outputDir, err)
	}

	info, err := s.prober.Probe(ctx, input)
	if err != nil {
		return nil, translate(component, err)
	}
	if !info.HasVideo() {
		return nil, services.Wrap(services.ErrValidation, component, "", input, ErrNoVideo)
	}
	if info.Format.Duration <= 0 {
		return nil, services.Wrap(services.ErrMalformedOutput, component, "", "probed duration is zero for "+input, nil)
	}

	outputs := make([]string, 0, count)
	for i, at := range frameTimestamps(info.Format.Duration, count) {
		output := filepath.Join(outputDir, fmt.Sprintf("frame_%03d.jpg", i+1))
		if _, err := s.extractFrame(ctx, input, output, at); err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}
	return outputs, nil
}

func (s *Service) extractFrame(ctx context.Context, input, output string, at time.Duration) (string, error) {
	const component = "extract-frame"

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return "", err
	}

	args := []string{
		"-y", "-hide_banner",
		"-ss", formatSeconds(at),
		"-i", input,
		"-frames:v", "1",
		"-q:v", "2",
		output,
	}
	if _, err := s.run.Run(ctx, ffmpeg, args); err != nil {
		return "", translate(component, err)
	}
	return output, nil
}

// frameTimestamps spaces count timestamps at duration/(count+1) intervals so
// neither the first nor the last frame lands on the clip boundary.
func frameTimestamps(durationSeconds float64, count int) []time.Duration {
	interval := durationSeconds / float64(count+1)
	timestamps := make([]time.Duration, 0, count)
	for i := 1; i <= count; i++ {
		timestamps = append(timestamps, time.Duration(interval*float64(i)*float64(time.Second)))
	}
	return timestamps
}
