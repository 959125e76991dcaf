package ops

import (
	"context"

	"splice/internal/services"
)

// ExtractAudio writes the input's audio into output, re-encoding with codec
// when given or stream-copying otherwise. Inputs without audio fail with
// ErrNoAudio.
func (s *Service) ExtractAudio(ctx context.Context, input, output, codec string, onProgress func(Progress)) (string, error) {
	const component = "extract-audio"

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
	if !info.HasAudio() {
		return "", services.Wrap(services.ErrValidation, component, "", input, ErrNoAudio)
	}

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return "", err
	}

	if codec == "" {
		codec = "copy"
	}
	args := []string{
		"-y", "-hide_banner",
		"-i", input,
		"-vn",
		"-acodec", codec,
		output,
	}
	if err := s.run.RunWithProgress(ctx, ffmpeg, args, encoderProgress(component, info.Format.Duration, onProgress)); err != nil {
		return "", translate(component, err)
	}
	s.logger.Info("audio extracted", "component", component, "input", input, "output", output)
	return output, nil
}
