package ops

import (
	"context"
)

// Trim cuts the interval [opts.Start, opts.End] from input into output using
// stream copy and returns the output path.
func (s *Service) Trim(ctx context.Context, input, output string, opts TrimOptions, onProgress func(Progress)) (string, error) {
	const component = "trim"

	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := checkSource(component, input); err != nil {
		return "", err
	}
	if err := ensureDest(component, output); err != nil {
		return "", err
	}

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return "", err
	}

	args := []string{
		"-y", "-hide_banner",
		"-i", input,
		"-ss", formatSeconds(opts.Start),
		"-to", formatSeconds(opts.End),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		output,
	}

	total := (opts.End - opts.Start).Seconds()
	if err := s.run.RunWithProgress(ctx, ffmpeg, args, encoderProgress(component, total, onProgress)); err != nil {
		return "", translate(component, err)
	}
	s.logger.Info("trim complete", "component", component, "input", input, "output", output, "seconds", total)
	return output, nil
}
