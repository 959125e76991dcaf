package ops

import (
	"context"
	"fmt"

	"splice/internal/services"
)

const defaultGifFrameRate = 12.0

// CreateGif renders an animated GIF from the selected interval via ffmpeg's
// two-pass palette pipeline: pass one generates a bounded color palette,
// pass two applies it with dithering. The palette file lives in a scratch
// workspace removed on every exit path.
func (s *Service) CreateGif(ctx context.Context, input, output string, opts GifOptions, onProgress func(Progress)) (string, error) {
	const component = "gif"

	if err := opts.validate(); err != nil {
		return "", err
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

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return "", err
	}

	workspace, err := s.workspace()
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, component, "create workspace", "", err)
	}
	defer workspace.Cleanup()

	frameRate := opts.FrameRate
	if frameRate == 0 {
		frameRate = defaultGifFrameRate
	}
	scale := fmt.Sprintf("fps=%s,scale=%d:-1:flags=lanczos", formatLevel(frameRate), opts.Width)
	palettePath := workspace.File(".png")
	totalSeconds := opts.Duration.Seconds()

	paletteArgs := []string{
		"-y", "-hide_banner",
		"-ss", formatSeconds(opts.Start),
		"-t", formatSeconds(opts.Duration),
		"-i", input,
		"-vf", fmt.Sprintf("%s,palettegen=max_colors=%d", scale, paletteSize(opts.Quality)),
		palettePath,
	}
	if err := s.run.RunWithProgress(ctx, ffmpeg, paletteArgs, encoderProgress(component+" palette", totalSeconds, onProgress)); err != nil {
		return "", translate(component, err)
	}

	renderArgs := []string{
		"-y", "-hide_banner",
		"-ss", formatSeconds(opts.Start),
		"-t", formatSeconds(opts.Duration),
		"-i", input,
		"-i", palettePath,
		"-lavfi", fmt.Sprintf("%s[x];[x][1:v]paletteuse=dither=bayer:bayer_scale=5", scale),
		output,
	}
	if err := s.run.RunWithProgress(ctx, ffmpeg, renderArgs, encoderProgress(component+" render", totalSeconds, onProgress)); err != nil {
		return "", translate(component, err)
	}

	s.logger.Info("gif rendered", "component", component, "input", input, "output", output, "palette_colors", paletteSize(opts.Quality))
	return output, nil
}

// paletteSize maps the 1–100 quality knob linearly onto palette colors,
// clamped to GIF's [2, 255] range.
func paletteSize(quality int) int {
	size := 2 + (253*quality)/100
	if size < 2 {
		return 2
	}
	if size > 255 {
		return 255
	}
	return size
}
