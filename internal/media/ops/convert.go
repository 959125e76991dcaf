package ops

import (
	"context"
	"fmt"
	"strings"
)

// Convert transcodes input into output according to opts and returns the
// output path. With zero-valued options the streams are copied unchanged.
func (s *Service) Convert(ctx context.Context, input, output string, opts ConvertOptions, onProgress func(Progress)) (string, error) {
	const component = "convert"

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

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return "", err
	}

	args := append([]string{"-y", "-hide_banner", "-i", input}, convertArgs(opts, info.HasVideo(), info.HasAudio())...)
	args = append(args, output)

	if err := s.run.RunWithProgress(ctx, ffmpeg, args, encoderProgress(component, info.Format.Duration, onProgress)); err != nil {
		return "", translate(component, err)
	}
	s.logger.Info("convert complete", "component", component, "input", input, "output", output)
	return output, nil
}

// convertArgs builds the codec, scale, and filter arguments. The argument
// order is deterministic: video settings, then audio, then filters.
func convertArgs(opts ConvertOptions, hasVideo, hasAudio bool) []string {
	if opts.streamCopy() {
		return []string{"-c", "copy"}
	}

	var args []string

	if hasVideo {
		videoFilters := opts.Filters.videoFilters()
		if opts.Width > 0 && opts.Height > 0 {
			videoFilters = append(videoFilters, fmt.Sprintf("scale=%d:%d", opts.Width, opts.Height))
		}
		reencodeVideo := opts.VideoCodec != "" || opts.VideoBitrate > 0 || opts.FrameRate > 0 || len(videoFilters) > 0

		switch {
		case !reencodeVideo:
			args = append(args, "-c:v", "copy")
		case opts.VideoCodec != "":
			args = append(args, "-c:v", opts.VideoCodec)
		default:
			args = append(args, "-c:v", "libx264")
		}
		if reencodeVideo {
			if opts.VideoBitrate > 0 {
				args = append(args, "-b:v", formatBitrate(opts.VideoBitrate))
			}
			if opts.FrameRate > 0 {
				args = append(args, "-r", formatLevel(opts.FrameRate))
			}
			if len(videoFilters) > 0 {
				args = append(args, "-vf", strings.Join(videoFilters, ","))
			}
		}
	} else {
		args = append(args, "-vn")
	}

	if hasAudio {
		audioFilters := opts.Filters.audioFilters()
		reencodeAudio := opts.AudioCodec != "" || opts.AudioBitrate > 0 || len(audioFilters) > 0

		switch {
		case !reencodeAudio:
			args = append(args, "-c:a", "copy")
		case opts.AudioCodec != "":
			args = append(args, "-c:a", opts.AudioCodec)
		default:
			args = append(args, "-c:a", "aac")
		}
		if reencodeAudio {
			if opts.AudioBitrate > 0 {
				args = append(args, "-b:a", formatBitrate(opts.AudioBitrate))
			}
			if len(audioFilters) > 0 {
				args = append(args, "-af", strings.Join(audioFilters, ","))
			}
		}
	} else {
		args = append(args, "-an")
	}

	return args
}
