package ops

import (
	"context"
	"fmt"
	"os"
	"strings"

	"splice/internal/services"
)

// Concat joins the inputs into output via ffmpeg's concat demuxer. The
// demuxer stream-copies, so every input must carry identical video and audio
// codecs; any mismatch fails with services.ErrIncompatibleInputs before
// ffmpeg is invoked.
//
// Codec-name equality is a necessary but not sufficient condition: inputs
// that differ in profile, resolution, or sample rate can still produce a
// broken output. Widening the check would require probing per-stream
// parameters; callers needing stronger guarantees should convert first.
func (s *Service) Concat(ctx context.Context, inputs []string, output string, onProgress func(Progress)) (string, error) {
	const component = "concat"

	if len(inputs) < 2 {
		return "", services.Wrap(services.ErrValidation, component, "", "at least two inputs required", nil)
	}
	for _, input := range inputs {
		if err := checkSource(component, input); err != nil {
			return "", err
		}
	}
	if err := ensureDest(component, output); err != nil {
		return "", err
	}

	var videoCodec, audioCodec string
	var totalSeconds float64
	for i, input := range inputs {
		info, err := s.prober.Probe(ctx, input)
		if err != nil {
			return "", translate(component, err)
		}
		totalSeconds += info.Format.Duration

		var vc, ac string
		if video, ok := info.PrimaryVideo(); ok {
			vc = video.Codec
		}
		if audio, ok := info.PrimaryAudio(); ok {
			ac = audio.Codec
		}
		if i == 0 {
			videoCodec, audioCodec = vc, ac
			continue
		}
		if vc != videoCodec {
			detail := fmt.Sprintf("video codec %q of %s differs from %q", vc, input, videoCodec)
			return "", services.Wrap(services.ErrIncompatibleInputs, component, "", detail, nil)
		}
		if ac != audioCodec {
			detail := fmt.Sprintf("audio codec %q of %s differs from %q", ac, input, audioCodec)
			return "", services.Wrap(services.ErrIncompatibleInputs, component, "", detail, nil)
		}
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

	listPath := workspace.File(".txt")
	if err := os.WriteFile(listPath, []byte(concatList(inputs)), 0o644); err != nil {
		return "", services.Wrap(services.ErrConfiguration, component, "write list file", "", err)
	}

	args := []string{
		"-y", "-hide_banner",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		output,
	}
	if err := s.run.RunWithProgress(ctx, ffmpeg, args, encoderProgress(component, totalSeconds, onProgress)); err != nil {
		return "", translate(component, err)
	}
	s.logger.Info("concat complete", "component", component, "inputs", len(inputs), "output", output)
	return output, nil
}

// concatList renders the demuxer list file: one `file '<path>'` line per
// input, embedded single quotes escaped as '\''.
func concatList(inputs []string) string {
	var builder strings.Builder
	for _, input := range inputs {
		builder.WriteString("file '")
		builder.WriteString(strings.ReplaceAll(input, "'", `'\''`))
		builder.WriteString("'\n")
	}
	return builder.String()
}
