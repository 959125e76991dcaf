package silence

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"

	"splice/internal/services"
	"splice/internal/tempfiles"
)

const removalStages = 5

var stageTimePattern = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// Remove strips silent intervals from input and writes the result to output.
// Video inputs run a five-stage pipeline: extract the audio losslessly, strip
// silence from it, extract the video with a stream copy, re-mux the two with
// shortest-stream truncation, and finally re-attach the original container
// metadata with fast-start flags. Audio-only inputs run the filter in a
// single pass. All intermediate files are removed on every exit path.
func (s *Service) Remove(ctx context.Context, input, output string, opts Options, onProgress func(Progress)) (string, error) {
	const component = "silence-remove"

	opts, err := opts.normalized()
	if err != nil {
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
	if !info.HasAudio() {
		return "", services.Wrap(services.ErrValidation, component, "", input+" has no audio stream", nil)
	}

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return "", err
	}

	if !info.HasVideo() {
		args := []string{
			"-y", "-hide_banner",
			"-i", input,
			"-af", removeFilter(opts),
			output,
		}
		sink := stageSink("filter audio", 1, 1, info.Format.Duration, onProgress)
		if err := s.run.RunWithProgress(ctx, ffmpeg, args, sink); err != nil {
			return "", translate(component, err)
		}
		s.logger.Info("silence removed", "component", component, "input", input, "output", output)
		return output, nil
	}

	workspace, err := s.workspace()
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, component, "create workspace", "", err)
	}
	defer workspace.Cleanup()

	container := filepath.Ext(input)
	if container == "" {
		container = ".mkv"
	}
	outExt := filepath.Ext(output)
	if outExt == "" {
		outExt = container
	}
	rawAudio := workspace.File(".wav")
	trimmedAudio := workspace.File(".wav")
	rawVideo := workspace.File(container)
	merged := workspace.File(container)
	// The final stage renders into the workspace; the finished file is copied
	// into place afterwards so a failed stage never leaves a truncated output
	// at the destination.
	staged := workspace.File(outExt)
	total := info.Format.Duration

	stages := []struct {
		name string
		args []string
	}{
		{"extract audio", []string{
			"-y", "-hide_banner",
			"-i", input,
			"-vn", "-acodec", "pcm_s16le",
			rawAudio,
		}},
		{"filter audio", []string{
			"-y", "-hide_banner",
			"-i", rawAudio,
			"-af", removeFilter(opts),
			trimmedAudio,
		}},
		{"extract video", []string{
			"-y", "-hide_banner",
			"-i", input,
			"-an", "-c:v", "copy",
			rawVideo,
		}},
		{"remux", []string{
			"-y", "-hide_banner",
			"-i", rawVideo,
			"-i", trimmedAudio,
			"-c:v", "copy", "-c:a", "aac",
			"-shortest",
			merged,
		}},
		{"copy metadata", []string{
			"-y", "-hide_banner",
			"-i", merged,
			"-i", input,
			"-map", "0", "-map_metadata", "1",
			"-c", "copy",
			"-movflags", "+faststart",
			staged,
		}},
	}

	for i, stage := range stages {
		sink := stageSink(stage.name, i+1, removalStages, total, onProgress)
		if err := s.run.RunWithProgress(ctx, ffmpeg, stage.args, sink); err != nil {
			return "", translate(component, err)
		}
		if onProgress != nil {
			onProgress(Progress{
				Stage:      stage.name,
				StageIndex: i + 1,
				StageCount: removalStages,
				Percent:    float64(i+1) / removalStages * 100,
			})
		}
	}

	if err := tempfiles.CopyFile(staged, output); err != nil {
		return "", services.Wrap(services.ErrConfiguration, component, "move output into place", output, err)
	}

	s.logger.Info("silence removed", "component", component, "input", input, "output", output, "stages", removalStages)
	return output, nil
}

// stageSink adapts encoder time markers into pipeline-wide progress: the
// completed stages plus the current stage's fraction, over the stage count.
func stageSink(stage string, index, count int, totalSeconds float64, onProgress func(Progress)) func(string) {
	if onProgress == nil || totalSeconds <= 0 {
		return nil
	}
	return func(line string) {
		match := stageTimePattern.FindStringSubmatch(line)
		if match == nil {
			return
		}
		hours, _ := strconv.ParseFloat(match[1], 64)
		minutes, _ := strconv.ParseFloat(match[2], 64)
		secs, _ := strconv.ParseFloat(match[3], 64)
		fraction := (hours*3600 + minutes*60 + secs) / totalSeconds
		if fraction > 1 {
			fraction = 1
		}
		onProgress(Progress{
			Stage:      stage,
			StageIndex: index,
			StageCount: count,
			Percent:    (float64(index-1) + fraction) / float64(count) * 100,
		})
	}
}
