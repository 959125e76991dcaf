package ops

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"splice/internal/media/ffprobe"
	"splice/internal/services"
)

func TestFrameTimestamps(t *testing.T) {
	got := frameTimestamps(100, 4)
	want := []time.Duration{20 * time.Second, 40 * time.Second, 60 * time.Second, 80 * time.Second}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("timestamp %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExtractFrameArgs(t *testing.T) {
	runner := &fakeRunner{}
	input := mediaFile(t, "clip.mp4")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		input: avInfo(input, "h264", "aac", 60),
	}}
	service, _ := newTestService(t, runner, prober)
	output := filepath.Join(t.TempDir(), "thumb.jpg")

	got, err := service.ExtractFrame(context.Background(), input, output, 12500*time.Millisecond)
	if err != nil {
		t.Fatalf("extract frame: %v", err)
	}
	if got != output {
		t.Fatalf("returned %q", got)
	}
	args := runner.calls[0].args
	if !hasArgPair(args, "-ss", "12.500") || !hasArgPair(args, "-frames:v", "1") || !hasArgPair(args, "-q:v", "2") {
		t.Fatalf("frame args wrong: %v", args)
	}
}

func TestExtractFrameRejectsAudioOnly(t *testing.T) {
	input := mediaFile(t, "song.mp3")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		input: avInfo(input, "", "mp3", 180),
	}}
	service, _ := newTestService(t, &fakeRunner{}, prober)

	_, err := service.ExtractFrame(context.Background(), input, filepath.Join(t.TempDir(), "t.jpg"), 0)
	if !errors.Is(err, ErrNoVideo) {
		t.Fatalf("expected ErrNoVideo, got %v", err)
	}
}

func TestExtractFramesNamesAndSpacing(t *testing.T) {
	runner := &fakeRunner{}
	input := mediaFile(t, "clip.mp4")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		input: avInfo(input, "h264", "aac", 30),
	}}
	service, _ := newTestService(t, runner, prober)
	outputDir := filepath.Join(t.TempDir(), "thumbs")

	outputs, err := service.ExtractFrames(context.Background(), input, outputDir, 3)
	if err != nil {
		t.Fatalf("extract frames: %v", err)
	}
	if len(outputs) != 3 {
		t.Fatalf("got %d outputs", len(outputs))
	}
	if filepath.Base(outputs[0]) != "frame_001.jpg" || filepath.Base(outputs[2]) != "frame_003.jpg" {
		t.Fatalf("unexpected names: %v", outputs)
	}
	if len(runner.calls) != 3 {
		t.Fatalf("expected 3 invocations, got %d", len(runner.calls))
	}
	// 30s / (3+1) spacing: 7.5, 15, 22.5.
	for i, want := range []string{"7.500", "15.000", "22.500"} {
		if !hasArgPair(runner.calls[i].args, "-ss", want) {
			t.Fatalf("call %d seek wrong: %v", i, runner.calls[i].args)
		}
	}
}

func TestExtractFramesStopsOnFailure(t *testing.T) {
	toolErr := services.Wrap(services.ErrExternalTool, "process", "", "", errors.New("exit status 1"))
	runner := &fakeRunner{err: toolErr, errOnCall: 2}
	input := mediaFile(t, "clip.mp4")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		input: avInfo(input, "h264", "aac", 30),
	}}
	service, _ := newTestService(t, runner, prober)

	_, err := service.ExtractFrames(context.Background(), input, filepath.Join(t.TempDir(), "thumbs"), 3)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected tool failure, got %v", err)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected to stop after the failing call, got %d", len(runner.calls))
	}
}
