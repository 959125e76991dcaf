package ops

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splice/internal/media/ffprobe"
	"splice/internal/services"
)

func TestConcatListEscaping(t *testing.T) {
	got := concatList([]string{"/media/plain.mp4", "/media/it's here.mp4"})
	want := "file '/media/plain.mp4'\n" + `file '/media/it'\''s here.mp4'` + "\n"
	if got != want {
		t.Fatalf("list file mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestConcatCompatibleInputs(t *testing.T) {
	a := mediaFile(t, "a.mp4")
	b := mediaFile(t, "b.mp4")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		a: avInfo(a, "h264", "aac", 30),
		b: avInfo(b, "h264", "aac", 45),
	}}
	runner := &fakeRunner{}
	service, tempRoot := newTestService(t, runner, prober)
	output := filepath.Join(t.TempDir(), "joined.mp4")

	got, err := service.Concat(context.Background(), []string{a, b}, output, nil)
	if err != nil {
		t.Fatalf("concat: %v", err)
	}
	if got != output {
		t.Fatalf("returned %q", got)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected one ffmpeg invocation, got %d", len(runner.calls))
	}
	args := runner.calls[0].args
	if !hasArgPair(args, "-f", "concat") || !hasArgPair(args, "-safe", "0") || !hasArgPair(args, "-c", "copy") {
		t.Fatalf("concat args wrong: %v", args)
	}

	// The list file lived in a workspace that is cleaned up afterwards.
	entries, err := os.ReadDir(tempRoot)
	if err != nil {
		t.Fatalf("read temp root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("workspace not cleaned: %v", entries)
	}
}

func TestConcatIncompatibleVideoCodecs(t *testing.T) {
	a := mediaFile(t, "a.mp4")
	b := mediaFile(t, "b.mp4")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		a: avInfo(a, "h264", "aac", 30),
		b: avInfo(b, "hevc", "aac", 45),
	}}
	runner := &fakeRunner{}
	service, _ := newTestService(t, runner, prober)

	_, err := service.Concat(context.Background(), []string{a, b}, filepath.Join(t.TempDir(), "j.mp4"), nil)
	if !errors.Is(err, services.ErrIncompatibleInputs) {
		t.Fatalf("expected incompatible inputs, got %v", err)
	}
	if !strings.Contains(err.Error(), "hevc") {
		t.Fatalf("error should name the mismatched codec: %v", err)
	}
	// Fail-fast: ffmpeg must never have been invoked.
	if len(runner.calls) != 0 {
		t.Fatalf("ffmpeg invoked despite incompatible inputs: %v", runner.calls)
	}
}

func TestConcatIncompatibleAudioCodecs(t *testing.T) {
	a := mediaFile(t, "a.mp4")
	b := mediaFile(t, "b.mp4")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		a: avInfo(a, "h264", "aac", 30),
		b: avInfo(b, "h264", "mp3", 45),
	}}
	runner := &fakeRunner{}
	service, _ := newTestService(t, runner, prober)

	_, err := service.Concat(context.Background(), []string{a, b}, filepath.Join(t.TempDir(), "j.mp4"), nil)
	if !errors.Is(err, services.ErrIncompatibleInputs) {
		t.Fatalf("expected incompatible inputs, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("ffmpeg invoked despite incompatible inputs")
	}
}

func TestConcatRequiresTwoInputs(t *testing.T) {
	service, _ := newTestService(t, &fakeRunner{}, nil)
	_, err := service.Concat(context.Background(), []string{mediaFile(t, "a.mp4")},
		filepath.Join(t.TempDir(), "j.mp4"), nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
