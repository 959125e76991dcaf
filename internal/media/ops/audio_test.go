package ops

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"splice/internal/media/ffprobe"
)

func TestExtractAudioStreamCopy(t *testing.T) {
	runner := &fakeRunner{}
	input := mediaFile(t, "clip.mp4")
	service, _ := newTestService(t, runner, nil)
	output := filepath.Join(t.TempDir(), "audio.m4a")

	got, err := service.ExtractAudio(context.Background(), input, output, "", nil)
	if err != nil {
		t.Fatalf("extract audio: %v", err)
	}
	if got != output {
		t.Fatalf("returned %q", got)
	}
	args := runner.calls[0].args
	if !hasArgPair(args, "-acodec", "copy") {
		t.Fatalf("expected stream copy: %v", args)
	}
	for _, arg := range args {
		if arg == "-vn" {
			return
		}
	}
	t.Fatalf("-vn missing: %v", args)
}

func TestExtractAudioWithCodec(t *testing.T) {
	runner := &fakeRunner{}
	input := mediaFile(t, "clip.mp4")
	service, _ := newTestService(t, runner, nil)

	_, err := service.ExtractAudio(context.Background(), input, filepath.Join(t.TempDir(), "audio.mp3"), "libmp3lame", nil)
	if err != nil {
		t.Fatalf("extract audio: %v", err)
	}
	if !hasArgPair(runner.calls[0].args, "-acodec", "libmp3lame") {
		t.Fatalf("codec not passed: %v", runner.calls[0].args)
	}
}

func TestExtractAudioRejectsVideoOnly(t *testing.T) {
	input := mediaFile(t, "silent.mp4")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		input: avInfo(input, "h264", "", 10),
	}}
	service, _ := newTestService(t, &fakeRunner{}, prober)

	_, err := service.ExtractAudio(context.Background(), input, filepath.Join(t.TempDir(), "a.m4a"), "", nil)
	if !errors.Is(err, ErrNoAudio) {
		t.Fatalf("expected ErrNoAudio, got %v", err)
	}
}
