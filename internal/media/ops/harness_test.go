package ops

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"splice/internal/media/ffprobe"
)

type call struct {
	binary string
	args   []string
}

type fakeRunner struct {
	calls       []call
	stdout      string
	output      []byte
	stderrLines []string
	err         error
	// errOnCall fails only the nth invocation (1-based) when non-zero.
	errOnCall int
}

func (f *fakeRunner) record(binary string, args []string) error {
	f.calls = append(f.calls, call{binary: binary, args: append([]string(nil), args...)})
	if f.err != nil && (f.errOnCall == 0 || f.errOnCall == len(f.calls)) {
		return f.err
	}
	return nil
}

func (f *fakeRunner) Run(_ context.Context, binary string, args []string) (string, error) {
	if err := f.record(binary, args); err != nil {
		return "", err
	}
	return f.stdout, nil
}

func (f *fakeRunner) Output(_ context.Context, binary string, args []string) ([]byte, error) {
	if err := f.record(binary, args); err != nil {
		return nil, err
	}
	return f.output, nil
}

func (f *fakeRunner) RunWithProgress(_ context.Context, binary string, args []string, onLine func(string)) error {
	if err := f.record(binary, args); err != nil {
		return err
	}
	if onLine != nil {
		for _, line := range f.stderrLines {
			onLine(line)
		}
	}
	return nil
}

type fakeProber struct {
	infos map[string]*ffprobe.MediaInfo
	err   error
}

func (f *fakeProber) Probe(_ context.Context, path string) (*ffprobe.MediaInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if info, ok := f.infos[path]; ok {
		return info, nil
	}
	return &ffprobe.MediaInfo{Path: path, Format: ffprobe.Format{Duration: 60}}, nil
}

func avInfo(path string, videoCodec, audioCodec string, duration float64) *ffprobe.MediaInfo {
	info := &ffprobe.MediaInfo{Path: path, Format: ffprobe.Format{Duration: duration}}
	if videoCodec != "" {
		info.VideoStreams = []ffprobe.VideoStream{{
			StreamInfo: ffprobe.StreamInfo{Index: 0, Codec: videoCodec},
			Width:      1920, Height: 1080, FrameRate: 25,
		}}
	}
	if audioCodec != "" {
		info.AudioStreams = []ffprobe.AudioStream{{
			StreamInfo: ffprobe.StreamInfo{Index: 1, Codec: audioCodec},
			SampleRate: 48000, Channels: 2,
		}}
	}
	return info
}

func newTestService(t *testing.T, runner *fakeRunner, prober *fakeProber) (*Service, string) {
	t.Helper()
	tempRoot := t.TempDir()
	if prober == nil {
		prober = &fakeProber{}
	}
	service := NewService("sh", prober, runner, tempRoot, WithLogger(slog.Default()))
	return service, tempRoot
}

func mediaFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("write media stub: %v", err)
	}
	return path
}

func hasArgPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func argValue(args []string, flag string) (string, bool) {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1], true
		}
	}
	return "", false
}
