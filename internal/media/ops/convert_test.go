package ops

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"splice/internal/media/ffprobe"
)

func floatPtr(v float64) *float64 { return &v }

func TestConvertArgs(t *testing.T) {
	cases := []struct {
		name     string
		opts     ConvertOptions
		hasVideo bool
		hasAudio bool
		want     []string
	}{
		{
			name:     "empty options stream copy",
			opts:     ConvertOptions{},
			hasVideo: true,
			hasAudio: true,
			want:     []string{"-c", "copy"},
		},
		{
			name:     "video codec only keeps audio copied",
			opts:     ConvertOptions{VideoCodec: "libx265"},
			hasVideo: true,
			hasAudio: true,
			want:     []string{"-c:v", "libx265", "-c:a", "copy"},
		},
		{
			name:     "audio codec and bitrate",
			opts:     ConvertOptions{AudioCodec: "libopus", AudioBitrate: 128000},
			hasVideo: true,
			hasAudio: true,
			want:     []string{"-c:v", "copy", "-c:a", "libopus", "-b:a", "128k"},
		},
		{
			name:     "scale defaults video codec",
			opts:     ConvertOptions{Width: 1280, Height: 720},
			hasVideo: true,
			hasAudio: true,
			want:     []string{"-c:v", "libx264", "-vf", "scale=1280:720", "-c:a", "copy"},
		},
		{
			name:     "frame rate and bitrate",
			opts:     ConvertOptions{VideoCodec: "libx264", VideoBitrate: 2500000, FrameRate: 30},
			hasVideo: true,
			hasAudio: true,
			want:     []string{"-c:v", "libx264", "-b:v", "2500k", "-r", "30", "-c:a", "copy"},
		},
		{
			name:     "audio only input drops video",
			opts:     ConvertOptions{AudioCodec: "aac"},
			hasVideo: false,
			hasAudio: true,
			want:     []string{"-vn", "-c:a", "aac"},
		},
		{
			name:     "video only input drops audio",
			opts:     ConvertOptions{VideoCodec: "libx264"},
			hasVideo: true,
			hasAudio: false,
			want:     []string{"-c:v", "libx264", "-an"},
		},
		{
			name:     "video filter forces reencode with defaults",
			opts:     ConvertOptions{Filters: FilterOptions{Brightness: floatPtr(75)}},
			hasVideo: true,
			hasAudio: true,
			want:     []string{"-c:v", "libx264", "-vf", "eq=brightness=0.5:contrast=1", "-c:a", "copy"},
		},
		{
			name:     "audio filter forces reencode with defaults",
			opts:     ConvertOptions{Filters: FilterOptions{Volume: floatPtr(100)}},
			hasVideo: true,
			hasAudio: true,
			want:     []string{"-c:v", "copy", "-c:a", "aac", "-af", "volume=2"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := convertArgs(tc.opts, tc.hasVideo, tc.hasAudio)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("convertArgs:\n got %v\nwant %v", got, tc.want)
			}
		})
	}
}

func TestConvertReportsProgress(t *testing.T) {
	runner := &fakeRunner{stderrLines: []string{
		"frame=  10 time=00:00:15.00 bitrate=1k",
		"frame=  20 time=00:00:45.00 bitrate=1k",
	}}
	input := mediaFile(t, "in.mp4")
	prober := &fakeProber{infos: map[string]*ffprobe.MediaInfo{
		input: avInfo(input, "h264", "aac", 60),
	}}
	service, _ := newTestService(t, runner, prober)

	var updates []Progress
	_, err := service.Convert(context.Background(), input, filepath.Join(t.TempDir(), "out.mkv"),
		ConvertOptions{VideoCodec: "libx265"}, func(p Progress) { updates = append(updates, p) })
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(updates) != 2 || updates[0].Percent != 25 || updates[1].Percent != 75 {
		t.Fatalf("unexpected progress: %#v", updates)
	}
}

func TestConvertStreamCopyArgs(t *testing.T) {
	runner := &fakeRunner{}
	input := mediaFile(t, "in.mp4")
	service, _ := newTestService(t, runner, nil)

	_, err := service.Convert(context.Background(), input, filepath.Join(t.TempDir(), "out.mp4"), ConvertOptions{}, nil)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(runner.calls) != 1 || !hasArgPair(runner.calls[0].args, "-c", "copy") {
		t.Fatalf("expected stream copy invocation: %#v", runner.calls)
	}
}
