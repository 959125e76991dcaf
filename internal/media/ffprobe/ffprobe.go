// Package ffprobe inspects media containers via the external ffprobe binary
// and maps its JSON output onto one canonical MediaInfo value. Every call
// reprobes; results are owned by the caller and never cached.
package ffprobe

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"splice/internal/services"
)

// Runner abstracts process execution for testability.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

// Prober invokes ffprobe against local media files.
type Prober struct {
	binary string
	run    Runner
}

// NewProber constructs a prober using the given binary path or command name.
func NewProber(binary string, run Runner) *Prober {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &Prober{binary: binary, run: run}
}

// Probe inspects the file at path and returns its media info. Fails with
// services.ErrNotFound when the file is missing, services.ErrExternalTool
// when ffprobe exits non-zero, and services.ErrMalformedOutput when its JSON
// cannot be parsed or describes no format and no streams.
func (p *Prober) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrValidation, "probe", "", "empty path", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "probe", "", path, err)
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	output, err := p.run.Run(ctx, p.binary, args)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrExternalTool, "probe", "run ffprobe", path, err)
	}

	var payload probePayload
	if err := json.Unmarshal([]byte(output), &payload); err != nil {
		return nil, services.Wrap(services.ErrMalformedOutput, "probe", "parse json", path, err)
	}
	if payload.Format.FormatName == "" && len(payload.Streams) == 0 {
		return nil, services.Wrap(services.ErrMalformedOutput, "probe", "", "ffprobe returned no format or streams for "+path, nil)
	}

	return payload.toMediaInfo(path), nil
}

// probePayload mirrors ffprobe's JSON shape: snake_case keys, numeric fields
// carried as strings.
type probePayload struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	FormatName     string            `json:"format_name"`
	FormatLongName string            `json:"format_long_name"`
	Duration       string            `json:"duration"`
	Size           string            `json:"size"`
	BitRate        string            `json:"bit_rate"`
	Tags           map[string]string `json:"tags"`
}

type probeStream struct {
	Index              int               `json:"index"`
	CodecName          string            `json:"codec_name"`
	CodecLongName      string            `json:"codec_long_name"`
	CodecType          string            `json:"codec_type"`
	PixFmt             string            `json:"pix_fmt"`
	Width              int               `json:"width"`
	Height             int               `json:"height"`
	DisplayAspectRatio string            `json:"display_aspect_ratio"`
	RFrameRate         string            `json:"r_frame_rate"`
	NBFrames           string            `json:"nb_frames"`
	BitRate            string            `json:"bit_rate"`
	SampleRate         string            `json:"sample_rate"`
	Channels           int               `json:"channels"`
	ChannelLayout      string            `json:"channel_layout"`
	SampleFmt          string            `json:"sample_fmt"`
	Tags               map[string]string `json:"tags"`
}

func (p probePayload) toMediaInfo(path string) *MediaInfo {
	info := &MediaInfo{
		Path: path,
		Format: Format{
			Name:     p.Format.FormatName,
			LongName: p.Format.FormatLongName,
			Duration: parseFloat(p.Format.Duration),
			Size:     int64(parseFloat(p.Format.Size)),
			BitRate:  int64(parseFloat(p.Format.BitRate)),
			Tags:     p.Format.Tags,
		},
	}

	for _, stream := range p.Streams {
		switch strings.ToLower(stream.CodecType) {
		case "video":
			info.VideoStreams = append(info.VideoStreams, VideoStream{
				StreamInfo:  stream.common(),
				Width:       stream.Width,
				Height:      stream.Height,
				PixelFormat: stream.PixFmt,
				AspectRatio: stream.DisplayAspectRatio,
				FrameRate:   parseFraction(stream.RFrameRate),
				FrameCount:  int64(parseFloat(stream.NBFrames)),
				BitRate:     int64(parseFloat(stream.BitRate)),
			})
		case "audio":
			info.AudioStreams = append(info.AudioStreams, AudioStream{
				StreamInfo:    stream.common(),
				SampleRate:    int(parseFloat(stream.SampleRate)),
				Channels:      stream.Channels,
				ChannelLayout: stream.ChannelLayout,
				SampleFormat:  stream.SampleFmt,
				BitRate:       int64(parseFloat(stream.BitRate)),
			})
		case "subtitle":
			info.SubtitleStreams = append(info.SubtitleStreams, SubtitleStream{
				StreamInfo: stream.common(),
			})
		}
	}

	return info
}

func (s probeStream) common() StreamInfo {
	return StreamInfo{
		Index:         s.Index,
		Codec:         s.CodecName,
		CodecLongName: s.CodecLongName,
		Language:      s.Tags["language"],
		Tags:          s.Tags,
	}
}

// parseFloat converts ffprobe's string-typed numerics. Always parsed with
// strconv so locale settings can never change the decimal separator.
func parseFloat(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// parseFraction converts ffprobe fraction strings like "30000/1001".
func parseFraction(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	num, den, found := strings.Cut(value, "/")
	if !found {
		return parseFloat(num)
	}
	numerator := parseFloat(num)
	denominator := parseFloat(den)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
