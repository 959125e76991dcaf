package ops

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"splice/internal/services"
)

const (
	minWaveformRate = 8
	maxWaveformRate = 192000
)

// WaveformData decodes the input's audio and reduces it to sampleCount peak
// values in [-1, 1]. The audio is resampled to roughly twice the requested
// sample count before decimation so short peaks survive; decimation keeps the
// maximum-magnitude sample of each bucket rather than averaging. Inputs
// shorter than the requested count return fewer samples without error.
func (s *Service) WaveformData(ctx context.Context, input string, sampleCount int) ([]float64, error) {
	const component = "waveform"

	if sampleCount <= 0 {
		return nil, services.Wrap(services.ErrValidation, component, "", "sample count must be positive", nil)
	}
	if err := checkSource(component, input); err != nil {
		return nil, err
	}

	info, err := s.prober.Probe(ctx, input)
	if err != nil {
		return nil, translate(component, err)
	}
	if !info.HasAudio() {
		return nil, services.Wrap(services.ErrValidation, component, "", input, ErrNoAudio)
	}
	if info.Format.Duration <= 0 {
		return nil, services.Wrap(services.ErrMalformedOutput, component, "", "probed duration is zero for "+input, nil)
	}

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return nil, err
	}

	rate := waveformRate(sampleCount, info.Format.Duration)
	args := []string{
		"-hide_banner", "-v", "error",
		"-i", input,
		"-vn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", rate),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-",
	}
	raw, err := s.run.Output(ctx, ffmpeg, args)
	if err != nil {
		return nil, translate(component, err)
	}

	samples := decodePCM16(raw)
	return decimatePeaks(samples, sampleCount), nil
}

// WaveformImage renders a waveform PNG of the input's audio.
func (s *Service) WaveformImage(ctx context.Context, input, output string, width, height int) (string, error) {
	const component = "waveform-image"

	if width <= 0 || height <= 0 {
		return "", services.Wrap(services.ErrValidation, component, "", "width and height must be positive", nil)
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
		return "", services.Wrap(services.ErrValidation, component, "", input, ErrNoAudio)
	}

	ffmpeg, err := s.ffmpegPath()
	if err != nil {
		return "", err
	}

	args := []string{
		"-y", "-hide_banner",
		"-i", input,
		"-filter_complex", fmt.Sprintf("showwavespic=s=%dx%d", width, height),
		"-frames:v", "1",
		output,
	}
	if _, err := s.run.Run(ctx, ffmpeg, args); err != nil {
		return "", translate(component, err)
	}
	s.logger.Info("waveform image rendered", "component", component, "input", input, "output", output)
	return output, nil
}

// waveformRate picks a decode sample rate yielding about twice sampleCount
// raw samples over the clip's duration.
func waveformRate(sampleCount int, durationSeconds float64) int {
	rate := int(math.Ceil(float64(2*sampleCount) / durationSeconds))
	if rate < minWaveformRate {
		return minWaveformRate
	}
	if rate > maxWaveformRate {
		return maxWaveformRate
	}
	return rate
}

// decodePCM16 converts little-endian signed 16-bit PCM to floats in [-1, 1].
func decodePCM16(raw []byte) []float64 {
	count := len(raw) / 2
	samples := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		value := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples = append(samples, float64(value)/32768)
	}
	return samples
}

// decimatePeaks reduces samples to at most want values, keeping the sample
// with the largest magnitude in each bucket.
func decimatePeaks(samples []float64, want int) []float64 {
	if len(samples) <= want {
		return samples
	}
	bucket := float64(len(samples)) / float64(want)
	peaks := make([]float64, 0, want)
	for i := 0; i < want; i++ {
		start := int(float64(i) * bucket)
		end := int(float64(i+1) * bucket)
		if end > len(samples) {
			end = len(samples)
		}
		peak := 0.0
		for _, sample := range samples[start:end] {
			if math.Abs(sample) > math.Abs(peak) {
				peak = sample
			}
		}
		peaks = append(peaks, peak)
	}
	return peaks
}
