package ops

import (
	"fmt"
	"time"

	"splice/internal/services"
)

// TrimOptions selects the interval to keep.
type TrimOptions struct {
	Start time.Duration
	End   time.Duration
}

func (o TrimOptions) validate() error {
	if o.Start < 0 {
		return services.Wrap(services.ErrValidation, "trim", "", "start must not be negative", nil)
	}
	if o.End <= o.Start {
		return services.Wrap(services.ErrValidation, "trim", "", "end must be after start", nil)
	}
	return nil
}

// ConvertOptions configures transcoding. Zero values mean "keep the source":
// with no codec, bitrate, scale, frame rate, or filter set, the operation
// stream-copies.
type ConvertOptions struct {
	VideoCodec   string
	VideoBitrate int // bits per second
	AudioCodec   string
	AudioBitrate int // bits per second
	Width        int
	Height       int
	FrameRate    float64
	Filters      FilterOptions
}

func (o ConvertOptions) validate() error {
	if o.VideoBitrate < 0 || o.AudioBitrate < 0 {
		return services.Wrap(services.ErrValidation, "convert", "", "bitrates must not be negative", nil)
	}
	if o.Width < 0 || o.Height < 0 {
		return services.Wrap(services.ErrValidation, "convert", "", "dimensions must not be negative", nil)
	}
	if (o.Width == 0) != (o.Height == 0) {
		return services.Wrap(services.ErrValidation, "convert", "", "width and height must be set together", nil)
	}
	if o.FrameRate < 0 {
		return services.Wrap(services.ErrValidation, "convert", "", "frame rate must not be negative", nil)
	}
	return o.Filters.Validate()
}

// streamCopy reports whether the options request a pure remux.
func (o ConvertOptions) streamCopy() bool {
	return o.VideoCodec == "" && o.AudioCodec == "" &&
		o.VideoBitrate == 0 && o.AudioBitrate == 0 &&
		o.Width == 0 && o.Height == 0 && o.FrameRate == 0 &&
		o.Filters.empty()
}

// FilterOptions carries optional audio/video filter levels. Nil means the
// filter is not applied. Documented ranges are inclusive at both ends.
type FilterOptions struct {
	Volume     *float64 // 0–100, 50 = unity gain
	Brightness *float64 // 0–100, 50 = unchanged
	Contrast   *float64 // 0–100, 50 = unchanged
	Sharpness  *float64 // 0–100, 0 = off
	Denoise    *float64 // 0–100, 0 = off

	EqualizerFrequency *float64 // 20–20000 Hz
	EqualizerGain      *float64 // -20–20 dB

	CompressorThreshold *float64 // -60–0 dB
	CompressorRatio     *float64 // 1–20

	HighpassFrequency *float64 // 20–20000 Hz
	LowpassFrequency  *float64 // 20–20000 Hz
}

type filterRange struct {
	name  string
	value *float64
	min   float64
	max   float64
}

// Validate checks every set filter against its documented range.
func (f FilterOptions) Validate() error {
	checks := []filterRange{
		{"volume", f.Volume, 0, 100},
		{"brightness", f.Brightness, 0, 100},
		{"contrast", f.Contrast, 0, 100},
		{"sharpness", f.Sharpness, 0, 100},
		{"denoise", f.Denoise, 0, 100},
		{"equalizer frequency", f.EqualizerFrequency, 20, 20000},
		{"equalizer gain", f.EqualizerGain, -20, 20},
		{"compressor threshold", f.CompressorThreshold, -60, 0},
		{"compressor ratio", f.CompressorRatio, 1, 20},
		{"highpass frequency", f.HighpassFrequency, 20, 20000},
		{"lowpass frequency", f.LowpassFrequency, 20, 20000},
	}
	for _, check := range checks {
		if check.value == nil {
			continue
		}
		if *check.value < check.min || *check.value > check.max {
			detail := fmt.Sprintf("%s %g out of range [%g, %g]", check.name, *check.value, check.min, check.max)
			return services.Wrap(services.ErrValidation, "convert", "", detail, nil)
		}
	}
	if (f.EqualizerFrequency == nil) != (f.EqualizerGain == nil) {
		return services.Wrap(services.ErrValidation, "convert", "", "equalizer frequency and gain must be set together", nil)
	}
	if (f.CompressorThreshold == nil) != (f.CompressorRatio == nil) {
		return services.Wrap(services.ErrValidation, "convert", "", "compressor threshold and ratio must be set together", nil)
	}
	return nil
}

func (f FilterOptions) empty() bool {
	return f.Volume == nil && f.Brightness == nil && f.Contrast == nil &&
		f.Sharpness == nil && f.Denoise == nil &&
		f.EqualizerFrequency == nil && f.EqualizerGain == nil &&
		f.CompressorThreshold == nil && f.CompressorRatio == nil &&
		f.HighpassFrequency == nil && f.LowpassFrequency == nil
}

// videoFilters renders the video filter chain. Levels on the 0–100 scale map
// linearly onto each ffmpeg filter's own parameter range.
func (f FilterOptions) videoFilters() []string {
	var filters []string
	if f.Brightness != nil || f.Contrast != nil {
		brightness := 0.0
		if f.Brightness != nil {
			brightness = (*f.Brightness - 50) / 50 // eq takes -1..1
		}
		contrast := 1.0
		if f.Contrast != nil {
			contrast = *f.Contrast / 50 // eq takes 0..2
		}
		filters = append(filters, fmt.Sprintf("eq=brightness=%s:contrast=%s", formatLevel(brightness), formatLevel(contrast)))
	}
	if f.Sharpness != nil {
		filters = append(filters, fmt.Sprintf("unsharp=5:5:%s", formatLevel(*f.Sharpness/50)))
	}
	if f.Denoise != nil {
		filters = append(filters, fmt.Sprintf("hqdn3d=%s", formatLevel(*f.Denoise/10)))
	}
	return filters
}

// audioFilters renders the audio filter chain.
func (f FilterOptions) audioFilters() []string {
	var filters []string
	if f.Volume != nil {
		filters = append(filters, fmt.Sprintf("volume=%s", formatLevel(*f.Volume/50)))
	}
	if f.EqualizerFrequency != nil && f.EqualizerGain != nil {
		filters = append(filters, fmt.Sprintf("equalizer=f=%s:t=h:width=200:g=%s",
			formatLevel(*f.EqualizerFrequency), formatLevel(*f.EqualizerGain)))
	}
	if f.CompressorThreshold != nil && f.CompressorRatio != nil {
		filters = append(filters, fmt.Sprintf("acompressor=threshold=%sdB:ratio=%s",
			formatLevel(*f.CompressorThreshold), formatLevel(*f.CompressorRatio)))
	}
	if f.HighpassFrequency != nil {
		filters = append(filters, fmt.Sprintf("highpass=f=%s", formatLevel(*f.HighpassFrequency)))
	}
	if f.LowpassFrequency != nil {
		filters = append(filters, fmt.Sprintf("lowpass=f=%s", formatLevel(*f.LowpassFrequency)))
	}
	return filters
}

func formatLevel(v float64) string {
	return fmt.Sprintf("%g", v)
}

// GifOptions configures animated GIF rendering.
type GifOptions struct {
	Start    time.Duration
	Duration time.Duration
	Width    int
	// FrameRate defaults to 12 when zero.
	FrameRate float64
	// Quality 1–100 controls palette size.
	Quality int
}

func (o GifOptions) validate() error {
	if o.Start < 0 {
		return services.Wrap(services.ErrValidation, "gif", "", "start must not be negative", nil)
	}
	if o.Duration <= 0 {
		return services.Wrap(services.ErrValidation, "gif", "", "duration must be positive", nil)
	}
	if o.Width <= 0 {
		return services.Wrap(services.ErrValidation, "gif", "", "width must be positive", nil)
	}
	if o.FrameRate < 0 {
		return services.Wrap(services.ErrValidation, "gif", "", "frame rate must not be negative", nil)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return services.Wrap(services.ErrValidation, "gif", "", "quality must be between 1 and 100", nil)
	}
	return nil
}
