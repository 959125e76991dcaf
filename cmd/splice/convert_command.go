package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/media/ops"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		videoCodec   string
		videoBitrate string
		audioCodec   string
		audioBitrate string
		width        int
		height       int
		frameRate    float64
	)
	filters := filterFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Transcode a media file; with no flags the streams are copied",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vb, err := parseBitrate(videoBitrate)
			if err != nil {
				return err
			}
			ab, err := parseBitrate(audioBitrate)
			if err != nil {
				return err
			}

			opts := ops.ConvertOptions{
				VideoCodec:   videoCodec,
				VideoBitrate: vb,
				AudioCodec:   audioCodec,
				AudioBitrate: ab,
				Width:        width,
				Height:       height,
				FrameRate:    frameRate,
				Filters:      filters.collect(cmd),
			}

			service, err := ctx.mediaService()
			if err != nil {
				return err
			}
			input, output := args[0], args[1]
			return ctx.recordOperation(cmd.Context(), "convert", input, output, func() error {
				defer endProgress()
				result, err := service.Convert(cmd.Context(), input, output, opts, operationProgress())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&videoCodec, "video-codec", "", "Target video codec (e.g. libx264)")
	cmd.Flags().StringVar(&videoBitrate, "video-bitrate", "", "Target video bitrate (e.g. 2500k)")
	cmd.Flags().StringVar(&audioCodec, "audio-codec", "", "Target audio codec (e.g. aac)")
	cmd.Flags().StringVar(&audioBitrate, "audio-bitrate", "", "Target audio bitrate (e.g. 128k)")
	cmd.Flags().IntVar(&width, "width", 0, "Output width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Output height in pixels")
	cmd.Flags().Float64Var(&frameRate, "fps", 0, "Output frame rate")
	filters.register(cmd)

	return cmd
}

// filterFlags maps the optional filter levels onto cobra flags. A filter is
// applied only when its flag was explicitly set.
type filterFlags struct {
	volume     float64
	brightness float64
	contrast   float64
	sharpness  float64
	denoise    float64

	eqFrequency float64
	eqGain      float64

	compThreshold float64
	compRatio     float64

	highpass float64
	lowpass  float64
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64Var(&f.volume, "volume", 50, "Volume level 0-100 (50 = unchanged)")
	flags.Float64Var(&f.brightness, "brightness", 50, "Brightness level 0-100 (50 = unchanged)")
	flags.Float64Var(&f.contrast, "contrast", 50, "Contrast level 0-100 (50 = unchanged)")
	flags.Float64Var(&f.sharpness, "sharpness", 0, "Sharpening level 0-100")
	flags.Float64Var(&f.denoise, "denoise", 0, "Denoising level 0-100")
	flags.Float64Var(&f.eqFrequency, "eq-frequency", 0, "Equalizer center frequency in Hz (20-20000)")
	flags.Float64Var(&f.eqGain, "eq-gain", 0, "Equalizer gain in dB (-20 to 20)")
	flags.Float64Var(&f.compThreshold, "compressor-threshold", 0, "Compressor threshold in dB (-60 to 0)")
	flags.Float64Var(&f.compRatio, "compressor-ratio", 0, "Compressor ratio (1-20)")
	flags.Float64Var(&f.highpass, "highpass", 0, "Highpass cutoff frequency in Hz")
	flags.Float64Var(&f.lowpass, "lowpass", 0, "Lowpass cutoff frequency in Hz")
}

func (f *filterFlags) collect(cmd *cobra.Command) ops.FilterOptions {
	opts := ops.FilterOptions{}
	set := func(name string, value *float64) *float64 {
		if cmd.Flags().Changed(name) {
			return value
		}
		return nil
	}
	opts.Volume = set("volume", &f.volume)
	opts.Brightness = set("brightness", &f.brightness)
	opts.Contrast = set("contrast", &f.contrast)
	opts.Sharpness = set("sharpness", &f.sharpness)
	opts.Denoise = set("denoise", &f.denoise)
	opts.EqualizerFrequency = set("eq-frequency", &f.eqFrequency)
	opts.EqualizerGain = set("eq-gain", &f.eqGain)
	opts.CompressorThreshold = set("compressor-threshold", &f.compThreshold)
	opts.CompressorRatio = set("compressor-ratio", &f.compRatio)
	opts.HighpassFrequency = set("highpass", &f.highpass)
	opts.LowpassFrequency = set("lowpass", &f.lowpass)
	return opts
}
