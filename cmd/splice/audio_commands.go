package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newExtractAudioCommand(ctx *commandContext) *cobra.Command {
	var codec string

	cmd := &cobra.Command{
		Use:   "extract-audio <input> <output>",
		Short: "Extract the audio track, stream-copied or re-encoded",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.mediaService()
			if err != nil {
				return err
			}
			input, output := args[0], args[1]
			return ctx.recordOperation(cmd.Context(), "extract-audio", input, output, func() error {
				defer endProgress()
				result, err := service.ExtractAudio(cmd.Context(), input, output, codec, operationProgress())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&codec, "codec", "", "Audio codec (default: stream copy)")
	return cmd
}

func newWaveformCommand(ctx *commandContext) *cobra.Command {
	var (
		samples   int
		imagePath string
		width     int
		height    int
	)

	cmd := &cobra.Command{
		Use:   "waveform <input>",
		Short: "Generate waveform peak data (JSON) or render a waveform image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.mediaService()
			if err != nil {
				return err
			}
			input := args[0]

			if imagePath != "" {
				return ctx.recordOperation(cmd.Context(), "waveform-image", input, imagePath, func() error {
					result, err := service.WaveformImage(cmd.Context(), input, imagePath, width, height)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
					return nil
				})
			}

			return ctx.recordOperation(cmd.Context(), "waveform", input, "", func() error {
				data, err := service.WaveformData(cmd.Context(), input, samples)
				if err != nil {
					return err
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(data)
			})
		},
	}

	cmd.Flags().IntVar(&samples, "samples", 800, "Number of peak samples to emit")
	cmd.Flags().StringVar(&imagePath, "image", "", "Render a PNG to this path instead of emitting data")
	cmd.Flags().IntVar(&width, "width", 1024, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 256, "Image height in pixels")
	return cmd
}
