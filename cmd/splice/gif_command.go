package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/media/ops"
)

func newGifCommand(ctx *commandContext) *cobra.Command {
	var (
		startFlag    string
		durationFlag string
		width        int
		frameRate    float64
		quality      int
	)

	cmd := &cobra.Command{
		Use:   "gif <input> <output.gif>",
		Short: "Render an animated GIF with a two-pass palette",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTimecode(startFlag)
			if err != nil {
				return err
			}
			duration, err := parseTimecode(durationFlag)
			if err != nil {
				return err
			}

			service, err := ctx.mediaService()
			if err != nil {
				return err
			}
			input, output := args[0], args[1]
			return ctx.recordOperation(cmd.Context(), "gif", input, output, func() error {
				defer endProgress()
				result, err := service.CreateGif(cmd.Context(), input, output, ops.GifOptions{
					Start:     start,
					Duration:  duration,
					Width:     width,
					FrameRate: frameRate,
					Quality:   quality,
				}, operationProgress())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "0", "Clip start (seconds or HH:MM:SS)")
	cmd.Flags().StringVar(&durationFlag, "duration", "", "Clip duration (seconds or HH:MM:SS)")
	cmd.Flags().IntVar(&width, "width", 480, "GIF width in pixels (height keeps aspect)")
	cmd.Flags().Float64Var(&frameRate, "fps", 0, "GIF frame rate (default 12)")
	cmd.Flags().IntVar(&quality, "quality", 80, "Palette quality 1-100")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}
