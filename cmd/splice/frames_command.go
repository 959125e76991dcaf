package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFrameCommand(ctx *commandContext) *cobra.Command {
	var atFlag string

	cmd := &cobra.Command{
		Use:   "frame <input> <output.jpg>",
		Short: "Extract a single frame at a timestamp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseTimecode(atFlag)
			if err != nil {
				return err
			}
			service, err := ctx.mediaService()
			if err != nil {
				return err
			}
			input, output := args[0], args[1]
			return ctx.recordOperation(cmd.Context(), "frame", input, output, func() error {
				result, err := service.ExtractFrame(cmd.Context(), input, output, at)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "0", "Timestamp (seconds or HH:MM:SS)")
	return cmd
}

func newFramesCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "frames <input> <output-dir>",
		Short: "Extract evenly spaced thumbnails across the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.mediaService()
			if err != nil {
				return err
			}
			input, outputDir := args[0], args[1]
			return ctx.recordOperation(cmd.Context(), "frames", input, outputDir, func() error {
				outputs, err := service.ExtractFrames(cmd.Context(), input, outputDir, count)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, path := range outputs {
					fmt.Fprintf(out, "Wrote %s\n", path)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "Number of thumbnails")
	return cmd
}
