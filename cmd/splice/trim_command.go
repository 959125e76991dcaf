package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/media/ops"
)

func newTrimCommand(ctx *commandContext) *cobra.Command {
	var startFlag string
	var endFlag string

	cmd := &cobra.Command{
		Use:   "trim <input> <output>",
		Short: "Cut an interval out of a media file without re-encoding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTimecode(startFlag)
			if err != nil {
				return err
			}
			end, err := parseTimecode(endFlag)
			if err != nil {
				return err
			}

			service, err := ctx.mediaService()
			if err != nil {
				return err
			}
			input, output := args[0], args[1]
			return ctx.recordOperation(cmd.Context(), "trim", input, output, func() error {
				defer endProgress()
				result, err := service.Trim(cmd.Context(), input, output, ops.TrimOptions{
					Start: start,
					End:   end,
				}, operationProgress())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "0", "Interval start (seconds or HH:MM:SS)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Interval end (seconds or HH:MM:SS)")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
