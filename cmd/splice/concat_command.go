package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConcatCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "concat <input>... ",
		Short: "Join files with identical codecs into one output",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.mediaService()
			if err != nil {
				return err
			}
			return ctx.recordOperation(cmd.Context(), "concat", args[0], output, func() error {
				defer endProgress()
				result, err := service.Concat(cmd.Context(), args, output, operationProgress())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
