package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSilenceCommand(ctx *commandContext) *cobra.Command {
	silenceCmd := &cobra.Command{
		Use:   "silence",
		Short: "Detect or remove silent intervals",
	}

	silenceCmd.AddCommand(newSilenceDetectCommand(ctx))
	silenceCmd.AddCommand(newSilenceRemoveCommand(ctx))
	return silenceCmd
}

func newSilenceDetectCommand(ctx *commandContext) *cobra.Command {
	var (
		noiseFloor float64
		minSilence time.Duration
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "detect <input>",
		Short: "List silent intervals without modifying the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.silenceService()
			if err != nil {
				return err
			}
			opts := ctx.silenceOptions(
				noiseFloor, cmd.Flags().Changed("noise-floor"),
				minSilence, cmd.Flags().Changed("min-duration"),
			)

			periods, err := service.Detect(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				type periodJSON struct {
					Start    float64 `json:"start"`
					End      float64 `json:"end"`
					Duration float64 `json:"duration"`
				}
				payload := make([]periodJSON, 0, len(periods))
				for _, period := range periods {
					payload = append(payload, periodJSON{
						Start:    period.Start.Seconds(),
						End:      period.End.Seconds(),
						Duration: period.Duration.Seconds(),
					})
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(payload)
			}

			if len(periods) == 0 {
				fmt.Fprintln(out, "No silence detected")
				return nil
			}
			rows := make([][]string, 0, len(periods))
			for i, period := range periods {
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					formatClock(period.Start.Seconds()),
					formatClock(period.End.Seconds()),
					fmt.Sprintf("%.2fs", period.Duration.Seconds()),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Duration"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().Float64Var(&noiseFloor, "noise-floor", 0, "Silence threshold in dB (negative, default from config)")
	cmd.Flags().DurationVar(&minSilence, "min-duration", 0, "Minimum silence duration (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newSilenceRemoveCommand(ctx *commandContext) *cobra.Command {
	var (
		noiseFloor float64
		minSilence time.Duration
	)

	cmd := &cobra.Command{
		Use:   "remove <input> <output>",
		Short: "Strip silent intervals and re-mux the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.silenceService()
			if err != nil {
				return err
			}
			opts := ctx.silenceOptions(
				noiseFloor, cmd.Flags().Changed("noise-floor"),
				minSilence, cmd.Flags().Changed("min-duration"),
			)

			input, output := args[0], args[1]
			return ctx.recordOperation(cmd.Context(), "silence-remove", input, output, func() error {
				defer endProgress()
				result, err := service.Remove(cmd.Context(), input, output, opts, pipelineProgress())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&noiseFloor, "noise-floor", 0, "Silence threshold in dB (negative, default from config)")
	cmd.Flags().DurationVar(&minSilence, "min-duration", 0, "Minimum silence duration (default from config)")
	return cmd
}
