package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/media/ffprobe"
	"splice/internal/textutil"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file's container and streams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prober, err := ctx.prober()
			if err != nil {
				return err
			}
			info, err := prober.Probe(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(info)
			}

			fmt.Fprintf(out, "File:      %s\n", info.Path)
			fmt.Fprintf(out, "Container: %s\n", textutil.TitleCase(info.Format.LongName))
			fmt.Fprintf(out, "Duration:  %s\n", formatClock(info.Format.Duration))
			if info.Format.Size > 0 {
				fmt.Fprintf(out, "Size:      %s\n", formatSize(info.Format.Size))
			}
			if info.Format.BitRate > 0 {
				fmt.Fprintf(out, "Bitrate:   %d kb/s\n", info.Format.BitRate/1000)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Type", "Codec", "Details", "Language"},
				streamRows(info),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}

func streamRows(info *ffprobe.MediaInfo) [][]string {
	var rows [][]string
	for _, stream := range info.VideoStreams {
		details := fmt.Sprintf("%dx%d", stream.Width, stream.Height)
		if stream.FrameRate > 0 {
			details += fmt.Sprintf(" @ %.3g fps", stream.FrameRate)
		}
		if stream.PixelFormat != "" {
			details += " " + stream.PixelFormat
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", stream.Index), "video", stream.Codec, details,
			textutil.LanguageName(stream.Language),
		})
	}
	for _, stream := range info.AudioStreams {
		details := fmt.Sprintf("%d Hz, %d ch", stream.SampleRate, stream.Channels)
		if stream.ChannelLayout != "" {
			details += " (" + stream.ChannelLayout + ")"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", stream.Index), "audio", stream.Codec, details,
			textutil.LanguageName(stream.Language),
		})
	}
	for _, stream := range info.SubtitleStreams {
		rows = append(rows, []string{
			fmt.Sprintf("%d", stream.Index), "subtitle", stream.Codec, "",
			textutil.LanguageName(stream.Language),
		})
	}
	return rows
}
