package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Show the audio streams of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolkit, err := ctx.ensureToolkit()
			if err != nil {
				return err
			}

			streams, err := toolkit.AudioStreams(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(streams) == 0 {
				fmt.Fprintln(out, "No audio streams found")
				return nil
			}

			rows := make([][]string, 0, len(streams))
			for _, s := range streams {
				codec := "unknown"
				compression := "-"
				encode := "no"
				if s.Codec != nil {
					codec = s.Codec.Name
					compression = s.Codec.Compression.String()
					encode = yesNo(s.Codec.CanEncode)
				}
				depth := "-"
				if s.Depth > 0 {
					depth = strconv.Itoa(s.Depth)
				}
				rows = append(rows, []string{
					strconv.Itoa(s.Index), codec, compression, depth, encode,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Stream", "Codec", "Compression", "Bit Depth", "Encodable"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}
