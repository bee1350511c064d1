package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiocut/internal/media/ffmpeg"
)

func newCodecsCommand(ctx *commandContext) *cobra.Command {
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "codecs",
		Short: "Show the toolkit's audio codec capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			toolkit, err := ctx.ensureToolkit()
			if err != nil {
				return err
			}

			codecs, err := toolkit.SortedCodecs(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(codecs))
			for _, codec := range codecs {
				if !allFlag && codec.Type != ffmpeg.StreamAudio {
					continue
				}
				rows = append(rows, []string{
					codec.Name,
					codec.Type.String(),
					codec.Compression.String(),
					yesNo(codec.CanDecode),
					yesNo(codec.CanEncode),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Codec", "Type", "Compression", "Decode", "Encode"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "Include non-audio codecs")
	return cmd
}
