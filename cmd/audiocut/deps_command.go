package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiocut/internal/deps"
)

var requiredBinaries = []deps.Requirement{
	{Name: "ffmpeg", Command: "ffmpeg", Description: "segment extraction, concatenation, and demuxing"},
	{Name: "ffprobe", Command: "ffprobe", Description: "stream and clip metadata probing"},
}

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external binary availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			requirements := requiredBinaries
			if cfg.FFmpeg.SearchPath != "" {
				ffmpegPath, ffprobePath, err := deps.ResolveFFmpeg(cfg.FFmpeg.SearchPath)
				if err != nil {
					return err
				}
				requirements = []deps.Requirement{
					{Name: "ffmpeg", Command: ffmpegPath, Description: requiredBinaries[0].Description},
					{Name: "ffprobe", Command: ffprobePath, Description: requiredBinaries[1].Description},
				}
			}

			rows := make([][]string, 0, len(requirements)+1)
			allAvailable := true
			for _, status := range deps.CheckBinaries(requirements) {
				detail := status.Command
				if !status.Available {
					allAvailable = false
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Binary", "Available", "Detail"},
				rows,
				nil,
			))

			if allAvailable {
				if toolkit, err := ctx.ensureToolkit(); err == nil {
					if version, err := toolkit.Version(cmd.Context()); err == nil {
						fmt.Fprintln(out, version)
					}
				}
			}
			return nil
		},
	}
}
