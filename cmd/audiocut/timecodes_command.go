package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"audiocut/internal/clip"
	"audiocut/internal/timecode"
	"audiocut/internal/trim"
)

func newTimecodesCommand() *cobra.Command {
	var trimFlags []string
	var framesFlag int
	var fpsFlag string
	var timecodesFlag string
	var precisionFlag int

	cmd := &cobra.Command{
		Use:         "timecodes",
		Short:       "Map frame trims to formatted timestamp ranges",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if framesFlag <= 0 {
				return errors.New("--frames must be positive")
			}

			rate := clip.Variable
			if strings.TrimSpace(fpsFlag) != "" {
				parsed, err := clip.ParseRate(fpsFlag)
				if err != nil {
					return err
				}
				rate = parsed
			} else if timecodesFlag == "" {
				return errors.New("either --fps or --timecodes is required")
			}

			table, err := timecode.Build(clip.Clip{NumFrames: framesFlag, Rate: rate}, timecodesFlag)
			if err != nil {
				return err
			}

			trims, err := parseTrims(trimFlags)
			if err != nil {
				return err
			}
			norms, overlaps, err := trim.Normalize(trims, framesFlag)
			if err != nil {
				return err
			}
			for _, ov := range overlaps {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: trim %d overlaps its predecessor\n", ov.Index)
			}

			rows := make([][]string, 0, len(norms))
			for i, n := range norms {
				r, err := table.Range(n.Start, n.End)
				if err != nil {
					return err
				}
				startTS, endTS, err := timecode.FormatRange(r, precisionFlag)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					trims[i].String(),
					fmt.Sprintf("[%d:%d)", n.Start, n.End),
					startTS,
					endTS,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Trim", "Frames", "Start", "End"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&trimFlags, "trim", nil, "Frame range START:END; repeatable, either side may be omitted")
	cmd.Flags().IntVar(&framesFlag, "frames", 0, "Clip frame count")
	cmd.Flags().StringVar(&fpsFlag, "fps", "", "Frame rate as N or N/D")
	cmd.Flags().StringVar(&timecodesFlag, "timecodes", "", "v2 timecode file with per-frame millisecond offsets")
	cmd.Flags().IntVar(&precisionFlag, "precision", 3, "Timestamp precision in fractional digits (0, 3, 6, or 9)")

	return cmd
}
