package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"audiocut/internal/clip"
	"audiocut/internal/cutter"
	"audiocut/internal/trim"
)

func newTrimCommand(ctx *commandContext) *cobra.Command {
	var trimFlags []string
	var outputFlags []string
	var streamFlags []int
	var framesFlag int
	var fpsFlag string
	var timecodesFlag string
	var splitFlag bool
	var precisionFlag int

	cmd := &cobra.Command{
		Use:   "trim <input>",
		Short: "Cut trimmed frame ranges out of a media file's audio",
		Long: `Trim extracts the audio covered by one or more frame ranges and writes
the result to a new container. Ranges use half-open START:END frame pairs;
either side may be omitted and negative values count back from the end of
the clip. Multiple --trim flags are concatenated in order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trims, err := parseTrims(trimFlags)
			if err != nil {
				return err
			}

			rate := clip.Rate{}
			if strings.TrimSpace(fpsFlag) != "" {
				rate, err = clip.ParseRate(fpsFlag)
				if err != nil {
					return err
				}
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if precisionFlag < 0 {
				precisionFlag = cfg.Output.Precision
			}
			if len(outputFlags) == 0 && cfg.Output.Template != "" {
				outputFlags = []string{cfg.Output.Template}
			}

			c, err := ctx.newCutter()
			if err != nil {
				return err
			}
			defer ctx.closeStore()

			req := cutter.Request{
				Input:        args[0],
				Trims:        trims,
				NumFrames:    framesFlag,
				Rate:         rate,
				TimecodeFile: timecodesFlag,
				Streams:      streamFlags,
				Outputs:      outputFlags,
				Split:        splitFlag,
				Precision:    precisionFlag,
			}
			if isatty.IsTerminal(os.Stderr.Fd()) {
				var bar *progressbar.ProgressBar
				req.Progress = func(done, total int) {
					if bar == nil {
						bar = progressbar.Default(int64(total), "building timecode table")
					}
					_ = bar.Set(done)
				}
			}

			result, err := c.Cut(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.NoOp {
				fmt.Fprintln(out, "Trims keep the whole clip; input returned unchanged:")
				fmt.Fprintf(out, "  %s\n", result.Outputs[0])
				return nil
			}
			fmt.Fprintf(out, "Cut %d range(s) into:\n", len(result.Ranges))
			for _, output := range result.Outputs {
				fmt.Fprintf(out, "  %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&trimFlags, "trim", nil, "Frame range START:END; repeatable, either side may be omitted")
	cmd.Flags().IntVar(&framesFlag, "frames", 0, "Clip frame count (default: probed from the input)")
	cmd.Flags().StringVar(&fpsFlag, "fps", "", "Frame rate as N or N/D; 0 marks a variable rate clip")
	cmd.Flags().StringVar(&timecodesFlag, "timecodes", "", "v2 timecode file with per-frame millisecond offsets")
	cmd.Flags().StringArrayVarP(&outputFlags, "output", "o", nil, "Output template; {source} and, with --split, {index} expand")
	cmd.Flags().BoolVar(&splitFlag, "split", false, "Write each selected stream to its own output file")
	cmd.Flags().IntSliceVar(&streamFlags, "stream", nil, "Zero-based audio stream selection; repeatable")
	cmd.Flags().IntVar(&precisionFlag, "precision", -1, "Timestamp precision in fractional digits (3, 6, or 9; 0 keeps nanoseconds)")

	return cmd
}

func parseTrims(specs []string) ([]trim.Trim, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --trim is required")
	}
	trims := make([]trim.Trim, 0, len(specs))
	for _, spec := range specs {
		t, err := trim.Parse(spec)
		if err != nil {
			return nil, err
		}
		trims = append(trims, t)
	}
	return trims, nil
}
