package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagecap/pagecap/internal/capture"
	"github.com/pagecap/pagecap/internal/platform"
)

// titlesFromFlags builds the ordered title list from --window and --alt.
// With no flags set, the stock viewer titles are used.
func titlesFromFlags(cmd *cobra.Command) []string {
	window, _ := cmd.Flags().GetString("window")
	alts, _ := cmd.Flags().GetStringArray("alt")

	if window == "" && len(alts) == 0 {
		return capture.DefaultTitles()
	}
	var titles []string
	if window != "" {
		titles = append(titles, window)
	}
	return append(titles, alts...)
}

// cropFromFlags resolves the crop policy: --no-crop disables trimming,
// --crop overrides the stock insets.
func cropFromFlags(cmd *cobra.Command) (*platform.Insets, error) {
	if noCrop, _ := cmd.Flags().GetBool("no-crop"); noCrop {
		return nil, nil
	}
	spec, _ := cmd.Flags().GetString("crop")
	if spec == "" {
		in := capture.DefaultInsets()
		return &in, nil
	}
	in, err := platform.ParseInsets(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid --crop: %w", err)
	}
	return &in, nil
}

// captureConfigFromFlags builds a run Config from the run command's
// flags. The offset is left nil; callers resolve it from --offset or
// interactive calibration.
func captureConfigFromFlags(cmd *cobra.Command) (*capture.Config, error) {
	cfg := capture.NewConfig()
	cfg.Titles = titlesFromFlags(cmd)

	pages, _ := cmd.Flags().GetInt("pages")
	cfg.PageTarget = pages

	delayMs, _ := cmd.Flags().GetInt("delay")
	cfg.Delay = time.Duration(delayMs) * time.Millisecond
	if cfg.Delay < capture.MinDelay {
		cfg.Delay = capture.MinDelay
	}

	warmupMs, _ := cmd.Flags().GetInt("warmup")
	if cmd.Flags().Changed("warmup") {
		cfg.Warmup = time.Duration(warmupMs) * time.Millisecond
	}

	if workdir, _ := cmd.Flags().GetString("workdir"); workdir != "" {
		cfg.WorkDir = workdir
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputPath = out
	}
	keep, _ := cmd.Flags().GetBool("keep-frames")
	cfg.KeepFrames = keep

	crop, err := cropFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg.Crop = crop

	if spec, _ := cmd.Flags().GetString("offset"); spec != "" {
		dx, dy, err := platform.ParseOffset(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid --offset: %w", err)
		}
		cfg.Offset = &capture.Offset{DX: dx, DY: dy}
	}

	return cfg, nil
}
