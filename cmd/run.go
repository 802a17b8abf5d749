package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pagecap/pagecap/internal/assemble"
	"github.com/pagecap/pagecap/internal/capture"
	"github.com/pagecap/pagecap/internal/output"
	"github.com/pagecap/pagecap/internal/platform"
)

const (
	stopKey  = "f10"
	pauseKey = "f9"
	quitKey  = "q"
	markKey  = "n"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Capture pages from the viewer and assemble a PDF",
	Long: `Locate the viewer window, screenshot each page, click the next-page control,
and assemble the captured frames into a PDF.

The advance control must be calibrated: pass a previously recorded offset with
--offset dx,dy, or use --calibrate to record one interactively before capture
starts. During capture, F10 stops, F9 toggles pause, and holding 'q' also stops.

Examples:
  pagecap run --pages 250 --calibrate
  pagecap run --offset 850,600 --pages 120 --output book.pdf
  pagecap run --offset 850,600 --no-crop --keep-frames`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("pages", 0, "Number of pages to capture (0 = until stopped)")
	runCmd.Flags().Int("delay", 500, "Delay between pages in milliseconds (min 100)")
	runCmd.Flags().Int("warmup", 3000, "Warm-up before the first capture in milliseconds")
	runCmd.Flags().String("window", "", "Viewer window title substring")
	runCmd.Flags().StringArray("alt", nil, "Additional title substrings to try, in order")
	runCmd.Flags().String("offset", "", "Advance control offset as dx,dy relative to the window top-left")
	runCmd.Flags().Bool("calibrate", false, "Record the advance offset interactively before capture")
	runCmd.Flags().String("workdir", "", "Directory for per-page frame files")
	runCmd.Flags().String("output", "", "Output PDF path")
	runCmd.Flags().String("crop", "", "Chrome trim as left,top,right,bottom pixels")
	runCmd.Flags().Bool("no-crop", false, "Keep the full window in each frame")
	runCmd.Flags().Bool("keep-frames", false, "Keep frame files after a completed run")
}

func runRun(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	cfg, err := captureConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	calibrate, _ := cmd.Flags().GetBool("calibrate")
	if cfg.Offset == nil && !calibrate {
		return fmt.Errorf("advance control not calibrated: pass --offset dx,dy or --calibrate")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	runner := capture.NewRunner(cfg, capture.Deps{
		Finder:  provider.Finder,
		Windows: provider.WindowManager,
		Screens: provider.Screenshotter,
		Input:   provider.Inputter,
		Assemble: func(frames []string, out string) (int, error) {
			n, err := assemble.Document(frames, out, cfg.MinBytes)
			return n, err
		},
		StopKeyHeld: func() bool { return provider.Hotkeys.KeyHeld(quitKey) },
	})

	// All bindings go in before the pump starts. The quit key has no
	// handler; it is bound so its held state is tracked for the polled
	// stop path.
	provider.Hotkeys.Bind(quitKey, nil)
	provider.Hotkeys.Bind(stopKey, func() {
		fmt.Fprintln(os.Stderr, "F10 pressed. Stopping after the current page...")
		runner.Stop()
	})
	provider.Hotkeys.Bind(pauseKey, func() {
		if runner.TogglePause() {
			fmt.Fprintln(os.Stderr, "Paused. Press F9 to resume.")
		} else {
			fmt.Fprintln(os.Stderr, "Resumed.")
		}
	})
	var mark chan struct{}
	if calibrate {
		mark = make(chan struct{}, 1)
		bindMarkKey(provider.Hotkeys, mark)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return provider.Hotkeys.Run() })

	if calibrate {
		fmt.Fprintf(os.Stderr, "Hover the pointer over the next-page control and press '%s'...\n", markKey)
		cal := &capture.Calibrator{Finder: provider.Finder, Inputter: provider.Inputter}
		off, err := cal.Calibrate(gctx, cfg.Titles, mark)
		if err != nil {
			provider.Hotkeys.Close()
			g.Wait()
			return err
		}
		cfg.Offset = &off
		fmt.Fprintf(os.Stderr, "Calibrated: offset %s (reusable via --offset %s)\n", off, off)
	}

	var result *capture.Result
	g.Go(func() error {
		defer provider.Hotkeys.Close()
		r, err := runner.Run(gctx)
		result = r
		return err
	})

	presentEvents(runner.Events(), cfg.PageTarget)

	if err := g.Wait(); err != nil {
		return err
	}
	return output.Print(result)
}

// presentEvents renders loop events on stderr: log lines as-is, progress
// as a bar for bounded runs. It returns when the run closes its channel.
func presentEvents(events <-chan capture.Event, target int) {
	var bar *progressbar.ProgressBar
	if target > 0 {
		bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("capturing"),
			progressbar.OptionClearOnFinish(),
		)
	}
	for ev := range events {
		switch ev.Kind {
		case capture.EventLog:
			if bar != nil {
				bar.Clear()
			}
			fmt.Fprintln(os.Stderr, ev.Message)
		case capture.EventProgress:
			if bar != nil && ev.Percent >= 0 {
				bar.Set(ev.Percent)
			}
		}
	}
	if bar != nil {
		bar.Finish()
	}
}
