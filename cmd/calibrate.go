package cmd

import (
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pagecap/pagecap/internal/capture"
	"github.com/pagecap/pagecap/internal/output"
	"github.com/pagecap/pagecap/internal/platform"
)

// Repeated presses while the key is held collapse into one mark.
const markDebounce = 500 * time.Millisecond

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Record the next-page control's position",
	Long: `Record where the viewer's next-page control sits relative to the window.

Interactive mode (default): hover the pointer over the control and press the
mark key. The offset is printed in a form pasteable into 'run --offset'.

Grid mode (--grid): instead of marking interactively, write an annotated
screenshot of the viewer window with a coordinate grid in window-relative
pixels; read the control's dx,dy off the image.

Examples:
  pagecap calibrate
  pagecap calibrate --window "Bookshelf"
  pagecap calibrate --grid --grid-out grid.png`,
	RunE: runCalibrate,
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
	calibrateCmd.Flags().String("window", "", "Viewer window title substring")
	calibrateCmd.Flags().StringArray("alt", nil, "Additional title substrings to try, in order")
	calibrateCmd.Flags().Bool("grid", false, "Write a coordinate-grid screenshot instead of marking interactively")
	calibrateCmd.Flags().Int("grid-step", 100, "Grid spacing in pixels")
	calibrateCmd.Flags().String("grid-out", "calibration_grid.png", "Path for the grid screenshot")
}

// bindMarkKey installs the mark-key handler. Each debounced press
// resolves at most one pending mark; extra presses are dropped.
func bindMarkKey(hk platform.Hotkeys, mark chan<- struct{}) {
	var last time.Time
	hk.Bind(markKey, func() {
		if time.Since(last) < markDebounce {
			return
		}
		last = time.Now()
		select {
		case mark <- struct{}{}:
		default:
		}
	})
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	titles := titlesFromFlags(cmd)

	if grid, _ := cmd.Flags().GetBool("grid"); grid {
		return runCalibrateGrid(cmd, provider, titles)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	mark := make(chan struct{}, 1)
	bindMarkKey(provider.Hotkeys, mark)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return provider.Hotkeys.Run() })

	fmt.Fprintf(os.Stderr, "Hover the pointer over the next-page control and press '%s'...\n", markKey)
	cal := &capture.Calibrator{Finder: provider.Finder, Inputter: provider.Inputter}
	off, err := cal.Calibrate(gctx, titles, mark)
	provider.Hotkeys.Close()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		return err
	}

	w, ok := provider.Finder.FindWindow(titles)
	if !ok {
		return capture.ErrWindowNotFound
	}
	return output.Print(output.CalibrateResult{
		Window: w.Title,
		PID:    w.PID,
		DX:     off.DX,
		DY:     off.DY,
		Offset: off.String(),
	})
}

// runCalibrateGrid captures the viewer window and writes it back out
// with a window-relative coordinate grid drawn on top.
func runCalibrateGrid(cmd *cobra.Command, provider *platform.Provider, titles []string) error {
	w, ok := provider.Finder.FindWindow(titles)
	if !ok {
		return capture.ErrWindowNotFound
	}

	img, err := provider.Screenshotter.CaptureRect(platform.Bounds{
		X: w.X(), Y: w.Y(), Width: w.Width(), Height: w.Height(),
	})
	if err != nil {
		return fmt.Errorf("capture window %q: %w", w.Title, err)
	}

	step, _ := cmd.Flags().GetInt("grid-step")
	if step < 10 {
		step = 10
	}
	annotated := DrawCoordinateGrid(img, step)

	path, _ := cmd.Flags().GetString("grid-out")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, annotated); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Grid screenshot written to %s. Read the control's dx,dy off the labels\nand pass it to 'run --offset dx,dy'.\n", path)
	return output.Print(output.CalibrateResult{
		Window: w.Title,
		PID:    w.PID,
		Offset: "see " + path,
	})
}
