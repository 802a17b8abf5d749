package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pagecap/pagecap/internal/model"
	"github.com/pagecap/pagecap/internal/platform"
)

// ErrNotCalibrated is the fatal precondition for starting a run: the
// advance-control offset has not been recorded.
var ErrNotCalibrated = errors.New("advance control not calibrated")

// ErrViewerNotFound is returned when the viewer window cannot be
// located at run start. It ends the run but not the process; frames
// from earlier run segments stay on disk.
var ErrViewerNotFound = errors.New("viewer window not found")

// AssembleFunc builds the final document from frame files and returns
// the number of pages written.
type AssembleFunc func(frames []string, outPath string) (int, error)

// Deps are the collaborators a Runner drives. All of them are narrow
// interfaces so tests can substitute fakes.
type Deps struct {
	Finder   platform.WindowFinder
	Windows  platform.WindowManager
	Screens  platform.Screenshotter
	Input    platform.Inputter
	Assemble AssembleFunc

	// StopKeyHeld is the polled fallback stop path; may be nil.
	StopKeyHeld func() bool
}

// Runner drives one capture run through its full state machine:
//
//	Idle → Locating → WarmingUp → Capturing ⇄ Paused → Stopping → Assembling → Done
//
// Stop and pause arrive asynchronously via flags; the loop checks them
// once per iteration and once during the warm-up wait, so cancellation
// latency is bounded by one inter-page delay plus the warm-up.
type Runner struct {
	cfg      *Config
	deps     Deps
	store    *Store
	capturer *Capturer

	stop  atomic.Bool
	pause atomic.Bool

	mu     sync.Mutex
	status Status

	events chan Event
}

// NewRunner builds a Runner for one run over cfg. The Config is treated
// as immutable for the duration of the run.
func NewRunner(cfg *Config, deps Deps) *Runner {
	r := &Runner{
		cfg:      cfg,
		deps:     deps,
		store:    NewStore(cfg.WorkDir, cfg.MinBytes),
		capturer: &Capturer{Grabber: deps.Screens, Crop: cfg.Crop},
		events:   make(chan Event, 256),
	}
	r.status.State = StateIdle.String()
	return r
}

// Events returns the channel of log/progress/state events. It is
// closed when the run finishes.
func (r *Runner) Events() <-chan Event { return r.events }

// Stop requests a cooperative stop. Safe from any goroutine.
func (r *Runner) Stop() { r.stop.Store(true) }

// TogglePause flips the pause flag and returns the new value.
func (r *Runner) TogglePause() bool {
	paused := !r.pause.Load()
	r.pause.Store(paused)
	return paused
}

// Paused reports the pause flag.
func (r *Runner) Paused() bool { return r.pause.Load() }

// Status returns a by-value snapshot of run progress.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Store exposes the frame store, e.g. for post-run inspection.
func (r *Runner) Store() *Store { return r.store }

// Run executes the whole state machine. It returns an error only for
// the two terminal failures that prevent a run from producing anything
// (missing calibration, viewer never found); every later failure
// degrades to a partial, still-assemblable result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	defer close(r.events)

	if r.cfg.Offset == nil {
		r.log("ERROR: advance control location not set. Calibrate first.")
		return nil, ErrNotCalibrated
	}
	if err := r.cfg.Validate(); err != nil {
		r.log("ERROR: " + err.Error())
		return nil, err
	}
	if err := r.store.Ensure(); err != nil {
		r.log("ERROR: " + err.Error())
		return nil, err
	}

	r.setState(StateLocating)

	resume, err := r.store.ResumePage()
	if err != nil {
		r.log("ERROR: scanning existing frames: " + err.Error())
		return nil, err
	}
	if resume > 0 {
		r.logf("Found %d existing pages. Resuming from page %d.", resume, resume+1)
	}

	r.logf("Looking for viewer window (%s)...", r.cfg.Titles[0])
	window, ok := r.deps.Finder.FindWindow(r.cfg.Titles)
	if !ok {
		r.log("ERROR: viewer window not found. Open the viewer and the document first.")
		r.setState(StateDone)
		return nil, ErrViewerNotFound
	}
	r.logf("Found window: %s", window.Title)

	if err := r.deps.Windows.Focus(window); err != nil {
		r.log("Could not bring window to front. Make sure it stays visible.")
	}

	r.setState(StateWarmingUp)
	if r.cfg.Warmup > 0 {
		r.logf("Starting capture in %s...", r.cfg.Warmup)
	}
	if r.wait(ctx, r.cfg.Warmup) {
		return r.finish(ReasonStopped)
	}

	r.setState(StateCapturing)
	start := time.Now()
	page := resume
	captured := 0
	reason := ReasonStopped

loop:
	for {
		if r.stopped(ctx) {
			break
		}
		if r.pause.Load() {
			r.setState(StatePaused)
			for r.pause.Load() {
				if r.wait(ctx, r.cfg.PausePoll) || r.stopped(ctx) {
					break loop
				}
			}
			r.setState(StateCapturing)
			continue
		}

		page++
		if r.cfg.PageTarget > 0 && page > r.cfg.PageTarget {
			reason = ReasonCompleted
			break
		}

		// Geometry may have changed since the last iteration; the
		// handle is a snapshot, never a cached reference, and both the
		// capture and the advance click depend on it.
		current, ok := r.deps.Finder.FindWindow(r.cfg.Titles)
		if !ok {
			r.log("Window lost! Waiting...")
			if r.wait(ctx, r.cfg.LossWait) {
				break
			}
			current, ok = r.deps.Finder.FindWindow(r.cfg.Titles)
			if !ok {
				r.log("Window still not found. Stopping.")
				reason = ReasonWindowLost
				break
			}
		}
		window = current

		// A valid frame from a prior segment is never recaptured; the
		// viewer is still advanced so the run stays in step.
		if r.store.HasValidFrame(page) {
			r.advance(window)
			if r.wait(ctx, r.cfg.Delay) {
				break
			}
			continue
		}

		if err := r.capturer.Capture(window, r.store.FramePath(page)); err != nil {
			r.logf("Failed to capture page %d: %v", page, err)
		} else {
			captured++
			r.recordProgress(page, captured, time.Since(start))
		}

		r.advance(window)

		if r.wait(ctx, r.cfg.Delay) {
			break
		}
	}

	return r.finish(reason)
}

// finish runs Stopping → Assembling → Done.
func (r *Runner) finish(reason string) (*Result, error) {
	r.setState(StateStopping)
	if reason == ReasonStopped {
		r.log("Capture stopped.")
	}

	r.setState(StateAssembling)
	res := &Result{Reason: reason, FramesKept: true}

	frames, err := r.store.ValidFrames()
	if err != nil {
		r.log("ERROR: scanning frames for assembly: " + err.Error())
		r.setState(StateDone)
		return res, nil
	}
	if len(frames) == 0 {
		r.log("No valid frames captured; no document produced.")
		r.setState(StateDone)
		return res, nil
	}

	r.logf("Assembling %d pages into %s...", len(frames), r.cfg.OutputPath)
	pages, err := r.deps.Assemble(frames, r.cfg.OutputPath)
	if err != nil {
		r.log("ERROR: assembly failed: " + err.Error())
		r.setState(StateDone)
		return res, nil
	}
	res.PagesAssembled = pages
	res.OutputPath = r.cfg.OutputPath
	r.logf("Document created: %s (%d pages)", r.cfg.OutputPath, pages)

	// Frames are discarded only on clean completion of the page
	// target; a user stop or window loss preserves partial work for
	// inspection and resumption.
	if reason == ReasonCompleted && !r.cfg.KeepFrames {
		r.log("Cleaning up temp frames...")
		if err := r.store.RemoveAll(); err != nil {
			r.logf("Could not remove %s: %v", r.store.Dir(), err)
		} else {
			res.FramesKept = false
		}
	}

	r.emit(Event{Kind: EventProgress, Percent: 100})
	r.setState(StateDone)
	r.log("Done.")
	return res, nil
}

// advance clicks the calibrated offset against the window's current
// position. Skipped while paused or uncalibrated; a failed click is
// swallowed, since the next iteration simply sees the same page again.
func (r *Runner) advance(w *model.Window) bool {
	if r.pause.Load() || r.cfg.Offset == nil || w == nil {
		return false
	}
	x, y := r.cfg.Offset.ClickPoint(w.Bounds)
	if err := r.deps.Input.Click(x, y); err != nil {
		return false
	}
	return true
}

// stopped checks every stop path: the stop flag, context cancellation,
// and the polled fallback key.
func (r *Runner) stopped(ctx context.Context) bool {
	if r.deps.StopKeyHeld != nil && r.deps.StopKeyHeld() && !r.stop.Load() {
		r.log("Stop key detected!")
		r.stop.Store(true)
	}
	if ctx.Err() != nil {
		r.stop.Store(true)
	}
	return r.stop.Load()
}

// wait sleeps for d, checking the stop flag at a bounded interval.
// Returns true if a stop arrived during the wait.
func (r *Runner) wait(ctx context.Context, d time.Duration) bool {
	const step = 100 * time.Millisecond
	for d > 0 {
		if r.stopped(ctx) {
			return true
		}
		s := step
		if d < s {
			s = d
		}
		time.Sleep(s)
		d -= s
	}
	return r.stopped(ctx)
}

func (r *Runner) recordProgress(page, captured int, elapsed time.Duration) {
	rate := 0.0
	if elapsed > 0 {
		rate = float64(captured) / elapsed.Seconds()
	}

	st := Status{
		State:    StateCapturing.String(),
		Page:     page,
		Captured: captured,
		Target:   r.cfg.PageTarget,
		Rate:     rate,
		Elapsed:  elapsed,
		Percent:  IndeterminateProgress,
	}

	if r.cfg.PageTarget > 0 {
		st.Percent = page * 100 / r.cfg.PageTarget
		if rate > 0 {
			st.ETA = time.Duration(float64(r.cfg.PageTarget-page) / rate * float64(time.Second))
		}
		r.logf("Page %d/%d  (%.1f p/s, ~%s left)", page, r.cfg.PageTarget, rate, formatETA(st.ETA))
	} else {
		r.logf("Page %d captured  (%.1f p/s)", page, rate)
	}

	r.mu.Lock()
	r.status = st
	r.mu.Unlock()
	r.emit(Event{Kind: EventProgress, Percent: st.Percent})
}

func formatETA(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%02ds", m, s)
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	r.status.State = s.String()
	r.mu.Unlock()
	r.emit(Event{Kind: EventState, State: s})
}

func (r *Runner) log(msg string) {
	r.emit(Event{Kind: EventLog, Message: msg})
}

func (r *Runner) logf(format string, args ...interface{}) {
	r.log(fmt.Sprintf(format, args...))
}

// emit hands an event to the presentation side without ever blocking
// the capture thread; under backpressure events are dropped.
func (r *Runner) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}
