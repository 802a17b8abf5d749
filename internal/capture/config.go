package capture

import (
	"fmt"
	"time"

	"github.com/pagecap/pagecap/internal/platform"
)

// Defaults tuned for the VitalSource Bookshelf desktop viewer; every
// one of them is overridable per run.
const (
	DefaultDelay     = 500 * time.Millisecond
	MinDelay         = 100 * time.Millisecond
	DefaultWarmup    = 3 * time.Second
	DefaultPausePoll = 500 * time.Millisecond
	DefaultLossWait  = 2 * time.Second

	// Frames smaller than this are treated as truncated captures.
	DefaultMinFrameBytes = 1000

	DefaultWorkDir = "temp_book_pages"
	DefaultOutput  = "converted_book.pdf"
)

// DefaultTitles are the window titles tried in order when locating the
// viewer.
func DefaultTitles() []string {
	return []string{"Bookshelf", "VitalSource", "Vitalsource Bookshelf"}
}

// DefaultInsets is the fixed chrome-trim policy for the default viewer
// layout: left sidebar, top bar, bottom bar, right margin.
func DefaultInsets() platform.Insets {
	return platform.Insets{Left: 280, Top: 80, Right: 50, Bottom: 50}
}

// Config is the explicit run configuration, constructed once per run
// and passed into the loop. Nothing in here is global or mutated after
// the run starts, except Offset which a calibration performed inside
// the same process may set before the run begins.
type Config struct {
	Titles     []string
	Offset     *Offset // nil = uncalibrated
	PageTarget int     // 0 = unbounded
	Delay      time.Duration
	Warmup     time.Duration
	PausePoll  time.Duration
	LossWait   time.Duration
	WorkDir    string
	OutputPath string
	Crop       *platform.Insets // nil = no cropping
	MinBytes   int64
	KeepFrames bool
}

// NewConfig returns a Config with all defaults applied.
func NewConfig() *Config {
	crop := DefaultInsets()
	return &Config{
		Titles:     DefaultTitles(),
		Delay:      DefaultDelay,
		Warmup:     DefaultWarmup,
		PausePoll:  DefaultPausePoll,
		LossWait:   DefaultLossWait,
		WorkDir:    DefaultWorkDir,
		OutputPath: DefaultOutput,
		Crop:       &crop,
		MinBytes:   DefaultMinFrameBytes,
	}
}

// Validate checks the per-run invariants that must hold before the
// loop starts. Calibration is checked separately by the loop because
// it may arrive between construction and start.
func (c *Config) Validate() error {
	if len(c.Titles) == 0 {
		return fmt.Errorf("no window titles configured")
	}
	if c.Delay < MinDelay {
		return fmt.Errorf("delay %s is below the minimum %s", c.Delay, MinDelay)
	}
	if c.PageTarget < 0 {
		return fmt.Errorf("page target must not be negative")
	}
	if c.WorkDir == "" {
		return fmt.Errorf("work directory not set")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path not set")
	}
	return nil
}
