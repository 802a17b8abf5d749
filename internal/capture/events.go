package capture

import "time"

// State identifies where the capture loop is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateLocating
	StateWarmingUp
	StateCapturing
	StatePaused
	StateStopping
	StateAssembling
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocating:
		return "locating"
	case StateWarmingUp:
		return "warming-up"
	case StateCapturing:
		return "capturing"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	case StateAssembling:
		return "assembling"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// IndeterminateProgress is the percent value emitted for unbounded runs.
const IndeterminateProgress = -1

// EventKind discriminates loop events.
type EventKind int

const (
	EventLog EventKind = iota
	EventProgress
	EventState
)

// Event is a one-way, by-value notification from the capture goroutine
// to the presentation side. The loop never blocks on a slow consumer;
// events may be dropped under backpressure.
type Event struct {
	Kind    EventKind
	Message string // EventLog
	Percent int    // EventProgress; IndeterminateProgress for unbounded runs
	State   State  // EventState
}

// Status is a by-value snapshot of run progress.
type Status struct {
	State    string        `yaml:"state"              json:"state"`
	Page     int           `yaml:"page"               json:"page"`
	Captured int           `yaml:"captured"           json:"captured"`
	Target   int           `yaml:"target,omitempty"   json:"target,omitempty"`
	Rate     float64       `yaml:"rate"               json:"rate"` // pages per second
	Percent  int           `yaml:"percent,omitempty"  json:"percent,omitempty"`
	Elapsed  time.Duration `yaml:"-"                  json:"-"`
	ETA      time.Duration `yaml:"-"                  json:"-"`
}

// Result summarizes a finished run.
type Result struct {
	Reason         string `yaml:"reason"          json:"reason"` // completed, stopped, window-lost
	PagesAssembled int    `yaml:"pages_assembled" json:"pages_assembled"`
	OutputPath     string `yaml:"output,omitempty" json:"output,omitempty"`
	FramesKept     bool   `yaml:"frames_kept"     json:"frames_kept"`
}

const (
	ReasonCompleted  = "completed"
	ReasonStopped    = "stopped"
	ReasonWindowLost = "window-lost"
)
