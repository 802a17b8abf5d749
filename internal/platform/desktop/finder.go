package desktop

import (
	"fmt"
	"strings"

	"github.com/go-vgo/robotgo"

	"github.com/pagecap/pagecap/internal/model"
)

// Finder implements platform.WindowFinder using robotgo's process and
// window primitives.
type Finder struct{}

// NewFinder creates a window finder.
func NewFinder() *Finder {
	return &Finder{}
}

// ListWindows returns all processes that own a titled window with
// non-degenerate bounds.
func (f *Finder) ListWindows() ([]model.Window, error) {
	procs, err := robotgo.Process()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	var windows []model.Window
	for _, p := range procs {
		title := robotgo.GetTitle(p.Pid)
		if title == "" {
			continue
		}
		x, y, w, h := robotgo.GetBounds(p.Pid)
		if w <= 0 || h <= 0 {
			continue
		}
		windows = append(windows, model.Window{
			App:    p.Name,
			PID:    int(p.Pid),
			Title:  title,
			Bounds: [4]int{x, y, w, h},
		})
	}
	return windows, nil
}

// FindWindow returns the first window whose title contains any of the
// given titles, tried in order. Each title is matched case-insensitively
// as a substring, so "Bookshelf" matches "VitalSource Bookshelf - My Book".
func (f *Finder) FindWindow(titles []string) (*model.Window, bool) {
	windows, err := f.ListWindows()
	if err != nil {
		return nil, false
	}
	for _, title := range titles {
		needle := strings.ToLower(title)
		for i := range windows {
			if strings.Contains(strings.ToLower(windows[i].Title), needle) {
				return &windows[i], true
			}
		}
	}
	return nil, false
}

// Manager implements platform.WindowManager.
type Manager struct{}

// NewManager creates a window manager.
func NewManager() *Manager {
	return &Manager{}
}

// Focus activates the application owning the window. Geometry is not
// touched; callers re-locate the window after focusing.
func (m *Manager) Focus(w *model.Window) error {
	if err := robotgo.ActivePid(int(w.PID)); err != nil {
		return fmt.Errorf("failed to activate pid %d: %w", w.PID, err)
	}
	return nil
}
