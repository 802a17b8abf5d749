package capture

import (
	"context"
	"errors"

	"github.com/pagecap/pagecap/internal/platform"
)

// ErrWindowNotFound is reported when the viewer window cannot be
// located at mark time; the offset is left unset and the caller may
// retry calibration.
var ErrWindowNotFound = errors.New("viewer window not found")

// Calibrator records where, relative to the viewer window, the advance
// control sits.
type Calibrator struct {
	Finder   platform.WindowFinder
	Inputter platform.Inputter
}

// Calibrate blocks until the mark channel fires (the single-shot event
// resolved by the mark-key handler), then reads the pointer position
// and the window's current location and returns pointer − top-left.
func (c *Calibrator) Calibrate(ctx context.Context, titles []string, mark <-chan struct{}) (Offset, error) {
	select {
	case <-ctx.Done():
		return Offset{}, ctx.Err()
	case <-mark:
	}

	px, py := c.Inputter.PointerPosition()
	w, ok := c.Finder.FindWindow(titles)
	if !ok {
		return Offset{}, ErrWindowNotFound
	}
	return OffsetFromPointer(px, py, w), nil
}
