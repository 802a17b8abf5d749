package desktop

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/pagecap/pagecap/internal/platform"
)

// Screenshotter implements platform.Screenshotter on top of the
// cross-platform screenshot library.
type Screenshotter struct{}

// NewScreenshotter creates a screen grabber.
func NewScreenshotter() *Screenshotter {
	return &Screenshotter{}
}

// CaptureRect grabs the screen rectangle exactly covering bounds.
func (s *Screenshotter) CaptureRect(bounds platform.Bounds) (image.Image, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, fmt.Errorf("degenerate capture bounds %+v", bounds)
	}
	img, err := screenshot.CaptureRect(bounds.Rect())
	if err != nil {
		return nil, fmt.Errorf("screen grab failed: %w", err)
	}
	return img, nil
}
