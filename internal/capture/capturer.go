package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/pagecap/pagecap/internal/model"
	"github.com/pagecap/pagecap/internal/platform"
)

// Capturer grabs a still image of the viewer window's content region
// and persists it as a frame file.
type Capturer struct {
	Grabber platform.Screenshotter
	Crop    *platform.Insets // nil = keep the full window
}

// Capture grabs the rectangle covering the window's current bounds,
// trims viewer chrome per the crop policy, and writes a PNG to path.
// The encoder runs at best compression, trading CPU for frame size.
func (c *Capturer) Capture(w *model.Window, path string) error {
	img, err := c.Grabber.CaptureRect(platform.Bounds{
		X:      w.X(),
		Y:      w.Y(),
		Width:  w.Width(),
		Height: w.Height(),
	})
	if err != nil {
		return fmt.Errorf("capture window %q: %w", w.Title, err)
	}

	img = cropInsets(img, c.Crop)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame %s: %w", path, err)
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode frame %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("write frame %s: %w", path, err)
	}
	return nil
}

// cropInsets trims fixed pixel margins from img. The crop is applied
// only when the trimmed rectangle stays well-formed; a window too small
// for the insets is kept uncropped rather than producing a degenerate
// frame.
func cropInsets(img image.Image, in *platform.Insets) image.Image {
	if in == nil {
		return img
	}
	b := img.Bounds()
	r := image.Rect(
		b.Min.X+in.Left,
		b.Min.Y+in.Top,
		b.Max.X-in.Right,
		b.Max.Y-in.Bottom,
	)
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return img
	}
	sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return img
	}
	return sub.SubImage(r)
}
