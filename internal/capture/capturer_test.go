package capture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagecap/pagecap/internal/model"
	"github.com/pagecap/pagecap/internal/platform"
)

type stubGrabber struct {
	img   image.Image
	err   error
	calls []platform.Bounds
}

func (s *stubGrabber) CaptureRect(b platform.Bounds) (image.Image, error) {
	s.calls = append(s.calls, b)
	return s.img, s.err
}

func noisyImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*29 + y*53) % 251)
			img.Set(x, y, color.RGBA{R: v, G: v ^ 0x33, B: v ^ 0xcc, A: 255})
		}
	}
	return img
}

func decodeDims(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height
}

func TestCaptureCropsChrome(t *testing.T) {
	grabber := &stubGrabber{img: noisyImage(400, 300)}
	c := &Capturer{
		Grabber: grabber,
		Crop:    &platform.Insets{Left: 20, Top: 30, Right: 40, Bottom: 50},
	}
	w := &model.Window{Title: "Bookshelf", Bounds: [4]int{10, 20, 400, 300}}
	path := filepath.Join(t.TempDir(), "page_0001.png")

	if err := c.Capture(w, path); err != nil {
		t.Fatal(err)
	}

	if len(grabber.calls) != 1 {
		t.Fatalf("grab calls: got %d, want 1", len(grabber.calls))
	}
	want := platform.Bounds{X: 10, Y: 20, Width: 400, Height: 300}
	if grabber.calls[0] != want {
		t.Errorf("grabbed bounds: got %+v, want %+v", grabber.calls[0], want)
	}

	gw, gh := decodeDims(t, path)
	if gw != 340 || gh != 220 {
		t.Errorf("cropped dims: got %dx%d, want 340x220", gw, gh)
	}
}

func TestCaptureSkipsDegenerateCrop(t *testing.T) {
	// Window smaller than the insets: the crop would be empty, so the
	// frame keeps the full window.
	grabber := &stubGrabber{img: noisyImage(200, 100)}
	c := &Capturer{
		Grabber: grabber,
		Crop:    &platform.Insets{Left: 280, Top: 80, Right: 50, Bottom: 50},
	}
	w := &model.Window{Title: "Bookshelf", Bounds: [4]int{0, 0, 200, 100}}
	path := filepath.Join(t.TempDir(), "page_0001.png")

	if err := c.Capture(w, path); err != nil {
		t.Fatal(err)
	}
	gw, gh := decodeDims(t, path)
	if gw != 200 || gh != 100 {
		t.Errorf("dims: got %dx%d, want uncropped 200x100", gw, gh)
	}
}

func TestCaptureNoCrop(t *testing.T) {
	grabber := &stubGrabber{img: noisyImage(300, 200)}
	c := &Capturer{Grabber: grabber}
	w := &model.Window{Title: "Bookshelf", Bounds: [4]int{0, 0, 300, 200}}
	path := filepath.Join(t.TempDir(), "page_0001.png")

	if err := c.Capture(w, path); err != nil {
		t.Fatal(err)
	}
	gw, gh := decodeDims(t, path)
	if gw != 300 || gh != 200 {
		t.Errorf("dims: got %dx%d, want 300x200", gw, gh)
	}
}

func TestCaptureGrabError(t *testing.T) {
	grabber := &stubGrabber{err: errors.New("display gone")}
	c := &Capturer{Grabber: grabber}
	w := &model.Window{Title: "Bookshelf", Bounds: [4]int{0, 0, 300, 200}}
	path := filepath.Join(t.TempDir(), "page_0001.png")

	if err := c.Capture(w, path); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("frame file created despite capture failure")
	}
}
