package cmd

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawCoordinateGrid(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			src.Set(x, y, color.RGBA{R: 10, G: 10, B: 10, A: 255})
		}
	}

	out := DrawCoordinateGrid(src, 100)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: got %v, want %v", out.Bounds(), src.Bounds())
	}

	line := color.RGBA{R: 255, G: 0, B: 0, A: 120}
	// Grid line pixels well away from any intersection label.
	if got := out.RGBAAt(100, 50); got != line {
		t.Errorf("vertical line pixel: got %v, want %v", got, line)
	}
	if got := out.RGBAAt(170, 100); got != line {
		t.Errorf("horizontal line pixel: got %v, want %v", got, line)
	}
	// An off-grid pixel keeps the source color.
	want := color.RGBA{R: 10, G: 10, B: 10, A: 255}
	if got := out.RGBAAt(50, 50); got != want {
		t.Errorf("off-grid pixel: got %v, want %v", got, want)
	}
}

func TestDrawCoordinateGridSmallImage(t *testing.T) {
	// Image smaller than one grid cell still gets its origin lines.
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	out := DrawCoordinateGrid(src, 100)
	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: got %v", out.Bounds())
	}
}
