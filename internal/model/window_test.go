package model

import "testing"

func TestWindowAccessors(t *testing.T) {
	w := Window{App: "Bookshelf", PID: 42, Title: "Vitalsource Bookshelf", Bounds: [4]int{10, 20, 1200, 800}}
	if w.X() != 10 || w.Y() != 20 {
		t.Errorf("origin: got %d,%d, want 10,20", w.X(), w.Y())
	}
	if w.Width() != 1200 || w.Height() != 800 {
		t.Errorf("size: got %dx%d, want 1200x800", w.Width(), w.Height())
	}
}
