package capture

import (
	"testing"

	"github.com/pagecap/pagecap/internal/model"
)

func TestClickPointTracksWindow(t *testing.T) {
	off := Offset{DX: 850, DY: 600}

	x, y := off.ClickPoint([4]int{0, 0, 1200, 800})
	if x != 850 || y != 600 {
		t.Errorf("at origin: got %d,%d, want 850,600", x, y)
	}

	// Moving the window moves the click point by exactly the same
	// delta; the offset itself never changes.
	x, y = off.ClickPoint([4]int{300, 150, 1200, 800})
	if x != 1150 || y != 750 {
		t.Errorf("moved window: got %d,%d, want 1150,750", x, y)
	}
}

func TestOffsetFromPointer(t *testing.T) {
	w := &model.Window{Title: "Bookshelf", Bounds: [4]int{100, 50, 1200, 800}}
	off := OffsetFromPointer(950, 650, w)
	if off.DX != 850 || off.DY != 600 {
		t.Errorf("got %+v, want {850 600}", off)
	}

	// Round trip: applying the offset against the same window lands on
	// the original pointer position.
	x, y := off.ClickPoint(w.Bounds)
	if x != 950 || y != 650 {
		t.Errorf("round trip: got %d,%d, want 950,650", x, y)
	}
}

func TestOffsetString(t *testing.T) {
	if got := (Offset{DX: 850, DY: 600}).String(); got != "850,600" {
		t.Errorf("got %q, want %q", got, "850,600")
	}
}
