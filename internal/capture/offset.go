package capture

import (
	"fmt"

	"github.com/pagecap/pagecap/internal/model"
)

// Offset is the advance-control click point expressed relative to the
// viewer window's top-left corner. It is computed once per calibration
// and then only re-applied against the window's current position, so
// clicks track the window wherever it moves.
type Offset struct {
	DX int `yaml:"dx" json:"dx"`
	DY int `yaml:"dy" json:"dy"`
}

// ClickPoint returns the absolute screen coordinates of the advance
// control for a window currently at bounds.
func (o Offset) ClickPoint(bounds [4]int) (x, y int) {
	return bounds[0] + o.DX, bounds[1] + o.DY
}

// OffsetFromPointer derives the offset from an absolute pointer
// position and the window it was marked over.
func OffsetFromPointer(px, py int, w *model.Window) Offset {
	return Offset{DX: px - w.X(), DY: py - w.Y()}
}

func (o Offset) String() string {
	return fmt.Sprintf("%d,%d", o.DX, o.DY)
}
