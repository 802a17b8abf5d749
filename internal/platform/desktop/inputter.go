package desktop

import (
	"github.com/go-vgo/robotgo"
)

// Inputter implements platform.Inputter using robotgo's CGEvent/XTest/
// SendInput backends.
type Inputter struct{}

// NewInputter creates a mouse inputter.
func NewInputter() *Inputter {
	return &Inputter{}
}

// Click moves the pointer to (x, y) and issues one left click there.
func (inp *Inputter) Click(x, y int) error {
	robotgo.MoveClick(x, y, "left")
	return nil
}

// PointerPosition returns the current pointer location.
func (inp *Inputter) PointerPosition() (int, int) {
	return robotgo.Location()
}
