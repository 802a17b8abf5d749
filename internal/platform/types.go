package platform

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Bounds represents a screen rectangle.
type Bounds struct {
	X, Y, Width, Height int
}

// Rect converts b to an image.Rectangle.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Insets describes fixed pixel margins trimmed from a captured window
// to exclude viewer chrome (side panel, toolbars).
type Insets struct {
	Left, Top, Right, Bottom int
}

// ParseInsets parses a "left,top,right,bottom" string into Insets.
func ParseInsets(s string) (Insets, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Insets{}, fmt.Errorf("invalid insets %q: expected left,top,right,bottom", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Insets{}, fmt.Errorf("invalid insets %q: %w", s, err)
		}
		if v < 0 {
			return Insets{}, fmt.Errorf("invalid insets %q: negative value", s)
		}
		vals[i] = v
	}
	return Insets{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, nil
}

// ParseOffset parses a "dx,dy" string into a pair of offsets.
func ParseOffset(s string) (dx, dy int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid offset %q: expected dx,dy", s)
	}
	dx, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	dy, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return dx, dy, nil
}
