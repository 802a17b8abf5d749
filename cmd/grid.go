package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawCoordinateGrid overlays a labeled coordinate grid on a window
// capture. Lines run every step pixels; each intersection is labeled
// with its window-relative "(dx,dy)", the same frame of reference the
// advance offset uses.
func DrawCoordinateGrid(img image.Image, step int) *image.RGBA {
	rgba := imageToRGBA(img)
	bounds := rgba.Bounds()

	lineColor := color.RGBA{R: 255, G: 0, B: 0, A: 120}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	for x := bounds.Min.X; x < bounds.Max.X; x += step {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			rgba.Set(x, y, lineColor)
		}
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, lineColor)
		}
	}

	for x := bounds.Min.X; x < bounds.Max.X; x += step {
		for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
			label := fmt.Sprintf("(%d,%d)", x-bounds.Min.X, y-bounds.Min.Y)
			drawTextWithOutline(rgba, label, x+4, y+14, textColor, outlineColor)
		}
	}

	return rgba
}

// imageToRGBA converts any image to RGBA for drawing.
func imageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawTextWithOutline draws text with a one-pixel outline for visibility
// on both light and dark page backgrounds.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot: fixed.Point26_6{
					X: fixed.Int26_6((x + dx) * 64),
					Y: fixed.Int26_6((y + dy) * 64),
				},
			}
			d.DrawString(text)
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(text)
}
