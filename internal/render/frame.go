package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"firespread/internal/fire"
)

// LabelHeight is the height of the caption band above the grid.
const LabelHeight = 18

// FrameSize returns the pixel dimensions of a frame for a grid of side n.
func FrameSize(n, scale int) (w, h int) {
	return n * scale, n*scale + LabelHeight
}

// Frame draws g with every cell as a scale x scale block below a white band
// holding label. A scale below 1 is treated as 1.
func Frame(g *fire.Grid, scale int, label string) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	n := g.Size()
	w, h := FrameSize(n, scale)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, image.Rect(0, 0, w, LabelHeight), image.White, image.Point{}, draw.Src)

	cells := make([]uint8, n*n)
	g.CopyBytes(cells)
	px := make([]byte, n*n*4)
	FillRGBA(px, cells)

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			i := (row*n + col) * 4
			c := color.RGBA{R: px[i], G: px[i+1], B: px[i+2], A: px[i+3]}
			y0 := LabelHeight + row*scale
			x0 := col * scale
			draw.Draw(img, image.Rect(x0, y0, x0+scale, y0+scale), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	if label != "" {
		addLabel(img, 4, LabelHeight-5, label, color.Black)
	}
	return img
}

// IterationLabel is the caption used for animation frames. Iterations are
// shown one-based.
func IterationLabel(iteration int) string {
	return fmt.Sprintf("Iteration %d", iteration+1)
}

func addLabel(img *image.RGBA, x, y int, label string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}
