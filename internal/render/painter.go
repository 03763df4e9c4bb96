//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one ebiten image in sync with the cell states of a grid.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the cells using the state palette and draws them scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	FillRGBA(gp.buf, cells)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
