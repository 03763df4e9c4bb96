//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"firespread/internal/core"
)

type vegetationProvider interface {
	VegetationField() []float64
}

type windProvider interface {
	WindVector() (row, col, influence float64)
}

// Overlay draws optional visuals on top of the grid: the vegetation density
// (key 1) and the wind direction (key 2).
type Overlay struct {
	sim            core.Sim
	scale          int
	showVegetation bool
	showWind       bool
	maskImg        *ebiten.Image
	maskBuf        []byte
	pixel          *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showVegetation = !o.showVegetation
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showWind = !o.showWind
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showVegetation {
		if provider, ok := o.sim.(vegetationProvider); ok {
			o.drawMask(screen, provider.VegetationField(), size, scale, color.RGBA{R: 200, G: 230, B: 60})
		}
	}
	if o.showWind {
		if provider, ok := o.sim.(windProvider); ok {
			row, col, influence := provider.WindVector()
			o.drawWindArrow(screen, row, col, influence, size, scale)
		}
	}
}

// drawWindArrow draws one arrow from the grid centre. Grid rows grow
// downwards, so the row component maps to screen y.
func (o *Overlay) drawWindArrow(screen *ebiten.Image, row, col, influence float64, size core.Size, scale int) {
	mag := math.Hypot(row, col)
	if influence <= 0 || mag == 0 {
		return
	}
	const headAngle = math.Pi / 6

	nx, ny := col/mag, row/mag
	cx := float64(size.W*scale) / 2
	cy := float64(size.H*scale) / 2
	length := math.Min(cx, cy) * 0.6
	headLength := length * 0.25
	thickness := math.Max(2, float64(scale)*0.5)

	tipX, tipY := cx+nx*length/2, cy+ny*length/2
	tailX, tailY := cx-nx*length/2, cy-ny*length/2
	col0 := interpolateColor(influence / 0.5)

	o.drawLine(screen, tailX, tailY, tipX-nx*headLength*0.5, tipY-ny*headLength*0.5, thickness, col0)
	angle := math.Atan2(ny, nx)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness, col0)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness, col0)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.Scale(float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float64, size core.Size, scale int, tint color.RGBA) {
	total := size.W * size.H
	if len(mask) != total || total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	fillMaskRGBA(o.maskBuf, mask, tint)
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
