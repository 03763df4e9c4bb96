//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"firespread/internal/core"
)

const (
	panelPadding = 10
	lineHeight   = 15
)

// HUD renders the status and parameter panel to the right of the grid.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []hudLine
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached lines from the simulation.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	var snap core.ParameterSnapshot
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		snap = provider.Parameters()
	}
	var status []core.Parameter
	if provider, ok := h.sim.(core.StatusProvider); ok {
		status = provider.Status()
	}
	h.lines = hudLines(h.sim.Name(), status, snap)
}

// Draw paints the panel at offsetX, spanning the grid height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + 10
	for _, line := range h.lines {
		if y > height-panelPadding {
			break
		}
		x := panelPadding
		switch line.kind {
		case lineHeader:
			y += 6
			text.Draw(h.panel, line.text, face, x, y, color.RGBA{R: 230, G: 140, B: 60, A: 255})
		case lineTitle:
			text.Draw(h.panel, line.text, face, x, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
		case lineHint:
			text.Draw(h.panel, line.text, face, x, y, color.RGBA{R: 140, G: 140, B: 150, A: 255})
		default:
			text.Draw(h.panel, line.text, face, x+4, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		}
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
