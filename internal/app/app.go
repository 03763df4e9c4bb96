//go:build ebiten

package app

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"firespread/internal/core"
	"firespread/internal/render"
	"firespread/internal/ui"
)

const (
	minRate = 1
	maxRate = 120
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep

	scale    int
	rate     int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		timer:   core.NewFixedStep(cfg.Rate),
		scale:   cfg.Scale,
		rate:    cfg.Rate,
		seed:    cfg.Seed,
	}
}

// Reset starts a new run with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles input and advances the simulation at the configured rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.setRate(g.rate * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.setRate(g.rate / 2)
	}

	if g.overlay != nil {
		g.overlay.Update()
	}

	if (!g.paused && g.timer.ShouldStep()) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	g.hud.Update()
	return nil
}

func (g *Game) setRate(rate int) {
	g.rate = min(max(rate, minRate), maxRate)
	g.timer.SetRate(g.rate)
}

// Draw renders the grid, the overlay and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
