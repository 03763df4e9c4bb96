//go:build ebiten

package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"firespread/internal/app"
	_ "firespread/internal/fire"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "firespread-view"})

	cfg := app.NewConfig()
	cfg.Bind(pflag.CommandLine)
	pflag.Parse()

	sim, err := cfg.NewSim()
	if err != nil {
		logger.Fatal("cannot start", "err", err)
	}

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("firespread: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("window closed", "err", err)
	}
}
