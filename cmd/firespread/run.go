package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"firespread/internal/batch"
	"firespread/internal/core"
	"firespread/internal/fire"
	"firespread/internal/render"
	"firespread/internal/report"
)

type outputFlags struct {
	dir          string
	captureEvery int
	video        bool
	fps          int
	scale        int
}

func runCmd(logger *log.Logger) *cobra.Command {
	flags := newConfigFlags()
	out := outputFlags{fps: 10, scale: 8}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single simulation and print its history and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.Config()
			if err != nil {
				return err
			}
			return runSingle(cmd, logger, cfg, out)
		},
	}
	flags.Bind(cmd.Flags())
	cmd.Flags().StringVarP(&out.dir, "out", "o", "", "directory for the evolution chart and captured frames")
	cmd.Flags().IntVar(&out.captureEvery, "capture-every", 0, "write a PNG frame every N iterations (needs --out)")
	cmd.Flags().BoolVar(&out.video, "video", false, "write every frame to an MJPEG AVI (needs --out)")
	cmd.Flags().IntVar(&out.fps, "fps", out.fps, "video frame rate")
	cmd.Flags().IntVar(&out.scale, "scale", out.scale, "pixels per cell in frames")
	return cmd
}

func runSingle(cmd *cobra.Command, logger *log.Logger, cfg fire.Config, out outputFlags) error {
	warnWind(logger, cfg.Params)
	sim, err := cfg.NewSimulation(core.NewRNG(cfg.Seed))
	if err != nil {
		return err
	}

	var capture *render.Capture
	if out.dir != "" && (out.captureEvery > 0 || out.video) {
		capture, err = render.NewCapture(render.CaptureOptions{
			Dir:    out.dir,
			Prefix: "run",
			Every:  out.captureEvery,
			Video:  out.video,
			FPS:    out.fps,
			Scale:  out.scale,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		sim.Observe(capture.Observe)
	}

	rec, runErr := sim.Run(cfg.MaxIterations)
	if capture != nil {
		if err := capture.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s, %dx%d grid\n", cfg.Params.Label(), cfg.Size, cfg.Size)
	fmt.Fprintf(w, "%5s %7s %7s %7s\n", "iter", "empty", "burning", "burned")
	for i, c := range rec.Counts {
		fmt.Fprintf(w, "%5d %7d %7d %7d\n", i, c.Empty, c.Burning, c.Burned)
	}
	m := fire.Measure(rec)
	state := "reached the iteration cap"
	if rec.Extinct {
		state = "burned out"
	}
	fmt.Fprintf(w, "fire %s at iteration %d; spread rate %.2f, extinction time %d\n", state, rec.Stopped, m.SpreadRate, m.ExtinctionTime)

	if out.dir == "" {
		return nil
	}
	if err := os.MkdirAll(out.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(out.dir, report.EvolutionFileName("", cfg.Params))
	if err := writeFile(path, func(f *os.File) error {
		return report.EvolutionChart(f, "Fire evolution: "+cfg.Params.Label(), batch.FromRecord(rec))
	}); err != nil {
		return err
	}
	logger.Info("chart written", "path", path)
	return nil
}

func warnWind(logger *log.Logger, p fire.Params) {
	if p.UsesWind() && p.Wind.Influence > 0 && !p.Wind.Aligned() {
		logger.Warn("wind direction is not a unit neighbour offset; its influence never applies",
			"direction", p.Wind.Direction)
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
