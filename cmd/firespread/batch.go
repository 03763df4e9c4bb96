package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"firespread/internal/batch"
	"firespread/internal/render"
	"firespread/internal/report"
	"firespread/internal/scenario"
)

func batchCmd(logger *log.Logger) *cobra.Command {
	var (
		preset       string
		trials       int
		workers      int
		seed         int64
		dir          string
		captureEvery int
		video        bool
	)

	cmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "Compare parameter sets over many trials and write charts and a summary",
		Long: "Runs every parameter set of a scenario file (or a built-in preset) for the\n" +
			"configured number of trials, then writes one averaged evolution chart per set,\n" +
			"a comparison of spread rate and extinction time, a summary table and a manifest.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				f   *scenario.File
				err error
			)
			if len(args) == 1 {
				f, err = scenario.Load(args[0])
			} else {
				f, err = scenario.Preset(preset)
			}
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("trials") {
				f.Trials = trials
			}
			if flags.Changed("workers") {
				f.Workers = workers
			}
			if flags.Changed("seed") {
				f.Seed = seed
			}
			if flags.Changed("out") {
				f.Output.Dir = dir
			}
			if flags.Changed("capture-every") {
				f.Output.CaptureEvery = captureEvery
			}
			if flags.Changed("video") {
				f.Output.Video = video
			}
			if err := f.Validate(); err != nil {
				return err
			}
			return runBatch(cmd.Context(), logger, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "sir", fmt.Sprintf("built-in scenario when no file is given %v", scenario.PresetNames()))
	cmd.Flags().IntVarP(&trials, "trials", "k", 0, "trials per parameter set")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent trials (0 = GOMAXPROCS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "root seed of the trial streams")
	cmd.Flags().StringVarP(&dir, "out", "o", "", "output directory")
	cmd.Flags().IntVar(&captureEvery, "capture-every", 0, "write a PNG of the first trial every N iterations")
	cmd.Flags().BoolVar(&video, "video", false, "write the first trial of each set as an MJPEG AVI")
	return cmd
}

func runBatch(ctx context.Context, logger *log.Logger, f *scenario.File, w io.Writer) error {
	specs, err := f.Specs()
	if err != nil {
		return err
	}
	opts := f.Options()
	opts.Logger = logger

	results, err := batch.Compare(ctx, specs, opts)
	if err != nil {
		return err
	}

	dir := f.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	manifest := report.NewManifest(f, time.Now())

	for _, res := range results {
		name := report.EvolutionFileName(res.Spec.Label, res.Spec.Config.Params)
		files := []string{name}
		title := fmt.Sprintf("Fire evolution: %s (mean of %d trials)", res.Summary.Label, res.Summary.Trials)
		if err := writeFile(filepath.Join(dir, name), func(out *os.File) error {
			return report.EvolutionChart(out, title, res.Average)
		}); err != nil {
			return err
		}
		logger.Debug("chart written", "path", filepath.Join(dir, name))

		if f.Output.CaptureEvery > 0 || f.Output.Video {
			captured, err := captureFirstTrial(logger, f, res.Spec, opts, strings.TrimSuffix(strings.TrimPrefix(name, "evolution_"), ".png"))
			if err != nil {
				return err
			}
			files = append(files, captured...)
		}
		manifest.Add(res.Summary, files...)
	}

	rows := batch.Summaries(results)
	if err := writeFile(filepath.Join(dir, report.ComparisonFileName), func(out *os.File) error {
		return report.ComparisonChart(out, rows)
	}); err != nil {
		return err
	}

	var table bytes.Buffer
	if err := report.WriteSummary(&table, rows); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.txt"), table.Bytes(), 0o644); err != nil {
		return err
	}
	if err := manifest.Save(filepath.Join(dir, "manifest.yaml")); err != nil {
		return err
	}
	if _, err := w.Write(table.Bytes()); err != nil {
		return err
	}
	logger.Info("batch written", "dir", dir, "sets", len(results), "run", manifest.ID)
	return nil
}

// captureFirstTrial replays trial 0 of spec with frame capture attached and
// returns the written paths relative to the output directory.
func captureFirstTrial(logger *log.Logger, f *scenario.File, spec batch.Spec, opts batch.Options, prefix string) ([]string, error) {
	frames := filepath.Join(f.Output.Dir, "frames")
	capture, err := render.NewCapture(render.CaptureOptions{
		Dir:    frames,
		Prefix: prefix,
		Every:  f.Output.CaptureEvery,
		Video:  f.Output.Video,
		FPS:    f.Output.FPS,
		Scale:  f.Output.Scale,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	_, runErr := batch.Replay(spec, opts, 0, capture.Observe)
	if err := capture.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return nil, runErr
	}

	var files []string
	if f.Output.CaptureEvery > 0 {
		files = append(files, filepath.Join("frames", prefix+"_*.png"))
	}
	if f.Output.Video {
		rel, err := filepath.Rel(f.Output.Dir, capture.VideoPath())
		if err != nil {
			rel = capture.VideoPath()
		}
		files = append(files, rel)
	}
	return files, nil
}
