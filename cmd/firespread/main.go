package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		logger.Error(err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "firespread",
		Short:         "Stochastic wildfire spread on a square grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every trial and written file")

	rootCmd.AddCommand(runCmd(logger))
	rootCmd.AddCommand(batchCmd(logger))
	rootCmd.AddCommand(sweepCmd(logger))
	rootCmd.AddCommand(defaultsCmd())
	return rootCmd
}
