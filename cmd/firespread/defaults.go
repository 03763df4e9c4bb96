package main

import (
	"github.com/spf13/cobra"

	"firespread/internal/scenario"
)

func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "defaults [preset]",
		Short:     "Print a built-in scenario as YAML, ready to edit and pass to batch",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: scenario.PresetNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := scenario.Default()
			if len(args) == 1 {
				var err error
				if f, err = scenario.Preset(args[0]); err != nil {
					return err
				}
			}
			data, err := f.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
