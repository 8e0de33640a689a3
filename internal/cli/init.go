package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/firstwords/internal/tracker"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize firstwords storage",
		Long:  "Create the configuration and data directories, write a default config.yaml\nif none exists, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// setup has already written config.yaml; attaching creates the
			// data directory and its JSONL files.
			err := a.withTracker(session{}, func(tr *tracker.Tracker) error { return nil })
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]string{
					"config_dir": a.configDir,
					"data_dir":   a.dataDir,
				})
			}
			fmt.Fprintf(out, "Initialized firstwords\n  config: %s\n  data:   %s\n", a.configDir, a.dataDir)
			return nil
		},
	}
}
