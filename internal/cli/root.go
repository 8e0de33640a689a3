// Package cli implements the firstwords command-line interface.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/firstwords/internal/logging"
	"github.com/mesh-intelligence/firstwords/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app carries the state of one invocation. It is filled in by the root
// command's PersistentPreRunE before any subcommand runs.
type app struct {
	flags     rootFlags
	configDir string
	dataDir   string
	cfg       appConfig
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "firstwords" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "firstwords",
		Short: "Track a child's first words",
		Long: "firstwords records the words young children say or sign, suggests words\n" +
			"to practice next and charts vocabulary growth by age.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newChildCmd(a),
		newWordCmd(a),
		newPracticeCmd(a),
		newChartCmd(a),
		newExportCmd(a),
	)
	return root
}

// Execute runs the command line with args and returns the process exit
// code.
func Execute(args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return systemError("resolve data dir: %w", err)
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	a.configDir = configDir
	a.dataDir = dataDir
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded", "config_dir", configDir, "data_dir", dataDir)
	return nil
}
