package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"go.aimuz.me/toolbox/internal/geometry"
)

type rootOptions struct {
	configPath string
	logLevel   string
	probe      string
}

type rootCmd struct {
	cmd  *cobra.Command
	opts rootOptions
	code int
	run  func(rootOptions) (int, error)
}

func newRootCmd() *rootCmd {
	r := &rootCmd{run: run}

	r.cmd = &cobra.Command{
		Use:   "toolbox",
		Short: "Tray launcher for the toolbox popup",
		Long: `toolbox runs in the background with a tray icon.

Left-click the icon to show or hide the popup, right-click it for the menu.
The popup hides itself when it loses focus.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := r.run(r.opts)
			r.code = code
			return err
		},
	}

	flags := r.cmd.Flags()
	flags.StringVarP(&r.opts.configPath, "config", "c", "", "config file (default is <user config dir>/toolbox/config.json)")
	flags.StringVar(&r.opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&r.opts.probe, "probe", "", fmt.Sprintf("taskbar probe: %s or %s", geometry.StrategyWorkArea, geometry.StrategyWindow))

	r.cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(r.cmd.Version)
		},
	})
	return r
}

// execute runs the command and returns the exit code of the application.
func (r *rootCmd) execute() (int, error) {
	if err := r.cmd.Execute(); err != nil {
		slog.Error("toolbox failed", "error", err)
		return 1, err
	}
	return r.code, nil
}
