package main

import (
	"relay_control/internal/config"
	"relay_control/internal/logger"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "relayd",
		Short:         "Relay gateway driven by admin SMS commands and an HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default configs/config.yml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newCheckConfigCmd(opts))
	return cmd
}

// loadSettings reads and validates the configuration; --verbose forces debug logs.
func (o *rootOptions) loadSettings() (config.Settings, error) {
	settings, err := config.Load(o.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	if o.verbose {
		settings.Log.Level = logger.DebugLevel
	}
	return settings, nil
}
