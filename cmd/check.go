package main

import (
	"fmt"
	"io"

	"relay_control/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCheckConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and print it with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.loadSettings()
			if err != nil {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), settings)
		},
	}
}

func writeSettings(w io.Writer, settings config.Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settings.Redacted()); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}
