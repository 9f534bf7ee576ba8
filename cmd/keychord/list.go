package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/app"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every bound chord in ascending order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			application, err := app.New(cfg, app.Options{Logger: logger})
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			for _, line := range application.Listing() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
