package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/app"
)

// errCheckFailed is returned by check when any keymap has problems.
var errCheckFailed = errors.New("keymap check failed")

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load every keymap and report all problems",
		Long: `check loads the default keymap and every configured keymap file,
reports every parse error, unknown action and prefix conflict, and exits
non-zero if there were any.`,
		Args: cobra.NoArgs,
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

			out := cmd.OutOrStdout()
			problems := unjoin(application.LoadError())
			for _, p := range problems {
				fmt.Fprintln(out, oneLine(p.Error()))
			}
			bound := application.Dispatcher().Bindings().Len()
			if len(problems) > 0 {
				fmt.Fprintf(out, "%d bindings loaded, %d problems\n", bound, len(problems))
				return errCheckFailed
			}
			fmt.Fprintf(out, "%d bindings loaded, no problems\n", bound)
			return nil
		},
	}
}

// unjoin flattens errors built with errors.Join.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, unjoin(e)...)
	}
	return out
}

// oneLine keeps each problem on its own line of output.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
