package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/keychord/internal/app"
	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/logging"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configFile string
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "keychord",
		Short: "Vim-style key chords in the terminal",
		Long: `keychord reads keys from the terminal and runs the actions bound to
multi-key chords. Type the leader twice to toggle the panel, ZZ to quit.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "",
		"config file (default: ~/.config/keychord/config.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-file", "", "write logs to this file")
	pf.StringSliceP("keymap", "k", nil, "keymap file or directory (repeatable)")
	pf.String("leader", "", "leader key in notation form, e.g. <Space> or ,")
	root.Flags().String("mode", "", "initial mode: normal, insert or visual")
	root.Flags().Bool("watch", true, "reload keymaps when their files change")

	root.AddCommand(newCheckCmd(opts), newListCmd(opts))
	return root
}

// loadConfig reads the config file, environment and flags.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger logs to the configured file, or to w when there is none.
// A nil w discards logs without a file.
func newLogger(cfg config.Config, w io.Writer) (*zap.Logger, func() error, error) {
	if cfg.Log.File != "" || w == nil {
		return logging.NewFile(cfg.Log.File, cfg.Log.Level)
	}
	logger, err := logging.New(w, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Sync, nil
}

func runApp(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI: no log output unless a file is set.
	logger, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	application, err := app.New(cfg, app.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = application.Close() }()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}
