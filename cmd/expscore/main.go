package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/expscore/internal/config"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "expscore",
		Short:         "Sum experience date ranges into 180-day periods and points",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadFrom(configPath)
			if err != nil {
				return exitError(3, "loading config: %v", err)
			}
			*cfg = *loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ./expscore.yaml or ~/.expscore/expscore.yaml)")

	root.AddCommand(
		newScoreCmd(cfg),
		newSessionCmd(cfg),
		newProfilesCmd(),
	)
	return root
}

// newLogger builds a stderr logger from the logging config; verbose forces debug level.
func newLogger(cfg *config.Config, w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
