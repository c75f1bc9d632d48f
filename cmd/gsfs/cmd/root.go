// Package cmd provides the CLI commands for gsfs.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hupe1980/gsfs"
	"github.com/hupe1980/gsfs/internal/config"
)

// NewRootCmd creates the root command for the gsfs CLI.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "gsfs",
		Short: "Graph-search feature selection",
		Long: `gsfs searches the lattice of feature subsets for the subset a
classifier scores highest, guided by UCB scoring with RAVE statistics.

Run 'gsfs run --data train.csv --label y' to select features of a CSV table.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("gsfs version {{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")

	cmd.AddCommand(newRunCmd(&configPath))
	cmd.AddCommand(newConfigCmd(&configPath))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// newLogger builds the library logger from the logging section.
func newLogger(w io.Writer, cfg config.LoggingConfig) *gsfs.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return gsfs.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return gsfs.NewLogger(slog.NewTextHandler(w, opts))
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
