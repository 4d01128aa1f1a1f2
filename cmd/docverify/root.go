package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/docverify/docverify/internal/config"
	"github.com/docverify/docverify/internal/validator"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docverify",
	Short: "Front-end for an external document validation core",
	Long: "Docverify runs an external validation core against PDF and DOCX documents, " +
		"decodes its JSON verdict, and renders the result: one-shot, interactively, " +
		"or as a directory watcher.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("core", "", "path to the validation core executable")
	rootCmd.PersistentFlags().String("timeout", "", "per-document timeout (e.g. 30s)")
}

// setupLogger builds the process logger: debug level with --verbose, plain
// text to stderr. Timestamps are dropped on a TTY where they are noise.
func setupLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// resolveConfig loads the config file and overlays the --core/--timeout
// flags. When no config file exists, flags alone are enough for check/tui.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(cfgFile)
	switch {
	case err == nil:
	case cfgFile == "" && errors.Is(err, config.ErrNotFound):
		// No config anywhere: fall back to defaults + flags.
		cfg = config.Default()
	default:
		return nil, err
	}

	if cmd.Flags().Changed("core") {
		cfg.Core, _ = cmd.Flags().GetString("core")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetString("timeout")
	}
	return cfg, nil
}

// buildValidator constructs the validator a command will run documents
// through.
func buildValidator(cfg *config.Config, logger *slog.Logger) *validator.Validator {
	return validator.New(validator.Options{
		CorePath: cfg.Core,
		Timeout:  cfg.TimeoutDuration(validator.DefaultTimeout),
		Logger:   logger,
	})
}
