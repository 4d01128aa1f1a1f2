package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docverify/docverify/internal/schema"
	"github.com/docverify/docverify/internal/tui"
	"github.com/docverify/docverify/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Revalidate documents as they change",
	Long: "Watches directories for new or modified .pdf/.docx files and runs each one " +
		"through the validation core. Directories come from the config file unless " +
		"given as arguments. With watch.schedule set, all documents are also swept " +
		"on that cron schedule.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		dirs := cfg.Watch.Dirs
		if len(args) > 0 {
			dirs = args
		}
		if len(dirs) == 0 {
			return fmt.Errorf("no directories to watch (pass them as arguments or set watch.dirs)")
		}

		v := buildValidator(cfg, logger)

		w := watch.New(watch.Options{
			Dirs:      dirs,
			Schedule:  cfg.Watch.Schedule,
			Validator: v,
			Logger:    logger,
			Handler: func(path string, result schema.ValidationResult, err error) {
				if err != nil {
					logger.Error("validation failed", "file", path, "error", err)
					return
				}
				fmt.Println(tui.RenderResult(path, result))
				if shouldNotify(cfg.Watch.On, result) {
					if nerr := sendNotifications(cfg, path, result, logger); nerr != nil {
						logger.Error("notification failed", "file", path, "error", nerr)
					}
				}
			},
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
