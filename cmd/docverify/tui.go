package main

import (
	"github.com/spf13/cobra"

	"github.com/docverify/docverify/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [document]",
	Short: "Interactive validation front-end",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		initial := ""
		if len(args) == 1 {
			initial = args[0]
		}

		return tui.Run(buildValidator(cfg, logger), initial)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
