package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docverify/docverify/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Load and validate the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}

		fmt.Printf("core:    %s\n", cfg.Core)
		fmt.Printf("timeout: %s\n", cfg.Timeout)
		if len(cfg.Services) > 0 {
			fmt.Printf("services: %d configured\n", len(cfg.Services))
		}
		if len(cfg.Watch.Dirs) > 0 {
			fmt.Printf("watch:   %v\n", cfg.Watch.Dirs)
		}
		fmt.Println("config OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
