package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docverify/docverify/internal/invoker"
	"github.com/docverify/docverify/internal/schema"
	"github.com/docverify/docverify/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check <document>",
	Short: "Validate a single document",
	Long: "Runs the validation core against one .pdf or .docx document and prints the " +
		"decoded result. Exits 0 when the document is clean, 1 when issues or a core " +
		"error were reported, and 2 when the pipeline itself is unusable (bad input " +
		"format, missing core).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		doNotify, _ := cmd.Flags().GetBool("notify")
		logger := setupLogger()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		v := buildValidator(cfg, logger)
		result, err := v.Validate(cmd.Context(), args[0])
		if err != nil {
			return describeSetupError(err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		} else {
			fmt.Println(tui.RenderResult(args[0], result))
		}

		if doNotify {
			if err := sendNotifications(cfg, args[0], result, logger); err != nil {
				return err
			}
		}

		if result.Status != schema.StatusOK {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("json", false, "print the raw result as JSON")
	checkCmd.Flags().Bool("notify", false, "send configured notifications for this result")
	rootCmd.AddCommand(checkCmd)
}

// describeSetupError turns pipeline errors into messages that read as tool
// configuration problems, not document verdicts.
func describeSetupError(err error) error {
	switch {
	case errors.Is(err, invoker.ErrUnsupportedFormat):
		return fmt.Errorf("cannot validate this input: %w", err)
	case errors.Is(err, invoker.ErrExecutableNotFound), errors.Is(err, invoker.ErrSpawnFailed):
		return fmt.Errorf("validation pipeline is not usable (check the core path in your config): %w", err)
	default:
		return err
	}
}
