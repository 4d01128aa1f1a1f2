package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docverify/docverify/internal/config"
)

const starterConfig = `# docverify configuration
core: /usr/local/bin/validation-core
timeout: 30s

# services:
#   team-chat:
#     url: telegram://token@telegram?chats=@channel
#
# template: "{{result.status_emoji}} {{doc.name}}: {{result.errors}} error(s), {{result.warnings}} warning(s)"
#
# notify:
#   - team-chat
#
# watch:
#   dirs:
#     - /srv/documents/incoming
#   schedule: "0 * * * *"
#   on: issues
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultConfigPaths()[0]
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
			return err
		}

		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
