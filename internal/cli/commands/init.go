package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solguard-labs/solguard/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a starter solguard.yaml",
		Long: `Create a solguard.yaml in the given directory (default: current
directory) extending the recommended preset.`,
		Example: `  # Initialize in the current directory
  solguard init

  # Initialize a new project directory
  solguard init contracts-audit

  # Overwrite an existing config
  solguard init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}

			path := filepath.Join(dir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			raw, err := starterConfig()
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, raw, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func starterConfig() ([]byte, error) {
	starter := map[string]any{
		"extends": []string{config.PresetRecommended},
		"rules": map[string]any{
			"practices/max-states-count": []any{"warning", map[string]any{"max": 15}},
		},
		"excludedFiles": []string{"node_modules", "*.t.sol"},
		"cache": map[string]any{
			"enabled": true,
			"path":    config.DefaultCachePath,
		},
	}
	return yaml.Marshal(starter)
}
