package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/solguard-labs/solguard/internal/plugin"
)

// NewPluginsCommand creates the plugins command group.
func NewPluginsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect and validate Starlark plugins",
	}
	cmd.AddCommand(newPluginsListCommand(), newPluginsValidateCommand())
	return cmd
}

func newPluginsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plugins loaded from the current config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			w := cmd.OutOrStdout()
			plugins := rt.Loader.Plugins()
			if len(plugins) == 0 {
				fmt.Fprintln(w, "No plugins loaded")
			}
			for _, p := range plugins {
				fmt.Fprintf(w, "%s %s  (%d rules, %d presets)  %s\n",
					p.Name, p.Version, len(p.Rules), len(p.Presets), p.Path)
			}

			if len(rt.PluginReport.Errors) > 0 {
				fmt.Fprintf(w, "\n%d plugin error(s):\n", len(rt.PluginReport.Errors))
				for _, e := range rt.PluginReport.Errors {
					fmt.Fprintf(w, "  [%s] %s: %s\n", e.Code, e.Path, e.Message)
				}
			}
			return nil
		},
	}
}

func newPluginsValidateCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate plugin files without loading them into a run",
		Long: `Validate one or more Starlark plugin files against the plugin
contract: exported metadata, rule shapes, presets, and lifecycle hooks.

Validation collects every violation instead of stopping at the first.
The exit code is 1 when any plugin fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A throwaway loader: validation must not run setup hooks or
			// touch the configured plugin set.
			loader := plugin.NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
			report := loader.ValidatePaths(args)

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report.Errors); err != nil {
					return err
				}
			} else {
				for _, p := range report.Loaded {
					fmt.Fprintf(w, "OK  %s %s  %s\n", p.Name, p.Version, p.Path)
				}
				for _, e := range report.Errors {
					field := ""
					if e.Field != "" {
						field = " " + e.Field
					}
					fmt.Fprintf(w, "ERR [%s] %s%s: %s\n", e.Code, e.Path, field, e.Message)
				}
			}

			if len(report.Errors) > 0 {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit validation errors as JSON")
	return cmd
}
