package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Category string
	Verbose  bool
	Format   string
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List the available rules with their categories and default severities.

Plugin rules appear under their namespaced IDs once the configured plugins
are loaded. Use --verbose or name a rule to see its full documentation.`,
		Example: `  # List all rules
  solguard rules

  # Show details for a specific rule
  solguard rules security/tx-origin

  # List security rules only
  solguard rules --category security

  # Output as JSON
  solguard rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			all := rt.Catalog.All()
			all = append(all, rt.Loader.AllRules()...)

			if len(args) > 0 {
				return showRule(cmd, all, args[0], opts)
			}
			return listRules(cmd, all, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by category")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json")

	return cmd
}

var (
	ruleIDStyle   = lipgloss.NewStyle().Bold(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

func listRules(cmd *cobra.Command, all []lint.Rule, opts *RulesOptions) error {
	metas := make([]lint.RuleMetadata, 0, len(all))
	for _, rule := range all {
		meta := rule.Metadata()
		if opts.Category != "" && string(meta.Category) != opts.Category {
			continue
		}
		metas = append(metas, meta)
	}
	sort.Slice(metas, func(i, j int) bool {
		if metas[i].Category != metas[j].Category {
			return metas[i].Category < metas[j].Category
		}
		return metas[i].ID < metas[j].ID
	})

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(metas)
	}

	titleCaser := cases.Title(language.English)
	w := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Category", "Default", "Title"})
	for _, meta := range metas {
		t.AppendRow(table.Row{
			meta.ID,
			categoryStyle.Render(titleCaser.String(string(meta.Category))),
			meta.DefaultSeverity.String(),
			meta.Title,
		})
		if opts.Verbose && meta.Description != "" {
			t.AppendRow(table.Row{"", "", "", meta.Description})
		}
	}
	t.Render()
	fmt.Fprintf(w, "%d rule(s)\n", len(metas))
	return nil
}

func showRule(cmd *cobra.Command, all []lint.Rule, id string, opts *RulesOptions) error {
	for _, rule := range all {
		meta := rule.Metadata()
		if meta.ID != id {
			continue
		}

		if opts.Format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, ruleIDStyle.Render(meta.ID))
		fmt.Fprintf(w, "Category:  %s\n", meta.Category)
		fmt.Fprintf(w, "Default:   %s\n", meta.DefaultSeverity)
		fmt.Fprintf(w, "Fixable:   %t\n", meta.Fixable)
		if meta.Title != "" {
			fmt.Fprintf(w, "Title:     %s\n", meta.Title)
		}
		if meta.Description != "" {
			fmt.Fprintf(w, "\n%s\n", meta.Description)
		}
		if meta.Recommendation != "" {
			fmt.Fprintf(w, "\nRecommendation: %s\n", meta.Recommendation)
		}
		fmt.Fprintf(w, "\nDocs: %s\n", lint.BuildDocURL(meta.ID))
		return nil
	}
	return fmt.Errorf("unknown rule %q", id)
}
