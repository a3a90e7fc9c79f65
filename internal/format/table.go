package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/solguard-labs/solguard/pkg/lint"
)

var (
	fileStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func severityStyle(s lint.Severity) lipgloss.Style {
	switch s {
	case lint.SeverityError:
		return errorStyle
	case lint.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// TableFormatter renders a styled per-file table for terminals.
type TableFormatter struct{}

func (TableFormatter) Format(w io.Writer, result lint.Result) error {
	for _, file := range result.Files {
		if len(file.Issues) == 0 {
			continue
		}

		header := file.FilePath
		if file.FromCache {
			header += dimStyle.Render(" (cached)")
		}
		fmt.Fprintln(w, fileStyle.Render(header))

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Location", "Severity", "Rule", "Message"})
		for _, issue := range file.Issues {
			t.AppendRow(table.Row{
				fmt.Sprintf("%d:%d", issue.Location.Start.Line, issue.Location.Start.Column),
				severityStyle(issue.Severity).Render(issue.Severity.String()),
				issue.RuleID,
				issue.Message,
			})
		}
		t.Render()
		fmt.Fprintln(w)
	}

	if result.TotalIssues == 0 {
		fmt.Fprintf(w, "No issues found in %d file(s)\n", len(result.Files))
		return nil
	}

	summary := fmt.Sprintf("%d problem(s) (%d errors, %d warnings, %d info)",
		result.TotalIssues, result.Summary.Errors, result.Summary.Warnings, result.Summary.Info)
	if result.Summary.Errors > 0 {
		summary = errorStyle.Render(summary)
	} else if result.Summary.Warnings > 0 {
		summary = warningStyle.Render(summary)
	}
	fmt.Fprintln(w, summary)
	return nil
}

// CompactFormatter renders one line per issue for editors and scripts.
type CompactFormatter struct{}

func (CompactFormatter) Format(w io.Writer, result lint.Result) error {
	for _, file := range result.Files {
		for _, issue := range file.Issues {
			fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
				issue.FilePath,
				issue.Location.Start.Line,
				issue.Location.Start.Column,
				issue.Severity,
				issue.Message,
				issue.RuleID,
			)
		}
	}
	return nil
}
