package format

import (
	"encoding/json"
	"io"

	"github.com/solguard-labs/solguard/pkg/lint"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID      string `json:"id"`
	HelpURI string `json:"helpUri,omitempty"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

func sarifLevel(s lint.Severity) string {
	switch s {
	case lint.SeverityError:
		return "error"
	case lint.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// SARIFFormatter emits SARIF 2.1.0 for CI annotation uploads.
type SARIFFormatter struct{}

func (SARIFFormatter) Format(w io.Writer, result lint.Result) error {
	var results []sarifResult
	seen := map[string]bool{}
	var ruleDefs []sarifRule

	for _, file := range result.Files {
		for _, issue := range file.Issues {
			if !seen[issue.RuleID] {
				seen[issue.RuleID] = true
				ruleDefs = append(ruleDefs, sarifRule{
					ID:      issue.RuleID,
					HelpURI: lint.BuildDocURL(issue.RuleID),
				})
			}
			results = append(results, sarifResult{
				RuleID:  issue.RuleID,
				Level:   sarifLevel(issue.Severity),
				Message: sarifMessage{Text: issue.Message},
				Locations: []sarifLoc{{Physical: sarifPhys{
					ArtifactLocation: sarifArt{URI: issue.FilePath},
					Region: sarifRegion{
						StartLine: issue.Location.Start.Line,
						// SARIF columns are 1-based.
						StartColumn: issue.Location.Start.Column + 1,
						EndLine:     issue.Location.End.Line,
						EndColumn:   issue.Location.End.Column + 1,
					},
				}}},
			})
		}
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           "solguard",
				InformationURI: lint.DocsBaseURL,
				Rules:          ruleDefs,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}
