package lint

import "sort"

// Summary counts issues by severity across a whole run.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// FileResult holds the issues for one analyzed file.
type FileResult struct {
	FilePath string  `json:"filePath"`
	Issues   []Issue `json:"issues"`

	// FromCache marks results served from the analysis cache.
	FromCache bool `json:"fromCache,omitempty"`
}

// Result is the aggregate outcome of an analysis run. Files are ordered by
// resolved path regardless of the order their analyses completed in.
type Result struct {
	Files       []FileResult `json:"files"`
	TotalIssues int          `json:"totalIssues"`
	Summary     Summary      `json:"summary"`
}

// BuildResult sorts file results by path and computes the aggregate counts.
func BuildResult(files []FileResult) Result {
	sort.Slice(files, func(i, j int) bool {
		return files[i].FilePath < files[j].FilePath
	})

	res := Result{Files: files}
	for _, f := range files {
		for _, issue := range f.Issues {
			res.TotalIssues++
			switch issue.Severity {
			case SeverityError:
				res.Summary.Errors++
			case SeverityWarning:
				res.Summary.Warnings++
			case SeverityInfo:
				res.Summary.Info++
			}
		}
	}
	return res
}
