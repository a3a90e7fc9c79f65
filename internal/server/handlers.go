package server

import (
	"encoding/json"
	"net/http"

	"github.com/solguard-labs/solguard/pkg/lint"
)

// analyzeRequest is the POST /api/v1/analyze body: sources supplied inline,
// so the server never reads the client's filesystem.
type analyzeRequest struct {
	Files []analyzeFile `json:"files"`
}

type analyzeFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ruleInfo is one entry in the GET /api/v1/rules listing.
type ruleInfo struct {
	ID              string        `json:"id"`
	Category        string        `json:"category"`
	DefaultSeverity lint.Severity `json:"defaultSeverity"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Recommendation  string        `json:"recommendation,omitempty"`
	Fixable         bool          `json:"fixable"`
	DocsURL         string        `json:"docsUrl"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if len(req.Files) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no files to analyze"})
		return
	}
	for _, f := range req.Files {
		if f.Path == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "every file needs a path"})
			return
		}
	}

	results := make([]lint.FileResult, 0, len(req.Files))
	for _, f := range req.Files {
		results = append(results, s.engine.AnalyzeSource(r.Context(), f.Path, f.Content))
	}
	writeJSON(w, http.StatusOK, lint.BuildResult(results))
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	rules := s.catalog.All()
	rules = append(rules, s.extra...)

	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		meta := rule.Metadata()
		infos = append(infos, ruleInfo{
			ID:              meta.ID,
			Category:        string(meta.Category),
			DefaultSeverity: meta.DefaultSeverity,
			Title:           meta.Title,
			Description:     meta.Description,
			Recommendation:  meta.Recommendation,
			Fixable:         meta.Fixable,
			DocsURL:         lint.BuildDocURL(meta.ID),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"rules": infos, "count": len(infos)})
}
