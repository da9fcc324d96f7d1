package api

import (
	"encoding/json"
	"net/http"

	"dataqc/domain/quality"
	apperrors "dataqc/internal/errors"
)

// AnalyzeRequest carries already-parsed rows and headers plus optional inline
// rules. When UseStoredRules is set the active rules from the repository are
// evaluated as well.
type AnalyzeRequest struct {
	Headers        []string             `json:"headers"`
	Rows           []quality.Row        `json:"rows"`
	Rules          []quality.CustomRule `json:"rules,omitempty"`
	UseStoredRules bool                 `json:"use_stored_rules,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rules := req.Rules
	if req.UseStoredRules {
		stored, err := s.rules.ListActive(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load stored rules")
			return
		}
		rules = append(rules, stored...)
	}

	result, err := s.analyzer.Analyze(req.Rows, req.Headers, rules)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.GetCode(err) == apperrors.CodeInvalidInput {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
