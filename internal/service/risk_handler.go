package service

import (
	"encoding/json"
	"net/http"

	"github.com/healthlens/backend/internal/extraction"
	"github.com/healthlens/backend/internal/risk"
)

type riskRequest struct {
	SessionToken     string                          `json:"sessionToken"`
	HealthParameters []extraction.CanonicalParameter `json:"healthParameters"`
	UserProfile      risk.UserProfile                `json:"userProfile"`
}

func (s *HealthService) handleRiskAssessment(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	if _, err := s.requireSession(r, req.SessionToken); err != nil {
		writeError(w, err)
		return
	}
	if len(req.HealthParameters) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "healthParameters must not be empty"})
		return
	}

	assessment := s.scorer.Assess(r.Context(), req.HealthParameters, req.UserProfile)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"assessment": assessment,
	})
}
