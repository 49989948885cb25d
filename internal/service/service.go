// Package service exposes the extraction pipeline, document store and
// risk scorer over JSON HTTP endpoints.
package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/healthlens/backend/internal/extraction"
	"github.com/healthlens/backend/internal/llm"
	"github.com/healthlens/backend/internal/risk"
	"github.com/healthlens/backend/internal/store"
)

// HealthService holds the wired collaborators for all handlers.
type HealthService struct {
	store    store.Store
	pipeline *extraction.Pipeline
	scorer   *risk.Scorer
}

// NewHealthService creates the service.
func NewHealthService(st store.Store, pipeline *extraction.Pipeline, scorer *risk.Scorer) *HealthService {
	return &HealthService{store: st, pipeline: pipeline, scorer: scorer}
}

// Register mounts all endpoints on the mux.
func (s *HealthService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /documents", s.handleDocuments)
	mux.HandleFunc("POST /risk-assessment", s.handleRiskAssessment)
}

// errorBody is the uniform failure payload.
type errorBody struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps internal errors onto the HTTP surface. Pipeline
// failures carry their diagnostics through so the caller can retry
// with pasted text.
func writeError(w http.ResponseWriter, err error) {
	var pipeErr *extraction.PipelineError
	if errors.As(err, &pipeErr) {
		details := map[string]interface{}{
			"code":             string(pipeErr.Code),
			"methodsAttempted": pipeErr.MethodsAttempted,
		}
		if pipeErr.PartialText != "" {
			details["extractedText"] = pipeErr.PartialText
		}
		if pipeErr.StrategyCounts != nil {
			details["strategyCounts"] = pipeErr.StrategyCounts
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: pipeErr.Message, Details: details})
		return
	}

	var svcErr *llm.ServiceError
	switch {
	case errors.Is(err, store.ErrSessionInvalid):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or expired session token"})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "document not found"})
	case errors.As(err, &svcErr):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "external service unavailable", Details: svcErr.Message})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// requireSession resolves and validates the session token.
func (s *HealthService) requireSession(r *http.Request, token string) (*store.Session, error) {
	if token == "" {
		return nil, store.ErrSessionInvalid
	}
	return s.store.VerifySession(r.Context(), token)
}
