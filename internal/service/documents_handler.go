package service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/healthlens/backend/internal/extraction"
	"github.com/healthlens/backend/internal/risk"
	"github.com/healthlens/backend/internal/store"
)

// documentsRequest is the action-dispatched body of POST /documents.
type documentsRequest struct {
	Action       string `json:"action"`
	SessionToken string `json:"sessionToken"`

	// store
	Name             string                          `json:"name,omitempty"`
	DocumentType     string                          `json:"documentType,omitempty"`
	TestDate         string                          `json:"testDate,omitempty"`
	Analysis         string                          `json:"analysis,omitempty"`
	HealthParameters []extraction.CanonicalParameter `json:"healthParameters,omitempty"`

	// delete
	DocumentID string `json:"documentId,omitempty"`

	// analyze-trends
	Parameters []string `json:"parameters,omitempty"`
	WindowDays int      `json:"windowDays,omitempty"`
}

func (s *HealthService) handleDocuments(w http.ResponseWriter, r *http.Request) {
	var req documentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	session, err := s.requireSession(r, req.SessionToken)
	if err != nil {
		writeError(w, err)
		return
	}

	switch req.Action {
	case "store":
		s.storeDocument(w, r, session, &req)
	case "list":
		s.listDocuments(w, r, session)
	case "delete":
		s.deleteDocument(w, r, session, &req)
	case "analyze-trends":
		s.analyzeTrends(w, r, session, &req)
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown action", Details: req.Action})
	}
}

func (s *HealthService) storeDocument(w http.ResponseWriter, r *http.Request, session *store.Session, req *documentsRequest) {
	if len(req.HealthParameters) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "healthParameters must not be empty"})
		return
	}

	doc := &store.Document{
		SessionID:    session.Token,
		Name:         req.Name,
		DocumentType: req.DocumentType,
		TestDate:     req.TestDate,
		Analysis:     req.Analysis,
		Parameters:   req.HealthParameters,
	}
	if err := s.store.CreateDocument(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"documentId": doc.ID,
	})
}

func (s *HealthService) listDocuments(w http.ResponseWriter, r *http.Request, session *store.Session) {
	docs, err := s.store.ListDocuments(r.Context(), session.Token)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []*store.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"documents": docs,
	})
}

func (s *HealthService) deleteDocument(w http.ResponseWriter, r *http.Request, session *store.Session, req *documentsRequest) {
	if req.DocumentID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "documentId is required"})
		return
	}
	if err := s.store.DeleteDocument(r.Context(), session.Token, req.DocumentID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (s *HealthService) analyzeTrends(w http.ResponseWriter, r *http.Request, session *store.Session, req *documentsRequest) {
	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = 365
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	names := req.Parameters
	if len(names) == 0 {
		var err error
		names, err = s.sessionParameterNames(r, session)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	trends := make([]risk.Trend, 0, len(names))
	for _, name := range names {
		history, err := s.store.ParameterHistory(r.Context(), session.Token, name, since)
		if err != nil {
			writeError(w, err)
			return
		}
		trends = append(trends, risk.AnalyzeTrend(name, history))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"windowDays": windowDays,
		"trends":     trends,
	})
}

// sessionParameterNames collects the distinct parameter names the
// session has ever stored, preserving first-seen order.
func (s *HealthService) sessionParameterNames(r *http.Request, session *store.Session) ([]string, error) {
	docs, err := s.store.ListDocuments(r.Context(), session.Token)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, doc := range docs {
		for _, p := range doc.Parameters {
			if !seen[p.Parameter] {
				seen[p.Parameter] = true
				names = append(names, p.Parameter)
			}
		}
	}
	return names, nil
}
