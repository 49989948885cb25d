package service

import (
	"io"
	"net/http"

	"github.com/healthlens/backend/internal/extraction"
)

// maxUploadBytes bounds the multipart body; lab reports are small and
// anything larger is adversarial or misdirected.
const maxUploadBytes = 20 << 20

// extractedData is the success payload of POST /extract.
type extractedData struct {
	HealthParameters     []extraction.CanonicalParameter `json:"healthParameters"`
	DocumentType         string                          `json:"documentType"`
	TestDate             string                          `json:"testDate"`
	TotalParametersFound int                             `json:"totalParametersFound"`
}

type extractResponse struct {
	Success       bool          `json:"success"`
	ExtractedData extractedData `json:"extractedData"`
	DebugInfo     interface{}   `json:"debugInfo,omitempty"`
}

// handleExtract accepts a multipart form with a binary "file" field
// and/or a plain "text" field and runs the full pipeline. Nothing is
// persisted here; storing is a separate, explicit /documents call.
func (s *HealthService) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "expected multipart form data"})
		return
	}

	pastedText := r.FormValue("text")
	wantDebug := r.FormValue("debug") == "true"

	var blob []byte
	var declaredType string
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		blob, err = io.ReadAll(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "failed to read uploaded file"})
			return
		}
		declaredType = header.Header.Get("Content-Type")
	}

	if len(blob) == 0 && pastedText == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "provide a file or a text field"})
		return
	}

	result, err := s.pipeline.Extract(r.Context(), blob, declaredType, pastedText)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := extractResponse{
		Success: true,
		ExtractedData: extractedData{
			HealthParameters:     result.Parameters,
			DocumentType:         result.DocumentType,
			TestDate:             result.TestDate,
			TotalParametersFound: len(result.Parameters),
		},
	}
	if wantDebug {
		resp.DebugInfo = map[string]interface{}{
			"methodsUsed":    result.MethodsUsed,
			"strategyCounts": result.StrategyCounts,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
