package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/casetrace/casetrace/internal/auth"
	"github.com/casetrace/casetrace/internal/reasoning"
	"github.com/casetrace/casetrace/internal/storage"
	"github.com/casetrace/casetrace/pkg/models"
)

type reasonRequest struct {
	Text      string            `json:"text"`
	Evidences []models.Evidence `json:"evidences"`
	Context   map[string]any    `json:"context"`
}

type analysisSummary struct {
	ID         uuid.UUID `json:"id"`
	Excerpt    string    `json:"excerpt"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// excerpt truncates text to at most n runes.
func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	result := s.reasoner.Reason(req.Text, req.Evidences, req.Context)

	resultJSON, err := json.Marshal(result)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}

	analysis := &storage.Analysis{
		AccountID:  accountID,
		Text:       req.Text,
		Result:     resultJSON,
		Confidence: result.Confidence,
	}
	if err := s.analyses.Create(r.Context(), analysis); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store analysis")
		return
	}

	if s.monitor != nil {
		path := "analyses/" + analysis.ID.String() + ".json"
		if err := s.monitor.SaveSnapshot(r.Context(), path, string(resultJSON)); err != nil {
			log.Printf("failed to mirror analysis %s: %v", analysis.ID, err)
		}
	}

	respondJSON(w, http.StatusCreated, analysis)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	analyses, err := s.analyses.ListByAccount(r.Context(), accountID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}

	items := make([]analysisSummary, 0, len(analyses))
	for _, a := range analyses {
		items = append(items, analysisSummary{
			ID:         a.ID,
			Excerpt:    excerpt(a.Text, 80),
			Confidence: a.Confidence,
			CreatedAt:  a.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.ownedAnalysis(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.ownedAnalysis(w, r)
	if !ok {
		return
	}

	var result models.ReasoningResult
	if err := json.Unmarshal(analysis.Result, &result); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to decode stored result")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, reasoning.GenerateReport(result))
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, ok := s.ownedAnalysis(w, r)
	if !ok {
		return
	}

	if err := s.analyses.Delete(r.Context(), analysis.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete analysis")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// ownedAnalysis loads the analysis from the URL and enforces that it belongs
// to the authenticated account. Writes the error response itself on failure.
func (s *Server) ownedAnalysis(w http.ResponseWriter, r *http.Request) (*storage.Analysis, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid analysis id")
		return nil, false
	}

	analysis, err := s.analyses.GetByID(r.Context(), id)
	if err != nil {
		if err == storage.ErrAnalysisNotFound {
			respondError(w, http.StatusNotFound, "analysis not found")
		} else {
			respondError(w, http.StatusInternalServerError, "failed to load analysis")
		}
		return nil, false
	}

	if analysis.AccountID.String() != claims.AccountID {
		respondError(w, http.StatusForbidden, "forbidden")
		return nil, false
	}

	return analysis, true
}
