package casereview

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// sessionHeader carries the optional review-session ID on form and
// pre-analysis requests.
const sessionHeader = "X-Session-ID"

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type AnalyzeHistoryRequest struct {
	HistoriaClinica string `json:"historia_clinica"`
}

type ChatRequest struct {
	Pregunta string `json:"pregunta"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.svc.CreateSession()
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sess)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}
	h.svc.DeleteSession(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AnalyzeHistory(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	analysis, suggested, err := h.svc.AnalyzeHistory(r.Context(), sessionID(r), req.HistoriaClinica)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"analisis":        analysis,
		"dilema_sugerido": suggested,
	})
}

func (h *Handler) SubmitCase(w http.ResponseWriter, r *http.Request) {
	var fields Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	doc, err := h.svc.SubmitCase(r.Context(), sessionID(r), fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListCases(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(docs)
}

func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.GetCase(r.Context(), chi.URLParam(r, "caseID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(doc)
}

func (h *Handler) RegenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.RegenerateAnalysis(r.Context(), chi.URLParam(r, "caseID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(doc)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	turns, err := h.svc.SendChatMessage(r.Context(), chi.URLParam(r, "caseID"), req.Pregunta)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	json.NewEncoder(w).Encode(turns)
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.svc.ExportPDF(r.Context(), chi.URLParam(r, "caseID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrMissingCaseID),
		errors.Is(err, ErrMissingClinicalHistory),
		errors.Is(err, ErrMissingQuestion):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Internal error: "+err.Error(), http.StatusInternalServerError)
	}
}

func sessionID(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(r.Header.Get(sessionHeader))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/sessions", h.CreateSession)
	r.Delete("/sessions/{sessionID}", h.DeleteSession)
	r.Post("/history/analyze", h.AnalyzeHistory)
	r.Post("/cases", h.SubmitCase)
	r.Get("/cases", h.ListCases)
	r.Get("/cases/{caseID}", h.GetCase)
	r.Post("/cases/{caseID}/analysis", h.RegenerateAnalysis)
	r.Post("/cases/{caseID}/chat", h.Chat)
	r.Get("/cases/{caseID}/export", h.ExportPDF)
}
