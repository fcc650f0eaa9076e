package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"aiready/internal/cache"
	"aiready/internal/model"
	"aiready/internal/service"
	"aiready/internal/transport/rest/middleware"
)

// AssessmentHandler handles the assessment engine endpoints
type AssessmentHandler struct {
	samplerSvc    *service.SamplerService
	assessmentSvc *service.AssessmentService
	historySvc    *service.HistoryService
	readiness     cache.ReadinessCache
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(
	samplerSvc *service.SamplerService,
	assessmentSvc *service.AssessmentService,
	historySvc *service.HistoryService,
	readiness cache.ReadinessCache,
) *AssessmentHandler {
	return &AssessmentHandler{
		samplerSvc:    samplerSvc,
		assessmentSvc: assessmentSvc,
		historySvc:    historySvc,
		readiness:     readiness,
	}
}

// RecordResponseRequest is the request body for recording an answer
type RecordResponseRequest struct {
	QuestionID   string `json:"questionId"`
	Answer       string `json:"answer"`
	TimeSpentSec int    `json:"timeSpentSec"`
}

// GetQuestions handles GET /v1/assessment/questions
func (h *AssessmentHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = parsed
	}

	questions, err := h.samplerSvc.SelectQuestions(r.Context(), count)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// StartSession handles POST /v1/assessment/sessions
func (h *AssessmentHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	session, err := h.assessmentSvc.StartSession(r.Context(), userID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": session.ID,
		"token":     session.Token,
		"startedAt": session.StartedAt,
	})
}

// RecordResponse handles POST /v1/assessment/sessions/{sessionId}/responses
func (h *AssessmentHandler) RecordResponse(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req RecordResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" || req.Answer == "" {
		writeError(w, http.StatusBadRequest, "questionId and answer are required")
		return
	}

	if !h.authorizeSession(w, r, sessionID) {
		return
	}

	result, err := h.assessmentSvc.RecordResponse(r.Context(), sessionID, req.QuestionID, req.Answer, req.TimeSpentSec)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Complete handles POST /v1/assessment/sessions/{sessionId}/complete
func (h *AssessmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if !h.authorizeSession(w, r, sessionID) {
		return
	}

	results, err := h.assessmentSvc.CompleteAssessment(r.Context(), sessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// GetSession handles GET /v1/assessment/sessions/{sessionId}
func (h *AssessmentHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if !h.authorizeSession(w, r, sessionID) {
		return
	}

	session, err := h.assessmentSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Cancel handles DELETE /v1/assessment/sessions/{sessionId}
func (h *AssessmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if !h.authorizeSession(w, r, sessionID) {
		return
	}

	if err := h.assessmentSvc.CancelSession(r.Context(), sessionID); err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// GetHistory handles GET /v1/assessment/history
func (h *AssessmentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	history := h.historySvc.GetUserHistory(r.Context(), userID, limit)
	rank := h.historySvc.GetUserRank(r.Context(), userID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"rank":    rank,
	})
}

// GetReadinessBoard handles GET /v1/assessment/readiness-board (admin)
func (h *AssessmentHandler) GetReadinessBoard(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.readiness.GetTop(r.Context(), limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"board": entries})
}

// authorizeSession checks that the caller owns the session (admins
// bypass). Writes the error response and returns false on failure.
func (h *AssessmentHandler) authorizeSession(w http.ResponseWriter, r *http.Request, sessionID string) bool {
	if middleware.GetRole(r.Context()) == model.RoleAdmin {
		return true
	}

	session, err := h.assessmentSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		writeEngineError(w, err)
		return false
	}
	if session.UserID != middleware.GetUserID(r.Context()) {
		writeError(w, http.StatusForbidden, "session belongs to another user")
		return false
	}
	return true
}

// writeEngineError maps engine errors to HTTP responses. Datastore
// causes are logged server-side only.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrSessionCompleted):
		writeError(w, http.StatusConflict, "session already completed")
	default:
		log.Printf("assessment request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
