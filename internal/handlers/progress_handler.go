package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/edumorph/backend/internal/middleware"
	"github.com/edumorph/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps progress business logic.
type ProgressService interface {
	// Record stores a progress record for a user and returns its ID.
	Record(ctx context.Context, userID int, req models.RecordProgressRequest) (int, error)
	// Summary retrieves the recent progress report for a user.
	Summary(ctx context.Context, userID int) (*models.ProgressSummary, error)
}

// ProgressHandler handles HTTP requests for progress tracking
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/progress", func(r chi.Router) {
		r.Post("/", h.Record)
		r.Get("/", h.Summary)
	})
}

// Record handles POST /api/v1/progress
// @Summary Record progress
// @Description Record a progress entry for the authenticated user
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/progress [post]
func (h *ProgressHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.RecordProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LessonID < 1 {
		h.respondError(w, http.StatusBadRequest, "lessonId is required")
		return
	}

	progressID, err := h.service.Record(r.Context(), userID, req)
	if err != nil {
		h.logger.Error("failed to record progress", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to record progress")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "progressId": progressID})
}

// Summary handles GET /api/v1/progress
// @Summary Get progress report
// @Description Get the recent progress report for the authenticated user
// @Tags progress
// @Produce json
// @Success 200 {object} models.ProgressSummary
// @Failure 500 {object} map[string]string
// @Router /api/v1/progress [get]
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get progress summary", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get progress")
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}
