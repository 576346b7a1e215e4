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

// SyncService is the interface that wraps progress snapshot reconciliation.
type SyncService interface {
	// Upload stores a device progress snapshot as the server copy.
	Upload(ctx context.Context, userID int, progress map[string]int) error
	// Download returns the server snapshot, or nil when none exists yet.
	Download(ctx context.Context, userID int) (*models.SyncSnapshot, error)
}

// SyncHandler handles HTTP requests for progress snapshot sync
type SyncHandler struct {
	BaseHandler
	service SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(svc SyncService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all sync handler routes
func (h *SyncHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sync", func(r chi.Router) {
		r.Post("/upload", h.Upload)
		r.Get("/download", h.Download)
	})
}

// Upload handles POST /api/v1/sync/upload
// @Summary Upload progress snapshot
// @Description Merge a device-side progress snapshot into the server copy
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} models.SyncSnapshot
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/sync/upload [post]
func (h *SyncHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.SyncUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Upload(r.Context(), userID, req.Progress); err != nil {
		h.logger.Error("failed to upload snapshot", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"synced": len(req.Progress),
	})
}

// Download handles GET /api/v1/sync/download
// @Summary Download progress snapshot
// @Description Get the server-side progress snapshot for the authenticated user
// @Tags sync
// @Produce json
// @Success 200 {object} models.SyncSnapshot
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/sync/download [get]
func (h *SyncHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	snapshot, err := h.service.Download(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to download snapshot", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to download snapshot")
		return
	}
	if snapshot == nil {
		h.respondError(w, http.StatusNotFound, "no snapshot found")
		return
	}

	h.respondJSON(w, http.StatusOK, snapshot)
}
