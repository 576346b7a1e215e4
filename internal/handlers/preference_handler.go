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

// PreferencesService is the interface that wraps user preference logic.
type PreferencesService interface {
	// Get retrieves the preferences for a user.
	Get(ctx context.Context, userID int) (*models.UserPreferences, error)
	// Update applies a partial preference update on top of the stored values.
	Update(ctx context.Context, userID int, req models.UpdatePreferencesRequest) (*models.UserPreferences, error)
}

// PreferencesHandler handles HTTP requests for user preferences
type PreferencesHandler struct {
	BaseHandler
	service PreferencesService
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(svc PreferencesService, logger *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all preference handler routes
func (h *PreferencesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users/preferences", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
	})
}

// Get handles GET /api/v1/users/preferences
// @Summary Get preferences
// @Description Get the stored personalization preferences for the authenticated user
// @Tags preferences
// @Produce json
// @Success 200 {object} models.UserPreferences
// @Failure 500 {object} map[string]string
// @Router /api/v1/users/preferences [get]
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	prefs, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get preferences", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get preferences")
		return
	}

	h.respondJSON(w, http.StatusOK, prefs)
}

// Update handles PUT /api/v1/users/preferences
// @Summary Update preferences
// @Description Apply a partial preference update for the authenticated user
// @Tags preferences
// @Accept json
// @Produce json
// @Success 200 {object} models.UserPreferences
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/users/preferences [put]
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs, err := h.service.Update(r.Context(), userID, req)
	if err != nil {
		h.logger.Error("failed to update preferences", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, prefs)
}
