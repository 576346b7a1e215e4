package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/edumorph/backend/internal/middleware"
	"github.com/edumorph/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdaptationService is the interface that wraps the adaptation pipeline.
type AdaptationService interface {
	// Adapt produces a personalized rendering of a lesson for a learner
	// context: cache lookup first, then the provider fallback chain and the
	// translation stage.
	//
	// Returns models.ErrLessonNotFound when the lesson does not exist and
	// models.ErrAdaptationFailed when every provider failed.
	Adapt(ctx context.Context, lessonID int, learner models.LearnerContext) (*models.AdaptedLesson, error)
}

// LessonsService is the interface that wraps lesson list and translation logic.
type LessonsService interface {
	// GetLessons retrieves the lesson list for a grade level and optional subject.
	GetLessons(ctx context.Context, gradeLevel int, subject string) ([]models.LessonListItem, error)
	// Translate converts arbitrary text into the target language.
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
	// Simplify rewrites arbitrary text at a target reading level.
	Simplify(ctx context.Context, text string, level int) (string, error)
}

// LessonProgressService records per-lesson progress percentages, the replay
// target for queued offline writes.
type LessonProgressService interface {
	RecordLessonProgress(ctx context.Context, userID, lessonID, percent int) (int, error)
}

// PreferencesProvider supplies the stored personalization defaults that
// query overrides fall back on.
type PreferencesProvider interface {
	Get(ctx context.Context, userID int) (*models.UserPreferences, error)
}

// LessonsHandler handles HTTP requests for lessons and adaptations
type LessonsHandler struct {
	BaseHandler
	adaptation  AdaptationService
	lessons     LessonsService
	progress    LessonProgressService
	preferences PreferencesProvider
}

// NewLessonsHandler creates a new lessons handler
func NewLessonsHandler(
	adaptation AdaptationService,
	lessons LessonsService,
	progress LessonProgressService,
	preferences PreferencesProvider,
	logger *zap.Logger,
) *LessonsHandler {
	return &LessonsHandler{
		BaseHandler: BaseHandler{logger: logger},
		adaptation:  adaptation,
		lessons:     lessons,
		progress:    progress,
		preferences: preferences,
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/lessons", func(r chi.Router) {
		r.Get("/", h.GetLessons)
		r.Post("/translate", h.Translate)
		r.Post("/simplify", h.Simplify)
		r.Get("/{id}/adapted", h.GetAdapted)
		r.Post("/{id}/progress", h.RecordProgress)
	})
}

// GetLessons handles GET /api/v1/lessons
// @Summary List lessons
// @Description Get lessons filtered by grade level and subject
// @Tags lessons
// @Produce json
// @Param grade query int false "Grade level, default 5"
// @Param subject query string false "Subject filter"
// @Success 200 {object} map[string][]models.LessonListItem
// @Failure 500 {object} map[string]string
// @Router /api/v1/lessons [get]
func (h *LessonsHandler) GetLessons(w http.ResponseWriter, r *http.Request) {
	grade := 5
	if gradeParam := r.URL.Query().Get("grade"); gradeParam != "" {
		parsed, err := strconv.Atoi(gradeParam)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid grade")
			return
		}
		grade = parsed
	}
	subject := r.URL.Query().Get("subject")

	lessons, err := h.lessons.GetLessons(r.Context(), grade, subject)
	if err != nil {
		h.logger.Error("failed to get lessons", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get lessons")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"lessons": lessons})
}

// GetAdapted handles GET /api/v1/lessons/{id}/adapted
// @Summary Get adapted lesson
// @Description Produce a personalized rendering of a lesson; query parameters override stored preferences
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Param language query string false "Target language"
// @Param region query string false "Region"
// @Param grade query int false "Grade level"
// @Success 200 {object} models.AdaptedLesson
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/lessons/{id}/adapted [get]
func (h *LessonsHandler) GetAdapted(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	learner, err := h.learnerContext(r, userID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	adapted, err := h.adaptation.Adapt(r.Context(), lessonID, learner)
	if errors.Is(err, models.ErrLessonNotFound) {
		h.respondError(w, http.StatusNotFound, "lesson not found")
		return
	}
	if errors.Is(err, models.ErrAdaptationFailed) {
		h.logger.Error("adaptation failed", zap.Int("lesson_id", lessonID), zap.Error(err))
		h.respondError(w, http.StatusBadGateway, "adaptation failed")
		return
	}
	if err != nil {
		h.logger.Error("failed to adapt lesson", zap.Int("lesson_id", lessonID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to adapt lesson")
		return
	}

	h.respondJSON(w, http.StatusOK, adapted)
}

// learnerContext resolves the learner context for a request: stored
// preferences first, query parameter overrides on top, device metadata from
// the enricher middleware.
func (h *LessonsHandler) learnerContext(r *http.Request, userID int) (models.LearnerContext, error) {
	prefs, err := h.preferences.Get(r.Context(), userID)
	if err != nil {
		// Preferences are a fallback source; adaptation can proceed on the
		// platform defaults
		h.logger.Warn("failed to get preferences, using defaults", zap.Int("user_id", userID), zap.Error(err))
		prefs = &models.UserPreferences{
			PreferredLanguage: "en",
			Region:            "Punjab",
			Grade:             5,
			LearningStyle:     models.LearningStyleAuditory,
		}
	}

	learner := models.LearnerContext{
		UserID:        userID,
		Name:          prefs.Name,
		Grade:         prefs.Grade,
		Language:      prefs.PreferredLanguage,
		Region:        prefs.Region,
		LearningStyle: prefs.LearningStyle,
		Device:        middleware.GetDeviceContext(r.Context()),
	}

	query := r.URL.Query()
	if language := query.Get("language"); language != "" {
		learner.Language = language
	}
	if region := query.Get("region"); region != "" {
		learner.Region = region
	}
	if gradeParam := query.Get("grade"); gradeParam != "" {
		grade, err := strconv.Atoi(gradeParam)
		if err != nil {
			return models.LearnerContext{}, errors.New("invalid grade")
		}
		learner.Grade = grade
	}

	return learner, nil
}

// Translate handles POST /api/v1/lessons/translate
// @Summary Translate text
// @Description Translate arbitrary text into a target language
// @Tags lessons
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/lessons/translate [post]
func (h *LessonsHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" || req.TargetLanguage == "" {
		h.respondError(w, http.StatusBadRequest, "text and targetLanguage are required")
		return
	}

	translated, err := h.lessons.Translate(r.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		h.logger.Error("failed to translate text", zap.Error(err))
		h.respondError(w, http.StatusBadGateway, "translation failed")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"translated": translated})
}

// Simplify handles POST /api/v1/lessons/simplify
// @Summary Simplify text
// @Description Rewrite arbitrary text at a target reading level
// @Tags lessons
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/lessons/simplify [post]
func (h *LessonsHandler) Simplify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text  string `json:"text"`
		Level int    `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		h.respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	simplified, err := h.lessons.Simplify(r.Context(), req.Text, req.Level)
	if err != nil {
		h.logger.Error("failed to simplify text", zap.Error(err))
		h.respondError(w, http.StatusBadGateway, "simplification failed")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"simplified": simplified})
}

// RecordProgress handles POST /api/v1/lessons/{id}/progress
// @Summary Record lesson progress
// @Description Record a progress percentage for a lesson; the replay target for offline sync
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/lessons/{id}/progress [post]
func (h *LessonsHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.LessonProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		h.respondError(w, http.StatusBadRequest, "progress must be between 0 and 100")
		return
	}

	progressID, err := h.progress.RecordLessonProgress(r.Context(), userID, lessonID, req.Progress)
	if err != nil {
		h.logger.Error("failed to record lesson progress",
			zap.Int("lesson_id", lessonID),
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to record progress")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "progressId": progressID})
}
