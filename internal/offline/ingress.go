package offline

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/edumorph/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Ingress is the local write endpoint the sync daemon listens on. Device
// applications point their progress and preference writes at it instead of
// the content API; every write lands in the queue first and is flushed
// immediately when the network is up. Paths mirror the server API so the
// client only swaps the host. The bearer token is snapshotted with the
// entry and replayed as-is; the daemon itself does not validate it.
type Ingress struct {
	writer *Writer
	logger *zap.Logger
}

// NewIngress creates the ingress over the given writer.
func NewIngress(writer *Writer, logger *zap.Logger) *Ingress {
	return &Ingress{writer: writer, logger: logger}
}

// Router builds the ingress route tree.
func (i *Ingress) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/v1/lessons/{id}/progress", i.recordProgress)
	r.Put("/api/v1/users/preferences", i.updatePreferences)
	return r
}

func (i *Ingress) recordProgress(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		i.respondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	var req struct {
		Progress int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		i.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		i.respondError(w, http.StatusBadRequest, "progress must be between 0 and 100")
		return
	}

	token := middleware.BearerToken(r)
	if err := i.writer.RecordProgress(r.Context(), lessonID, req.Progress, token); err != nil {
		i.logger.Error("failed to queue progress write", zap.Int("lesson_id", lessonID), zap.Error(err))
		i.respondError(w, http.StatusInternalServerError, "failed to persist update")
		return
	}

	i.respondJSON(w, http.StatusAccepted, map[string]any{"ok": true, "queued": true})
}

func (i *Ingress) updatePreferences(w http.ResponseWriter, r *http.Request) {
	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		i.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := middleware.BearerToken(r)
	if err := i.writer.UpdatePreferences(r.Context(), payload, token); err != nil {
		i.logger.Error("failed to queue preference write", zap.Error(err))
		i.respondError(w, http.StatusInternalServerError, "failed to persist update")
		return
	}

	i.respondJSON(w, http.StatusAccepted, map[string]any{"ok": true, "queued": true})
}

func (i *Ingress) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		i.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (i *Ingress) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
