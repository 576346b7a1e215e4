package offline

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Writer captures server writes through a single path: persist to the
// queue first, then flush immediately when the network is up. Online
// and offline writes therefore take the same code path; online just
// shortens the queue's residence time to one flush pass.
type Writer struct {
	queue      *Queue
	reconciler *Reconciler
	monitor    *Monitor
	logger     *zap.Logger
}

// NewWriter creates a writer over the given queue and reconciler.
func NewWriter(queue *Queue, reconciler *Reconciler, monitor *Monitor, logger *zap.Logger) *Writer {
	return &Writer{
		queue:      queue,
		reconciler: reconciler,
		monitor:    monitor,
		logger:     logger,
	}
}

// RecordProgress queues a lesson progress write for the server.
func (w *Writer) RecordProgress(ctx context.Context, lessonID int, progress int, token string) error {
	payload, err := json.Marshal(map[string]int{"progress": progress})
	if err != nil {
		return fmt.Errorf("failed to encode progress payload: %w", err)
	}
	target := fmt.Sprintf("/api/v1/lessons/%d/progress", lessonID)
	return w.write(ctx, KindProgress, target, payload, token)
}

// UpdatePreferences queues a preference write for the server. The
// payload is the JSON request body as the API expects it.
func (w *Writer) UpdatePreferences(ctx context.Context, payload []byte, token string) error {
	return w.write(ctx, KindPreference, "/api/v1/users/preferences", payload, token)
}

func (w *Writer) write(ctx context.Context, kind EntryKind, target string, payload []byte, token string) error {
	id, err := w.queue.Enqueue(ctx, kind, target, payload, token)
	if err != nil {
		return err
	}
	w.logger.Debug("update queued", zap.Int64("entry_id", id), zap.String("kind", string(kind)))

	if w.monitor.Online() {
		if _, err := w.reconciler.Flush(ctx); err != nil {
			w.logger.Warn("immediate flush failed, entry retained", zap.Int64("entry_id", id), zap.Error(err))
		}
	}
	return nil
}
