package offline

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Replayer sends one queued entry to the server.
type Replayer interface {
	Replay(ctx context.Context, entry Entry) error
}

// Report summarizes a flush pass.
type Report struct {
	Succeeded []int64 `json:"succeeded"`
	Failed    []int64 `json:"failed"`
}

// Reconciler drains the queue when connectivity allows. Passes are
// serialized so concurrent triggers (a write while a scheduled flush
// runs) cannot replay the same entry twice.
type Reconciler struct {
	mu      sync.Mutex
	queue   *Queue
	client  Replayer
	monitor *Monitor
	logger  *zap.Logger
}

// NewReconciler creates a reconciler over the given queue and client.
func NewReconciler(queue *Queue, client Replayer, monitor *Monitor, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		queue:   queue,
		client:  client,
		monitor: monitor,
		logger:  logger,
	}
}

// Flush replays all eligible entries in insertion order. A failing
// entry is rescheduled with backoff and does not stop later entries
// from being attempted. Flushing while offline is a no-op.
func (rc *Reconciler) Flush(ctx context.Context) (Report, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	var report Report
	if !rc.monitor.Online() {
		return report, nil
	}

	entries, err := rc.queue.Drain(ctx)
	if err != nil {
		return report, err
	}
	if len(entries) == 0 {
		return report, nil
	}

	rc.logger.Info("flushing pending updates", zap.Int("count", len(entries)))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := rc.client.Replay(ctx, entry); err != nil {
			rc.logger.Warn("replay failed",
				zap.Int64("entry_id", entry.ID),
				zap.String("kind", string(entry.Kind)),
				zap.Int("attempts", entry.Attempts+1),
				zap.Error(err))
			if markErr := rc.queue.MarkFailed(ctx, entry.ID, entry.Attempts); markErr != nil {
				rc.logger.Error("failed to reschedule entry", zap.Int64("entry_id", entry.ID), zap.Error(markErr))
			}
			report.Failed = append(report.Failed, entry.ID)
			continue
		}

		if err := rc.queue.Remove(ctx, entry.ID); err != nil {
			rc.logger.Error("failed to remove replayed entry", zap.Int64("entry_id", entry.ID), zap.Error(err))
			report.Failed = append(report.Failed, entry.ID)
			continue
		}
		report.Succeeded = append(report.Succeeded, entry.ID)
	}

	rc.logger.Info("flush finished",
		zap.Int("succeeded", len(report.Succeeded)),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}
