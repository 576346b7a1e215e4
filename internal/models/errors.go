package models

import "errors"

// Sentinel errors for the adaptation and offline-sync paths.
// Provider- and translation-level failures are converted into fallback
// attempts inside the orchestrator; only ErrAdaptationFailed reaches callers
// of the serving path.
var (
	// ErrLessonNotFound is returned when a lesson does not exist
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrAdaptationFailed is returned when every adaptation provider failed.
	// The caller must know adaptation did not occur; the original content is
	// never silently served in its place.
	ErrAdaptationFailed = errors.New("adaptation failed")

	// ErrQueuePersist is returned when a pending update could not be stored
	// durably. This is fatal to the write and must surface to the user.
	ErrQueuePersist = errors.New("failed to persist pending update")

	// ErrSnapshotNotFound is returned when no sync snapshot exists for a user
	ErrSnapshotNotFound = errors.New("sync snapshot not found")
)
