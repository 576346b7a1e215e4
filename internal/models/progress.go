package models

import "time"

// ProgressStatus is the completion state of a lesson for a user
type ProgressStatus string

const (
	ProgressStarted   ProgressStatus = "started"
	ProgressCompleted ProgressStatus = "completed"
)

// Progress represents one progress record for a (user, lesson) pair.
// Uniqueness per pair is not enforced; last write wins.
type Progress struct {
	ID         int            `json:"id"`
	UserID     int            `json:"userId"`
	LessonID   int            `json:"lessonId"`
	Status     ProgressStatus `json:"status"`
	Score      int            `json:"score"`
	LastSynced time.Time      `json:"lastSynced"`
	CreatedAt  time.Time      `json:"createdAt,omitempty"`
}

// RecordProgressRequest represents a request to record progress
type RecordProgressRequest struct {
	LessonID int            `json:"lessonId"`
	Status   ProgressStatus `json:"status,omitempty"`
	Score    int            `json:"score,omitempty"`
}

// LessonProgressRequest represents the per-lesson progress replay payload
type LessonProgressRequest struct {
	Progress int `json:"progress"`
}

// ProgressSummary represents the progress report for a user
type ProgressSummary struct {
	Count     int        `json:"count"`
	Completed int        `json:"completed"`
	Items     []Progress `json:"items"`
}

// SyncUploadRequest is a batch progress payload uploaded by a device
type SyncUploadRequest struct {
	Progress map[string]int `json:"progress"`
}

// SyncSnapshot is the server-held batch progress state for a user
type SyncSnapshot struct {
	UserID     int            `json:"userId"`
	Progress   map[string]int `json:"progress"`
	LastSynced time.Time      `json:"lastSynced"`
}
