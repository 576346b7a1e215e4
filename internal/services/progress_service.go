package services

import (
	"context"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

// ProgressRepository defines methods for progress data access
type ProgressRepository interface {
	// Create inserts a new progress record and returns its ID
	Create(ctx context.Context, progress *models.Progress) (int, error)
	// GetByUser retrieves the most recent progress records for a user
	GetByUser(ctx context.Context, userID, limit int) ([]models.Progress, error)
}

const progressReportLimit = 50

type progressService struct {
	progressRepo ProgressRepository
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo ProgressRepository) *progressService {
	return &progressService{
		progressRepo: progressRepo,
	}
}

// Record stores a progress record for a user
func (s *progressService) Record(ctx context.Context, userID int, req models.RecordProgressRequest) (int, error) {
	if req.LessonID < 1 {
		return 0, fmt.Errorf("lessonId is required")
	}

	status := req.Status
	if status == "" {
		status = models.ProgressCompleted
	}
	if status != models.ProgressStarted && status != models.ProgressCompleted {
		return 0, fmt.Errorf("invalid status %q", status)
	}

	progress := &models.Progress{
		UserID:   userID,
		LessonID: req.LessonID,
		Status:   status,
		Score:    req.Score,
	}

	id, err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		return 0, fmt.Errorf("failed to record progress: %w", err)
	}

	return id, nil
}

// RecordLessonProgress stores a progress percentage for a lesson. This is
// the replay target for queued offline writes: a percentage of 100 marks
// the lesson completed.
func (s *progressService) RecordLessonProgress(ctx context.Context, userID, lessonID, percent int) (int, error) {
	if percent < 0 || percent > 100 {
		return 0, fmt.Errorf("progress must be between 0 and 100")
	}

	status := models.ProgressStarted
	if percent >= 100 {
		status = models.ProgressCompleted
	}

	return s.Record(ctx, userID, models.RecordProgressRequest{
		LessonID: lessonID,
		Status:   status,
		Score:    percent,
	})
}

// Summary retrieves the recent progress report for a user
func (s *progressService) Summary(ctx context.Context, userID int) (*models.ProgressSummary, error) {
	items, err := s.progressRepo.GetByUser(ctx, userID, progressReportLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	completed := 0
	for _, item := range items {
		if item.Status == models.ProgressCompleted {
			completed++
		}
	}

	return &models.ProgressSummary{
		Count:     len(items),
		Completed: completed,
		Items:     items,
	}, nil
}
