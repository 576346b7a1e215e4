package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edumorph/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

// mockProgressRepository is a mock implementation of ProgressRepository
type mockProgressRepository struct {
	id        int
	items     []models.Progress
	createErr error
	getErr    error
	created   *models.Progress
}

func (m *mockProgressRepository) Create(ctx context.Context, progress *models.Progress) (int, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.created = progress
	return m.id, nil
}

func (m *mockProgressRepository) GetByUser(ctx context.Context, userID, limit int) ([]models.Progress, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.items, nil
}

func TestProgressService_Record(t *testing.T) {
	tests := []struct {
		name           string
		req            models.RecordProgressRequest
		repo           *mockProgressRepository
		expectedError  bool
		errorContains  string
		expectedStatus models.ProgressStatus
	}{
		{
			name:           "success with explicit status",
			req:            models.RecordProgressRequest{LessonID: 1, Status: models.ProgressStarted, Score: 40},
			repo:           &mockProgressRepository{id: 10},
			expectedStatus: models.ProgressStarted,
		},
		{
			name:           "status defaults to completed",
			req:            models.RecordProgressRequest{LessonID: 1, Score: 100},
			repo:           &mockProgressRepository{id: 11},
			expectedStatus: models.ProgressCompleted,
		},
		{
			name:          "missing lesson id",
			req:           models.RecordProgressRequest{Status: models.ProgressCompleted},
			repo:          &mockProgressRepository{},
			expectedError: true,
			errorContains: "lessonId is required",
		},
		{
			name:          "invalid status",
			req:           models.RecordProgressRequest{LessonID: 1, Status: "paused"},
			repo:          &mockProgressRepository{},
			expectedError: true,
			errorContains: "invalid status",
		},
		{
			name:          "repository error",
			req:           models.RecordProgressRequest{LessonID: 1},
			repo:          &mockProgressRepository{createErr: errors.New("database error")},
			expectedError: true,
			errorContains: "failed to record progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProgressService(tt.repo)

			id, err := svc.Record(context.Background(), 7, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.repo.id, id)
				assert.Equal(t, tt.expectedStatus, tt.repo.created.Status)
				assert.Equal(t, 7, tt.repo.created.UserID)
			}
		})
	}
}

func TestProgressService_RecordLessonProgress(t *testing.T) {
	tests := []struct {
		name           string
		percent        int
		expectedError  bool
		expectedStatus models.ProgressStatus
	}{
		{name: "partial progress stays started", percent: 60, expectedStatus: models.ProgressStarted},
		{name: "full progress marks completed", percent: 100, expectedStatus: models.ProgressCompleted},
		{name: "zero progress", percent: 0, expectedStatus: models.ProgressStarted},
		{name: "negative percent rejected", percent: -1, expectedError: true},
		{name: "over 100 rejected", percent: 101, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProgressRepository{id: 5}
			svc := NewProgressService(repo)

			id, err := svc.RecordLessonProgress(context.Background(), 7, 3, tt.percent)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, repo.created)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 5, id)
				assert.Equal(t, tt.expectedStatus, repo.created.Status)
				assert.Equal(t, tt.percent, repo.created.Score)
			}
		})
	}
}

func TestProgressService_Summary(t *testing.T) {
	repo := &mockProgressRepository{
		items: []models.Progress{
			{ID: 1, LessonID: 1, Status: models.ProgressCompleted},
			{ID: 2, LessonID: 2, Status: models.ProgressStarted},
			{ID: 3, LessonID: 3, Status: models.ProgressCompleted},
		},
	}
	svc := NewProgressService(repo)

	summary, err := svc.Summary(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 2, summary.Completed)
	assert.Len(t, summary.Items, 3)
}

func TestProgressService_Summary_RepositoryError(t *testing.T) {
	svc := NewProgressService(&mockProgressRepository{getErr: errors.New("database error")})

	summary, err := svc.Summary(context.Background(), 7)

	assert.Error(t, err)
	assert.Nil(t, summary)
	assert.Contains(t, err.Error(), "failed to get progress")
}
