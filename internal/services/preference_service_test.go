package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edumorph/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

// mockPreferenceRepository is a mock implementation of PreferenceRepository
type mockPreferenceRepository struct {
	prefs     *models.UserPreferences
	getErr    error
	upsertErr error
	upserted  *models.UserPreferences
}

func (m *mockPreferenceRepository) GetByUserID(ctx context.Context, userID int) (*models.UserPreferences, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.prefs, nil
}

func (m *mockPreferenceRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = prefs
	return nil
}

func storedPrefs() *models.UserPreferences {
	return &models.UserPreferences{
		UserID:            7,
		Name:              "Asha",
		PreferredLanguage: "en",
		Region:            "Punjab",
		Grade:             5,
		LearningStyle:     models.LearningStyleAuditory,
	}
}

func TestPreferenceService_Get(t *testing.T) {
	svc := NewPreferenceService(&mockPreferenceRepository{prefs: storedPrefs()})

	prefs, err := svc.Get(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, "en", prefs.PreferredLanguage)
	assert.Equal(t, "Punjab", prefs.Region)
}

func TestPreferenceService_Update(t *testing.T) {
	grade := func(g int) *int { return &g }

	tests := []struct {
		name          string
		req           models.UpdatePreferencesRequest
		expectedError bool
		errorContains string
		check         func(t *testing.T, prefs *models.UserPreferences)
	}{
		{
			name: "partial update keeps untouched fields",
			req:  models.UpdatePreferencesRequest{PreferredLanguage: "pa"},
			check: func(t *testing.T, prefs *models.UserPreferences) {
				assert.Equal(t, "pa", prefs.PreferredLanguage)
				assert.Equal(t, "Punjab", prefs.Region)
				assert.Equal(t, 5, prefs.Grade)
			},
		},
		{
			name: "full update",
			req: models.UpdatePreferencesRequest{
				PreferredLanguage: "es",
				Region:            "Texas",
				Grade:             grade(6),
				LearningStyle:     models.LearningStyleVisual,
			},
			check: func(t *testing.T, prefs *models.UserPreferences) {
				assert.Equal(t, "es", prefs.PreferredLanguage)
				assert.Equal(t, "Texas", prefs.Region)
				assert.Equal(t, 6, prefs.Grade)
				assert.Equal(t, models.LearningStyleVisual, prefs.LearningStyle)
			},
		},
		{
			name:          "grade too low",
			req:           models.UpdatePreferencesRequest{Grade: grade(0)},
			expectedError: true,
			errorContains: "grade must be between 1 and 12",
		},
		{
			name:          "grade too high",
			req:           models.UpdatePreferencesRequest{Grade: grade(13)},
			expectedError: true,
			errorContains: "grade must be between 1 and 12",
		},
		{
			name:          "invalid learning style",
			req:           models.UpdatePreferencesRequest{LearningStyle: "tactile"},
			expectedError: true,
			errorContains: "invalid learning style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockPreferenceRepository{prefs: storedPrefs()}
			svc := NewPreferenceService(repo)

			prefs, err := svc.Update(context.Background(), 7, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, repo.upserted)
			} else {
				assert.NoError(t, err)
				tt.check(t, prefs)
				assert.Equal(t, prefs, repo.upserted)
			}
		})
	}
}

func TestPreferenceService_Update_RepositoryErrors(t *testing.T) {
	svc := NewPreferenceService(&mockPreferenceRepository{getErr: errors.New("database error")})
	_, err := svc.Update(context.Background(), 7, models.UpdatePreferencesRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get preferences")

	svc = NewPreferenceService(&mockPreferenceRepository{prefs: storedPrefs(), upsertErr: errors.New("database error")})
	_, err = svc.Update(context.Background(), 7, models.UpdatePreferencesRequest{Region: "Texas"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update preferences")
}
