package services

import (
	"context"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

// PreferenceRepository defines methods for user preference data access
type PreferenceRepository interface {
	// GetByUserID retrieves the stored preferences for a user, with defaults
	// when the user has never saved any
	GetByUserID(ctx context.Context, userID int) (*models.UserPreferences, error)
	// Upsert stores the preferences for a user, last write wins
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}

var validLearningStyles = map[string]bool{
	models.LearningStyleVisual:      true,
	models.LearningStyleAuditory:    true,
	models.LearningStyleKinesthetic: true,
}

type preferenceService struct {
	prefRepo PreferenceRepository
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(prefRepo PreferenceRepository) *preferenceService {
	return &preferenceService{
		prefRepo: prefRepo,
	}
}

// Get retrieves the preferences for a user
func (s *preferenceService) Get(ctx context.Context, userID int) (*models.UserPreferences, error) {
	prefs, err := s.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return prefs, nil
}

// Update applies a partial preference update on top of the stored values
func (s *preferenceService) Update(ctx context.Context, userID int, req models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	prefs, err := s.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	if req.PreferredLanguage != "" {
		prefs.PreferredLanguage = req.PreferredLanguage
	}
	if req.Region != "" {
		prefs.Region = req.Region
	}
	if req.Grade != nil {
		if *req.Grade < 1 || *req.Grade > 12 {
			return nil, fmt.Errorf("grade must be between 1 and 12")
		}
		prefs.Grade = *req.Grade
	}
	if req.LearningStyle != "" {
		if !validLearningStyles[req.LearningStyle] {
			return nil, fmt.Errorf("invalid learning style %q", req.LearningStyle)
		}
		prefs.LearningStyle = req.LearningStyle
	}

	if err := s.prefRepo.Upsert(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}

	return prefs, nil
}
