package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

type preferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new user preference repository
func NewPreferenceRepository(db *sql.DB) *preferenceRepository {
	return &preferenceRepository{
		db: db,
	}
}

// GetByUserID retrieves the stored preferences for a user.
// Returns defaults when the user has never saved preferences, so that the
// adapted-lesson endpoint always has a complete learner context to fall
// back on.
func (r *preferenceRepository) GetByUserID(ctx context.Context, userID int) (*models.UserPreferences, error) {
	query := `
		SELECT user_id, name, preferred_language, region, grade, learning_style, updated_at
		FROM user_preferences
		WHERE user_id = ?
		LIMIT 1
	`

	var prefs models.UserPreferences
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.Name,
		&prefs.PreferredLanguage,
		&prefs.Region,
		&prefs.Grade,
		&prefs.LearningStyle,
		&prefs.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return defaultPreferences(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user preferences: %w", err)
	}

	return &prefs, nil
}

// Upsert stores the preferences for a user, last write wins
func (r *preferenceRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, name, preferred_language, region, grade, learning_style)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			preferred_language = VALUES(preferred_language),
			region = VALUES(region),
			grade = VALUES(grade),
			learning_style = VALUES(learning_style)
	`

	_, err := r.db.ExecContext(ctx, query,
		prefs.UserID,
		prefs.Name,
		prefs.PreferredLanguage,
		prefs.Region,
		prefs.Grade,
		prefs.LearningStyle,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user preferences: %w", err)
	}

	return nil
}

func defaultPreferences(userID int) *models.UserPreferences {
	return &models.UserPreferences{
		UserID:            userID,
		PreferredLanguage: "en",
		Region:            "Punjab",
		Grade:             5,
		LearningStyle:     models.LearningStyleAuditory,
	}
}
