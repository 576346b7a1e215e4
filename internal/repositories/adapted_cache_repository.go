package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

type adaptedCacheRepository struct {
	db *sql.DB
}

// NewAdaptedCacheRepository creates a new adapted content cache repository
func NewAdaptedCacheRepository(db *sql.DB) *adaptedCacheRepository {
	return &adaptedCacheRepository{
		db: db,
	}
}

// Lookup retrieves the cached adaptation for a lesson and cache key.
// Returns nil without error when no entry exists.
func (r *adaptedCacheRepository) Lookup(ctx context.Context, lessonID int, key models.CacheKey) (*models.AdaptedEntry, error) {
	query := `
		SELECT content, created_at
		FROM adapted_cache
		WHERE lesson_id = ? AND language = ? AND region = ? AND grade = ?
		LIMIT 1
	`

	var entry models.AdaptedEntry
	err := r.db.QueryRowContext(ctx, query, lessonID, key.Language, key.Region, key.Grade).Scan(
		&entry.Content,
		&entry.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lookup adapted cache: %w", err)
	}

	return &entry, nil
}

// Store writes an adaptation under the cache key. Two requests for the same
// (lesson, key) may race on a miss; both writes are accepted and the last
// one wins, which the unique key plus upsert makes safe.
func (r *adaptedCacheRepository) Store(ctx context.Context, lessonID int, key models.CacheKey, content string) error {
	query := `
		INSERT INTO adapted_cache (lesson_id, language, region, grade, content)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE content = VALUES(content)
	`

	_, err := r.db.ExecContext(ctx, query, lessonID, key.Language, key.Region, key.Grade, content)
	if err != nil {
		return fmt.Errorf("failed to store adapted cache entry: %w", err)
	}

	return nil
}
