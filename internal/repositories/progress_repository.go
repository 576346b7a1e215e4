package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Create inserts a new progress record
func (r *progressRepository) Create(ctx context.Context, progress *models.Progress) (int, error) {
	query := `
		INSERT INTO progress (user_id, lesson_id, status, score, last_synced)
		VALUES (?, ?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query, progress.UserID, progress.LessonID, progress.Status, progress.Score)
	if err != nil {
		return 0, fmt.Errorf("failed to create progress record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get progress record id: %w", err)
	}

	return int(id), nil
}

// GetByUser retrieves the most recent progress records for a user
func (r *progressRepository) GetByUser(ctx context.Context, userID, limit int) ([]models.Progress, error) {
	query := `
		SELECT id, user_id, lesson_id, status, score, last_synced, created_at
		FROM progress
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var items []models.Progress
	for rows.Next() {
		var p models.Progress
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.LessonID,
			&p.Status,
			&p.Score,
			&p.LastSynced,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress record: %w", err)
		}
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}
