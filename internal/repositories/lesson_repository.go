package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID, including the original content
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, title, subject, grade_level, difficulty_level, original_content
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Subject,
		&lesson.GradeLevel,
		&lesson.DifficultyLevel,
		&lesson.OriginalContent,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetAll retrieves lessons filtered by grade level and, optionally, subject
func (r *lessonRepository) GetAll(ctx context.Context, gradeLevel int, subject string) ([]models.LessonListItem, error) {
	query := `
		SELECT id, title, subject, grade_level
		FROM lessons
		WHERE grade_level = ?
	`
	args := []any{gradeLevel}

	if subject != "" {
		query += " AND subject = ?"
		args = append(args, subject)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.LessonListItem
	for rows.Next() {
		var lesson models.LessonListItem
		err := rows.Scan(
			&lesson.ID,
			&lesson.Title,
			&lesson.Subject,
			&lesson.GradeLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}
