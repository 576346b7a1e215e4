package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/edumorph/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProgressTestRepository(t *testing.T) (*progressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProgressRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestProgressRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO progress`).
			WithArgs(7, 1, models.ProgressCompleted, 100).
			WillReturnResult(sqlmock.NewResult(10, 1))

		id, err := repo.Create(context.Background(), &models.Progress{
			UserID:   7,
			LessonID: 1,
			Status:   models.ProgressCompleted,
			Score:    100,
		})

		assert.NoError(t, err)
		assert.Equal(t, 10, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO progress`).
			WithArgs(7, 1, models.ProgressStarted, 40).
			WillReturnError(errors.New("database error"))

		id, err := repo.Create(context.Background(), &models.Progress{
			UserID:   7,
			LessonID: 1,
			Status:   models.ProgressStarted,
			Score:    40,
		})

		assert.Error(t, err)
		assert.Zero(t, id)
		assert.Contains(t, err.Error(), "failed to create progress record")
	})
}

func TestProgressRepository_GetByUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "user_id", "lesson_id", "status", "score", "last_synced", "created_at"}).
			AddRow(2, 7, 3, "completed", 100, now, now).
			AddRow(1, 7, 1, "started", 40, now, now)
		mock.ExpectQuery(`SELECT.*FROM progress.*WHERE user_id = \?.*ORDER BY created_at DESC`).
			WithArgs(7, 50).
			WillReturnRows(rows)

		items, err := repo.GetByUser(context.Background(), 7, 50)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, 3, items[0].LessonID)
		assert.Equal(t, models.ProgressCompleted, items[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no records", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "user_id", "lesson_id", "status", "score", "last_synced", "created_at"})
		mock.ExpectQuery(`SELECT.*FROM progress`).
			WithArgs(7, 50).
			WillReturnRows(rows)

		items, err := repo.GetByUser(context.Background(), 7, 50)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT.*FROM progress`).
			WithArgs(7, 50).
			WillReturnError(errors.New("database error"))

		items, err := repo.GetByUser(context.Background(), 7, 50)

		assert.Error(t, err)
		assert.Nil(t, items)
	})
}
