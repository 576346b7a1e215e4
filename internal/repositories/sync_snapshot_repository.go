package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

type syncSnapshotRepository struct {
	db *sql.DB
}

// NewSyncSnapshotRepository creates a new sync snapshot repository
func NewSyncSnapshotRepository(db *sql.DB) *syncSnapshotRepository {
	return &syncSnapshotRepository{
		db: db,
	}
}

// Upsert stores the batch progress snapshot for a user, last write wins
func (r *syncSnapshotRepository) Upsert(ctx context.Context, userID int, progress map[string]int) error {
	payload, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress snapshot: %w", err)
	}

	query := `
		INSERT INTO sync_snapshots (user_id, progress, last_synced)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE progress = VALUES(progress), last_synced = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, payload); err != nil {
		return fmt.Errorf("failed to upsert sync snapshot: %w", err)
	}

	return nil
}

// Get retrieves the batch progress snapshot for a user
func (r *syncSnapshotRepository) Get(ctx context.Context, userID int) (*models.SyncSnapshot, error) {
	query := `
		SELECT user_id, progress, last_synced
		FROM sync_snapshots
		WHERE user_id = ?
		LIMIT 1
	`

	var snapshot models.SyncSnapshot
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&snapshot.UserID,
		&payload,
		&snapshot.LastSynced,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync snapshot: %w", err)
	}

	if err := json.Unmarshal(payload, &snapshot.Progress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal progress snapshot: %w", err)
	}

	return &snapshot, nil
}
