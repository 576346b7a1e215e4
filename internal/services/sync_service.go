package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edumorph/backend/internal/models"
)

// SyncSnapshotRepository defines methods for batch progress snapshots
type SyncSnapshotRepository interface {
	// Upsert stores the batch progress snapshot for a user, last write wins
	Upsert(ctx context.Context, userID int, progress map[string]int) error
	// Get retrieves the batch progress snapshot for a user;
	// models.ErrSnapshotNotFound when the user has never uploaded
	Get(ctx context.Context, userID int) (*models.SyncSnapshot, error)
}

type syncService struct {
	snapshotRepo SyncSnapshotRepository
}

// NewSyncService creates a new sync service
func NewSyncService(snapshotRepo SyncSnapshotRepository) *syncService {
	return &syncService{
		snapshotRepo: snapshotRepo,
	}
}

// Upload stores a batch progress snapshot uploaded by a device
func (s *syncService) Upload(ctx context.Context, userID int, progress map[string]int) error {
	if len(progress) == 0 {
		return fmt.Errorf("progress payload is required")
	}

	if err := s.snapshotRepo.Upsert(ctx, userID, progress); err != nil {
		return fmt.Errorf("failed to upload progress snapshot: %w", err)
	}

	return nil
}

// Download retrieves the batch progress snapshot for a user. Returns nil
// without error when the user has never uploaded.
func (s *syncService) Download(ctx context.Context, userID int) (*models.SyncSnapshot, error) {
	snapshot, err := s.snapshotRepo.Get(ctx, userID)
	if errors.Is(err, models.ErrSnapshotNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download progress snapshot: %w", err)
	}

	return snapshot, nil
}
