package offline

import (
	"context"
	"fmt"
	"time"

	"github.com/edumorph/backend/internal/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// EntryKind identifies what a queued entry writes on the server.
type EntryKind string

const (
	KindProgress   EntryKind = "progress"
	KindPreference EntryKind = "preference"
)

// Entry is a durable record of a write captured while offline.
type Entry struct {
	ID            int64     `db:"id" json:"id"`
	Kind          EntryKind `db:"kind" json:"kind"`
	Target        string    `db:"target" json:"target"`
	Payload       []byte    `db:"payload" json:"payload"`
	Token         string    `db:"token" json:"-"`
	Attempts      int       `db:"attempts" json:"attempts"`
	NextAttemptAt time.Time `db:"next_attempt_at" json:"next_attempt_at"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

const queueSchema = `
CREATE TABLE IF NOT EXISTS pending_updates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	target TEXT NOT NULL,
	payload BLOB NOT NULL,
	token TEXT NOT NULL DEFAULT '',
	attempts INTEGER NOT NULL DEFAULT 0,
	next_attempt_at TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// Queue is a durable FIFO of pending server writes backed by a local
// SQLite file. Entries survive process restarts and are replayed in
// insertion order.
type Queue struct {
	db          *sqlx.DB
	backoffBase time.Duration
	backoffMax  time.Duration
}

// OpenQueue opens (creating if needed) the queue database at path.
func OpenQueue(path string, backoffBase, backoffMax time.Duration) (*Queue, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open queue store: %w", err)
	}
	if _, err := db.Exec(queueSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init queue schema: %w", err)
	}
	return &Queue{db: db, backoffBase: backoffBase, backoffMax: backoffMax}, nil
}

// Close closes the underlying database.
func (q *Queue) Close() error {
	return q.db.Close()
}

// Enqueue persists an entry. The write must land on disk before the
// caller reports success to the user.
func (q *Queue) Enqueue(ctx context.Context, kind EntryKind, target string, payload []byte, token string) (int64, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO pending_updates (kind, target, payload, token, attempts, next_attempt_at, created_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		kind, target, payload, token, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrQueuePersist, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrQueuePersist, err)
	}
	return id, nil
}

// Drain returns a snapshot of entries eligible to replay now, in
// insertion order. Entries enqueued after the snapshot is taken are
// left for the next pass.
func (q *Queue) Drain(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := q.db.SelectContext(ctx, &entries,
		`SELECT id, kind, target, payload, token, attempts, next_attempt_at, created_at
		 FROM pending_updates
		 WHERE next_attempt_at <= ?
		 ORDER BY id ASC`,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending updates: %w", err)
	}
	return entries, nil
}

// Len returns the number of pending entries, eligible or not.
func (q *Queue) Len(ctx context.Context) (int, error) {
	var n int
	if err := q.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM pending_updates`); err != nil {
		return 0, fmt.Errorf("failed to count pending updates: %w", err)
	}
	return n, nil
}

// Remove deletes a replayed entry.
func (q *Queue) Remove(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM pending_updates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove entry %d: %w", id, err)
	}
	return nil
}

// MarkFailed bumps the attempt counter and pushes the next attempt out
// by base*2^attempts, capped at the configured maximum. The entry is
// never dropped.
func (q *Queue) MarkFailed(ctx context.Context, id int64, attempts int) error {
	delay := q.backoffBase
	for i := 0; i < attempts && delay < q.backoffMax; i++ {
		delay *= 2
	}
	if delay > q.backoffMax {
		delay = q.backoffMax
	}
	_, err := q.db.ExecContext(ctx,
		`UPDATE pending_updates SET attempts = attempts + 1, next_attempt_at = ? WHERE id = ?`,
		time.Now().UTC().Add(delay), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark entry %d: %w", id, err)
	}
	return nil
}
