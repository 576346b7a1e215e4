package offline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	q, err := OpenQueue(filepath.Join(t.TempDir(), "queue.db"), 30*time.Second, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { q.Close() })
	return q
}

func TestQueue_EnqueueDrainOrder(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	first, err := q.Enqueue(ctx, KindProgress, "/api/v1/lessons/1/progress", []byte(`{"progress":60}`), "token-a")
	require.NoError(t, err)
	second, err := q.Enqueue(ctx, KindPreference, "/api/v1/users/preferences", []byte(`{"region":"Texas"}`), "token-a")
	require.NoError(t, err)
	third, err := q.Enqueue(ctx, KindProgress, "/api/v1/lessons/2/progress", []byte(`{"progress":100}`), "token-a")
	require.NoError(t, err)

	entries, err := q.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Replay preserves capture order
	assert.Equal(t, []int64{first, second, third}, []int64{entries[0].ID, entries[1].ID, entries[2].ID})
	assert.Equal(t, KindProgress, entries[0].Kind)
	assert.Equal(t, "/api/v1/users/preferences", entries[1].Target)
	assert.Equal(t, "token-a", entries[0].Token)
	assert.JSONEq(t, `{"progress":60}`, string(entries[0].Payload))
}

func TestQueue_Remove(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, KindProgress, "/api/v1/lessons/1/progress", []byte(`{"progress":60}`), "")
	require.NoError(t, err)

	require.NoError(t, q.Remove(ctx, id))

	entries, err := q.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQueue_MarkFailedDefersEntry(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, KindProgress, "/api/v1/lessons/1/progress", []byte(`{"progress":60}`), "")
	require.NoError(t, err)

	require.NoError(t, q.MarkFailed(ctx, id, 0))

	// The entry waits out its backoff and is not eligible now
	entries, err := q.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// But it is still pending, never dropped
	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQueue_MarkFailedBumpsAttempts(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, KindProgress, "/api/v1/lessons/1/progress", []byte(`{"progress":60}`), "")
	require.NoError(t, err)
	require.NoError(t, q.MarkFailed(ctx, id, 0))

	var attempts int
	require.NoError(t, q.db.Get(&attempts, `SELECT attempts FROM pending_updates WHERE id = ?`, id))
	assert.Equal(t, 1, attempts)
}

func TestQueue_BackoffCapped(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Enqueue(ctx, KindProgress, "/api/v1/lessons/1/progress", []byte(`{"progress":60}`), "")
	require.NoError(t, err)

	// Many prior attempts still schedule within the cap
	before := time.Now().UTC()
	require.NoError(t, q.MarkFailed(ctx, id, 50))

	var next time.Time
	require.NoError(t, q.db.Get(&next, `SELECT next_attempt_at FROM pending_updates WHERE id = ?`, id))
	assert.WithinDuration(t, before.Add(time.Hour), next, time.Minute)
}

func TestQueue_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.db")
	ctx := context.Background()

	q, err := OpenQueue(path, 30*time.Second, time.Hour)
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, KindProgress, "/api/v1/lessons/1/progress", []byte(`{"progress":60}`), "token-a")
	require.NoError(t, err)
	require.NoError(t, q.Close())

	reopened, err := OpenQueue(path, 30*time.Second, time.Hour)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/v1/lessons/1/progress", entries[0].Target)
	assert.Equal(t, "token-a", entries[0].Token)
}
