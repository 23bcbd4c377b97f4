package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humanize-ai/api/internal/llm/types"
	"humanize-ai/api/internal/session"
)

func openTestRepo(t *testing.T, ttl time.Duration) *SessionRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSessionRepo(db, ttl)
	require.NoError(t, r.EnsureSchema(context.Background()))
	return r
}

func TestSessionRepo_RoundTrip(t *testing.T) {
	r := openTestRepo(t, time.Hour)
	ctx := context.Background()
	id := uuid.NewString()

	st, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.State{}, st)

	det := types.DetectResult{Score: 85, Label: types.LabelAI}
	require.NoError(t, r.Put(ctx, id, session.State{HumanizedOutput: "hello"}.WithDetection(&det)))

	st, err = r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", st.HumanizedOutput)
	require.NotNil(t, st.Detection)
	assert.Equal(t, det, *st.Detection)

	require.NoError(t, r.Put(ctx, id, st.WithDetection(nil)))
	st, err = r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", st.HumanizedOutput)
	assert.Nil(t, st.Detection)
}

func TestSessionRepo_Expiry(t *testing.T) {
	r := openTestRepo(t, time.Hour)
	ctx := context.Background()
	id := uuid.NewString()
	require.NoError(t, r.Put(ctx, id, session.State{HumanizedOutput: "stale"}))

	_, err := r.DB.ExecContext(ctx, `update web_sessions set updated_at = now() - interval '2 hours' where id=$1`, id)
	require.NoError(t, err)

	st, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.State{}, st)

	n, err := r.Sweep(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
}

func TestSessionRepo_UpdateKeepsOtherSlot(t *testing.T) {
	r := openTestRepo(t, time.Hour)
	ctx := context.Background()
	id := uuid.NewString()

	st, err := r.Update(ctx, id, func(cur session.State) session.State { return cur.RecordHumanize("first", nil) })
	require.NoError(t, err)
	assert.Equal(t, "first", st.HumanizedOutput)

	det := types.DetectResult{Score: 30, Label: types.LabelHuman}
	st, err = r.Update(ctx, id, func(cur session.State) session.State { return cur.RecordDetection(det, nil) })
	require.NoError(t, err)
	assert.Equal(t, "first", st.HumanizedOutput)
	require.NotNil(t, st.Detection)
	assert.Equal(t, det, *st.Detection)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, st, got)
}
