package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
	"github.com/inkwellbooks/bookshop-login/internal/login/store"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func stageChallenge(t *testing.T, st *Store, sessionID, username string, now time.Time, ttl time.Duration) {
	t.Helper()
	require.NoError(t, st.Challenges().Stage(context.Background(), domain.Challenge{
		SessionID: sessionID,
		Username:  username,
		StagedAt:  now,
		ExpiresAt: now.Add(ttl),
	}))
}

func TestChallengeLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(t)
	now := time.Now().UTC()

	stageChallenge(t, st, "s1", "alice", now, 5*time.Minute)

	got, err := st.Challenges().Get(ctx, "s1", now)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, 0, got.Attempts)

	t.Run("expired records look absent", func(t *testing.T) {
		_, err := st.Challenges().Get(ctx, "s1", now.Add(6*time.Minute))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("restaging overwrites and resets attempts", func(t *testing.T) {
		_, err := st.Challenges().IncrementAttempts(ctx, "s1")
		require.NoError(t, err)

		stageChallenge(t, st, "s1", "bob", now.Add(time.Minute), 5*time.Minute)

		got, err := st.Challenges().Get(ctx, "s1", now.Add(time.Minute))
		require.NoError(t, err)
		require.Equal(t, "bob", got.Username)
		require.Equal(t, 0, got.Attempts)
	})
}

func TestChallengeConsumeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(t)
	now := time.Now().UTC()

	stageChallenge(t, st, "s1", "alice", now, 5*time.Minute)

	require.NoError(t, st.Challenges().Consume(ctx, "s1"))
	require.ErrorIs(t, st.Challenges().Consume(ctx, "s1"), store.ErrNotFound)
}

func TestChallengeIncrementAttempts(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(t)
	now := time.Now().UTC()

	stageChallenge(t, st, "s1", "alice", now, 5*time.Minute)

	for want := 1; want <= 3; want++ {
		got, err := st.Challenges().IncrementAttempts(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, want, got.Attempts)
	}

	_, err := st.Challenges().IncrementAttempts(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteExpired(t *testing.T) {
	ctx := context.Background()
	st := newMemStore(t)
	now := time.Now().UTC()

	stageChallenge(t, st, "live", "alice", now, 5*time.Minute)
	stageChallenge(t, st, "stale", "bob", now.Add(-10*time.Minute), 5*time.Minute)

	require.NoError(t, st.Challenges().DeleteExpired(ctx, now))

	_, err := st.Challenges().Get(ctx, "live", now)
	require.NoError(t, err)
	_, err = st.Challenges().Get(ctx, "stale", now)
	require.ErrorIs(t, err, store.ErrNotFound)
}
