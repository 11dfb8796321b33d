package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/words-without-friends/internal/game"
)

func summary(seq uint64, master string, at time.Time) game.Summary {
	return game.Summary{
		Seq:        seq,
		Master:     master,
		Candidates: 10,
		Found:      10,
		Guesses:    12,
		Matched:    10,
		StartedAt:  at.Add(-time.Minute),
		FinishedAt: at,
	}
}

// exercise runs the same contract checks against any Store.
func exercise(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.Save(ctx, summary(1, "PLANETS", base)))
	require.NoError(t, st.Save(ctx, summary(2, "MASTERS", base.Add(time.Minute))))
	cheated := summary(3, "DANGERS", base.Add(2*time.Minute))
	cheated.Cheated = true
	require.NoError(t, st.Save(ctx, cheated))
	// Duplicate seq keeps the first.
	require.NoError(t, st.Save(ctx, summary(1, "OTHERSS", base.Add(3*time.Minute))))

	got, err := st.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "MASTERS", got.Master)
	assert.Equal(t, 12, got.Guesses)
	assert.True(t, got.FinishedAt.Equal(base.Add(time.Minute)))

	got, err = st.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "PLANETS", got.Master)

	_, err = st.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	recent, err := st.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint64(3), recent[0].Seq)
	assert.True(t, recent[0].Cheated)
	assert.Equal(t, uint64(2), recent[1].Seq)
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore(0)
	defer st.Close()
	exercise(t, st)
}

func TestMemoryStoreLimit(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(2)
	now := time.Now()
	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, st.Save(ctx, summary(i, "PLANETS", now)))
	}
	all, err := st.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, uint64(5), all[0].Seq)
	assert.Equal(t, uint64(4), all[1].Seq)

	_, err = st.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "rounds.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()
	exercise(t, st)
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), summary(1, "PLANETS", time.Now())))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()

	// A new run reads only its own rounds; the earlier row is kept.
	_, err = st.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
	recent, err := st.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	var rows int
	require.NoError(t, st.(*sqliteStore).db.QueryRow(`SELECT COUNT(*) FROM rounds`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLiteRecentAndGetAgreeAcrossRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rounds.db")
	now := time.Now().UTC()

	old, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, old.Save(ctx, summary(1, "PLANETS", now)))
	require.NoError(t, old.Save(ctx, summary(2, "MASTERS", now.Add(time.Second))))
	require.NoError(t, old.Close())

	st, err := OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.Save(ctx, summary(1, "DANGERS", now.Add(time.Minute))))

	recent, err := st.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	for _, r := range recent {
		got, err := st.Get(ctx, r.Seq)
		require.NoError(t, err)
		assert.Equal(t, r.Master, got.Master)
	}
	assert.Equal(t, "DANGERS", recent[0].Master)
}
