package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:", time.Hour)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "GT|X|2000:2020", recs("GTM")))

	got, ok := s.Get(ctx, "GT|X|2000:2020")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "GTM", got[0].CountryCode)
	assert.Equal(t, 2020, got[0].Year)
	assert.Equal(t, 1, s.Len())

	_, ok = s.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestSQLiteStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:", time.Hour)
	require.NoError(t, err)
	defer s.Close()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	require.NoError(t, s.Set(ctx, "old", recs("HND")))

	s.now = func() time.Time { return base.Add(30 * time.Minute) }
	require.NoError(t, s.Set(ctx, "new", recs("SLV")))

	s.now = func() time.Time { return base.Add(time.Hour) }
	_, ok := s.Get(ctx, "old")
	assert.False(t, ok, "expired entry must not be served")

	n, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Len())

	_, ok = s.Get(ctx, "new")
	assert.True(t, ok)
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := OpenSQLite(ctx, path, time.Hour)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", recs("CRI")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path, time.Hour)
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "CRI", got[0].CountryCode)
}
