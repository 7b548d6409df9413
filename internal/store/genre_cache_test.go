package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()

	s, err := New(nil, ttl)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestGenreCache_RoundTrip(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx := context.Background()

	cached, err := s.GetCachedGenres(ctx, "5907")
	require.NoError(t, err)
	assert.Nil(t, cached)

	require.NoError(t, s.SetCachedGenres(ctx, "5907", []string{"fantasy", "classics", "fantasy"}))

	cached, err = s.GetCachedGenres(ctx, "5907")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, []string{"fantasy", "classics", "fantasy"}, cached.Genres)
	assert.WithinDuration(t, time.Now(), cached.FetchedAt, time.Minute)

	count, err := s.CountCachedGenres()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGenreCache_EmptyListIsAHit(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.SetCachedGenres(ctx, "1", []string{}))

	cached, err := s.GetCachedGenres(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.NotNil(t, cached.Genres)
	assert.Empty(t, cached.Genres)
}


func TestGenreCache_Expires(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a TTL to pass")
	}

	s := setupTestStore(t, time.Second)
	ctx := context.Background()

	require.NoError(t, s.SetCachedGenres(ctx, "1", []string{"horror"}))
	time.Sleep(2100 * time.Millisecond)

	cached, err := s.GetCachedGenres(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestGenreCache_CanceledContext(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetCachedGenres(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.SetCachedGenres(ctx, "1", nil), context.Canceled)
}
