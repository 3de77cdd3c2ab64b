package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, time.Hour), mr
}

func TestProfileDefaultsWhenUnset(t *testing.T) {
	store, _ := newTestStore(t)

	profile, err := store.Profile(context.Background(), "s1", "asker")
	require.NoError(t, err)
	require.Equal(t, "asker", profile)
}

func TestSetProfilePersists(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetProfile(ctx, "s1", "offerer"))

	profile, err := store.Profile(ctx, "s1", "asker")
	require.NoError(t, err)
	require.Equal(t, "offerer", profile)
	require.True(t, mr.Exists(SessionPrefix+"s1"))
	require.Equal(t, time.Hour, mr.TTL(SessionPrefix+"s1"))

	other, err := store.Profile(ctx, "s2", "asker")
	require.NoError(t, err)
	require.Equal(t, "asker", other)
}

func TestFlashesArePoppedOnce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddFlash(ctx, "s1", "success", "first"))
	require.NoError(t, store.AddFlash(ctx, "s1", "success", "second"))
	require.NoError(t, store.AddFlash(ctx, "s1", "error", "oops"))

	flashes, err := store.PopFlashes(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, flashes["success"])
	require.Equal(t, []string{"oops"}, flashes["error"])

	flashes, err = store.PopFlashes(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, flashes)
}

func TestFlashDoesNotClobberProfile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetProfile(ctx, "s1", "offerer"))
	require.NoError(t, store.AddFlash(ctx, "s1", "success", "saved"))
	_, err := store.PopFlashes(ctx, "s1")
	require.NoError(t, err)

	profile, err := store.Profile(ctx, "s1", "asker")
	require.NoError(t, err)
	require.Equal(t, "offerer", profile)
}
