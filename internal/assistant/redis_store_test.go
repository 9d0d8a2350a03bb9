package assistant

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisBlobStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBlobStore(client, "test", 0)
}

func TestRedisStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	require.NoError(t, s.Set(ctx, "k", "v"))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestRedisStore_MissingKeyIsEmptyNotError(t *testing.T) {
	s := newTestRedisStore(t)
	got, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStore_PreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewPreferenceStore(newTestRedisStore(t), nil)

	speed := SpeedInstant
	saved := p.Save(ctx, PreferencesPatch{ResponseSpeed: &speed})
	assert.Equal(t, SpeedInstant, saved.ResponseSpeed)
	assert.Equal(t, saved, p.Load(ctx))
}
