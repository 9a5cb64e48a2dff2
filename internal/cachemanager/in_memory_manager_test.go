package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

type snapshotKey string

func newPluginCache() *InMemoryCacheManager[snapshotKey, []pmx.Plugin] {
	return NewInMemoryCacheManager[snapshotKey, []pmx.Plugin]("plugins", DefaultExpiration, NoCleanup)
}

func TestInMemoryCacheManager_GetExistingValue(t *testing.T) {
	cache := newPluginCache()
	plugins := []pmx.Plugin{{ID: 1, Name: "cross_fader_1"}, {ID: 2, Name: "gain_2"}}
	cache.Set(context.Background(), "plugins", plugins, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "plugins")
	require.True(t, ok)
	require.Equal(t, plugins, got)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := newPluginCache()

	got, ok := cache.Get(context.Background(), "plugins")
	require.False(t, ok)
	require.Nil(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := newPluginCache()
	cache.cache.Set("plugins", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "plugins")
	require.False(t, ok)
	require.Nil(t, got)
}

func TestInMemoryCacheManager_ExpiredValueIsMissWithoutJanitor(t *testing.T) {
	cache := newPluginCache()
	cache.Set(context.Background(), "plugins", []pmx.Plugin{{ID: 1}}, time.Millisecond)

	time.Sleep(5 * time.Millisecond)

	_, ok := cache.Get(context.Background(), "plugins")
	require.False(t, ok)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("names", DefaultExpiration, NoCleanup)

	got, ok := cache.GetWithRefresh(context.Background(), "strip", time.Hour)
	require.False(t, ok)
	require.Empty(t, got)

	cache.Set(context.Background(), "strip", "Drums", DefaultExpiration)
	got, ok = cache.GetWithRefresh(context.Background(), "strip", time.Hour)
	require.True(t, ok)
	require.Equal(t, "Drums", got)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("names", DefaultExpiration, NoCleanup)
	require.NoError(t, cache.Delete(context.Background()))

	cache.Set(context.Background(), "a", "Bass", DefaultExpiration)
	cache.Set(context.Background(), "b", "Atmos", DefaultExpiration)
	require.NoError(t, cache.Delete(context.Background(), "a"))

	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
	got, ok := cache.Get(context.Background(), "b")
	require.True(t, ok)
	require.Equal(t, "Atmos", got)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("names", DefaultExpiration, NoCleanup)
	cache.Set(context.Background(), "a", "Melody", DefaultExpiration)
	cache.Set(context.Background(), "b", "Atmos", DefaultExpiration)
	require.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Flush(context.Background()))

	require.Zero(t, cache.Len())
	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
}
