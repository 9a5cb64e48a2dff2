package cachemanager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pmxbuilder/internal/mocks"
	"github.com/zjrosen/pmxbuilder/internal/pmx"
)

func countingLoader(calls *atomic.Int32) Loader[string, []pmx.Port] {
	return func(ctx context.Context, key string) ([]pmx.Port, error) {
		calls.Add(1)
		return []pmx.Port{{ID: 0, NodeID: 1, Path: key + ":capture_1"}}, nil
	}
}

func TestReadThroughCache_Bypass(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []pmx.Port](t)
	var calls atomic.Int32
	cache := NewReadThroughCache[string, []pmx.Port](managerMock, countingLoader(&calls), time.Minute, true)

	for range 2 {
		ports, err := cache.Get(context.Background(), "usb")
		require.NoError(t, err)
		require.Len(t, ports, 1)
	}
	require.NoError(t, cache.Invalidate(context.Background(), "usb"))

	require.Equal(t, int32(2), calls.Load())
	hits, misses := cache.Stats()
	require.Zero(t, hits)
	require.Equal(t, uint64(2), misses)
}

func TestReadThroughCache_Hit(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []pmx.Port](t)
	cached := []pmx.Port{{ID: 7, Path: "alsa:capture_1"}}
	managerMock.EXPECT().Get(mock.Anything, "usb").Return(cached, true).Once()
	var calls atomic.Int32
	cache := NewReadThroughCache[string, []pmx.Port](managerMock, countingLoader(&calls), time.Minute, false)

	ports, err := cache.Get(context.Background(), "usb")
	require.NoError(t, err)
	require.Equal(t, cached, ports)
	require.Zero(t, calls.Load())

	hits, _ := cache.Stats()
	require.Equal(t, uint64(1), hits)
}

func TestReadThroughCache_MissStoresWithTTL(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []pmx.Port](t)
	managerMock.EXPECT().Get(mock.Anything, "usb").Return(nil, false).Once()
	managerMock.EXPECT().Set(mock.Anything, "usb", mock.Anything, 30*time.Second).Return().Once()
	var calls atomic.Int32
	cache := NewReadThroughCache[string, []pmx.Port](managerMock, countingLoader(&calls), 30*time.Second, false)

	ports, err := cache.Get(context.Background(), "usb")
	require.NoError(t, err)
	require.Equal(t, "usb:capture_1", ports[0].Path)
	require.Equal(t, int32(1), calls.Load())
}

func TestReadThroughCache_LoadErrorNotCached(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []pmx.Port](t)
	managerMock.EXPECT().Get(mock.Anything, "usb").Return(nil, false).Twice()
	boom := errors.New("pipewire unavailable")
	loader := func(ctx context.Context, key string) ([]pmx.Port, error) { return nil, boom }
	cache := NewReadThroughCache[string, []pmx.Port](managerMock, loader, time.Minute, false)

	for range 2 {
		_, err := cache.Get(context.Background(), "usb")
		require.ErrorIs(t, err, boom)
	}
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Invalidate(t *testing.T) {
	managerMock := mocks.NewMockCacheManager[string, []pmx.Port](t)
	managerMock.EXPECT().Delete(mock.Anything, "usb", "hdmi").Return(nil).Once()
	cache := NewReadThroughCache[string, []pmx.Port](managerMock, nil, time.Minute, false)

	require.NoError(t, cache.Invalidate(context.Background(), "usb", "hdmi"))
}

func TestReadThroughCache_ConcurrentMissesShareLoad(t *testing.T) {
	backing := NewInMemoryCacheManager[string, []pmx.Port]("ports", time.Minute, NoCleanup)
	release := make(chan struct{})
	var calls atomic.Int32
	loader := func(ctx context.Context, key string) ([]pmx.Port, error) {
		calls.Add(1)
		<-release
		return []pmx.Port{{ID: 1}}, nil
	}
	cache := NewReadThroughCache[string, []pmx.Port](backing, loader, time.Minute, false)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ports, err := cache.Get(context.Background(), "ports")
			assert.NoError(t, err)
			assert.Len(t, ports, 1)
		}()
	}
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	_, err := cache.Get(context.Background(), "ports")
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())
}
