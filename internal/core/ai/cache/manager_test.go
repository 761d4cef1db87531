package cache

import (
	"testing"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int) (*CacheManager, *time.Time) {
	t.Helper()
	common.InitTestLogger()

	m := NewManager(config.CacheConfig{
		Enabled:         true,
		MaxSize:         maxSize,
		TTL:             time.Hour,
		CleanupInterval: time.Hour,
	})
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Close() })

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestCacheManager_GetSet(t *testing.T) {
	m, _ := newTestManager(t, 10)

	_, err := m.Get("categorize: milk")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set("categorize: milk", `{"categories":[]}`))

	val, err := m.Get("categorize: milk")
	require.NoError(t, err)
	assert.Equal(t, `{"categories":[]}`, val)

	stats := m.GetStats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRatio, 1e-9)
}

func TestCacheManager_Expiry(t *testing.T) {
	m, now := newTestManager(t, 10)

	require.NoError(t, m.Set("prompt", "value"))
	*now = now.Add(2 * time.Hour)

	_, err := m.Get("prompt")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	assert.Equal(t, 0, m.GetStats().Size)
	assert.Equal(t, int64(1), m.GetStats().Evictions)
}

func TestCacheManager_EvictsLeastUsed(t *testing.T) {
	m, now := newTestManager(t, 2)

	require.NoError(t, m.Set("a", "1"))
	*now = now.Add(time.Minute)
	require.NoError(t, m.Set("b", "2"))

	_, err := m.Get("a")
	require.NoError(t, err)

	require.NoError(t, m.Set("c", "3"))

	_, err = m.Get("b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = m.Get("a")
	assert.NoError(t, err)
	_, err = m.Get("c")
	assert.NoError(t, err)
}

func TestCacheManager_OverwriteDoesNotEvict(t *testing.T) {
	m, _ := newTestManager(t, 1)

	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("a", "2"))

	val, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
	assert.Equal(t, int64(0), m.GetStats().Evictions)
}

func TestCacheManager_Disabled(t *testing.T) {
	common.InitTestLogger()

	m := NewManager(config.CacheConfig{Enabled: false})
	assert.Nil(t, m)

	_, err := m.Get("prompt")
	assert.ErrorIs(t, err, common.ErrCacheDisabled)
	assert.NoError(t, m.Set("prompt", "value"))
	assert.Equal(t, Stats{}, m.GetStats())
	assert.NoError(t, m.Close())
}

func TestCacheManager_CloseIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t, 1)
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}
