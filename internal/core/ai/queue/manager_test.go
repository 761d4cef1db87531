package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RunsJobs(t *testing.T) {
	common.InitTestLogger()
	m := NewManager(config.QueueConfig{Workers: 2, MaxSize: 10})
	m.Start()
	defer m.Close()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ran := map[int]bool{}
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		require.NoError(t, m.Enqueue("job", func(ctx context.Context) {
			defer wg.Done()
			mu.Lock()
			ran[i] = true
			mu.Unlock()
		}))
	}
	wg.Wait()

	assert.Len(t, ran, 5)
	assert.Eventually(t, func() bool {
		return m.GetQueueStatus().ProcessedCount == 5
	}, time.Second, 10*time.Millisecond)
}

func TestManager_QueueFull(t *testing.T) {
	common.InitTestLogger()
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1})
	defer m.Close()

	// not started, so nothing drains the buffer
	require.NoError(t, m.Enqueue("first", func(context.Context) {}))
	err := m.Enqueue("second", func(context.Context) {})
	assert.ErrorIs(t, err, ErrQueueFull)

	status := m.GetQueueStatus()
	assert.Equal(t, 1, status.QueueLength)
	assert.False(t, status.Running)
}

func TestManager_RecoversPanics(t *testing.T) {
	common.InitTestLogger()
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 2})
	m.Start()
	defer m.Close()

	done := make(chan struct{})
	require.NoError(t, m.Enqueue("boom", func(context.Context) { panic("boom") }))
	require.NoError(t, m.Enqueue("after", func(context.Context) { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive panic")
	}
	assert.Eventually(t, func() bool {
		return m.GetQueueStatus().FailedCount == 1
	}, time.Second, 10*time.Millisecond)
}

func TestManager_CloseCancelsJobs(t *testing.T) {
	common.InitTestLogger()
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1})
	m.Start()

	started := make(chan struct{})
	canceled := make(chan struct{})
	require.NoError(t, m.Enqueue("long", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(canceled)
	}))

	<-started
	m.Close()

	select {
	case <-canceled:
	default:
		t.Fatal("job context was not canceled")
	}
	assert.ErrorIs(t, m.Enqueue("late", func(context.Context) {}), ErrQueueClosed)
	assert.False(t, m.GetQueueStatus().Running)
}
