package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull 隊列已滿
	ErrQueueFull = errors.New("queue is full")
	// ErrQueueClosed 隊列已關閉
	ErrQueueClosed = errors.New("queue manager is closed")
)

// Job 背景工作，ctx 於隊列關閉時取消
type Job func(ctx context.Context)

// task 隊列中的工作
type task struct {
	name string
	job  Job
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	FailedCount    int64 `json:"failed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
	Running        bool  `json:"running"`
}

// Manager 背景工作隊列管理器
type Manager struct {
	config    config.QueueConfig
	queue     chan *task
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once
	running   atomic.Bool
	processed atomic.Int64
	failed    atomic.Int64
}

// NewManager 創建新的隊列管理器
func NewManager(cfg config.QueueConfig) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		config: cfg,
		queue:  make(chan *task, cfg.MaxSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start 啟動工作協程
func (m *Manager) Start() {
	m.startOnce.Do(func() {
		m.running.Store(true)
		for i := 0; i < m.config.Workers; i++ {
			m.wg.Add(1)
			go m.worker(i)
		}
		common.LogInfo("Queue workers started",
			zap.Int("workers", m.config.Workers),
			zap.Int("max_queue_size", m.config.MaxSize),
		)
	})
}

// Enqueue 將工作加入隊列，不會阻塞
func (m *Manager) Enqueue(name string, job Job) error {
	if m.ctx.Err() != nil {
		return ErrQueueClosed
	}

	select {
	case m.queue <- &task{name: name, job: job}:
		common.LogDebug("Job enqueued",
			zap.String("job", name),
			zap.Int("queue_length", len(m.queue)),
		)
		return nil
	default:
		return fmt.Errorf("%w: %d pending", ErrQueueFull, len(m.queue))
	}
}

func (m *Manager) worker(id int) {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case t := <-m.queue:
			m.run(id, t)
		}
	}
}

func (m *Manager) run(id int, t *task) {
	defer func() {
		if r := recover(); r != nil {
			m.failed.Add(1)
			common.LogError("Job panicked",
				zap.Int("worker", id),
				zap.String("job", t.name),
				zap.Any("panic", r),
			)
		}
	}()

	t.job(m.ctx)
	m.processed.Add(1)
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: m.processed.Load(),
		FailedCount:    m.failed.Load(),
		MaxQueueSize:   m.config.MaxSize,
		Workers:        m.config.Workers,
		Running:        m.running.Load() && m.ctx.Err() == nil,
	}
}

// Close 取消進行中的工作並等待工作協程結束，未執行的工作會被丟棄
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		m.wg.Wait()
		m.running.Store(false)
		common.LogInfo("Queue manager closed",
			zap.Int64("processed", m.processed.Load()),
			zap.Int("dropped", len(m.queue)),
		)
	})
}
