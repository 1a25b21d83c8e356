// Package worker executes queued jobs with a fixed pool of polling
// goroutines.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/jobs"
)

// JobHandler processes one job attempt from its raw payload.
type JobHandler func(ctx context.Context, payload []byte) error

// PoolConfig configures the worker pool.
type PoolConfig struct {
	Concurrency     int
	PollInterval    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultPoolConfig returns the production settings.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Concurrency:     8,
		PollInterval:    100 * time.Millisecond,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Pool polls the queue and dispatches jobs to registered handlers.
// Dequeue is atomic on the Redis side, so replicas of the worker binary
// never execute the same job twice.
type Pool struct {
	config   PoolConfig
	queue    jobs.Queue
	log      *zap.Logger
	metrics  *jobs.Metrics
	handlers map[string]JobHandler
	mu       sync.RWMutex

	running atomic.Bool
	wg      sync.WaitGroup
	stopCh  chan struct{}

	activeWorkers atomic.Int64
	processedJobs atomic.Int64
	failedJobs    atomic.Int64
}

var _ jobs.WorkerPool = (*Pool)(nil)

// NewPool creates a worker pool. Metrics may be nil.
func NewPool(q jobs.Queue, log *zap.Logger, metrics *jobs.Metrics, config PoolConfig) *Pool {
	return &Pool{
		config:   config,
		queue:    q,
		log:      log,
		metrics:  metrics,
		handlers: make(map[string]JobHandler),
		stopCh:   make(chan struct{}),
	}
}

// RegisterHandler binds a handler to a job type.
func (p *Pool) RegisterHandler(jobType string, handler JobHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[jobType] = handler
	p.log.Info("registered job handler", zap.String("type", jobType))
}

// Start launches the workers and the scheduled-job promoter.
func (p *Pool) Start(ctx context.Context) error {
	if p.running.Load() {
		return fmt.Errorf("worker pool already running")
	}

	p.running.Store(true)
	p.log.Info("starting worker pool",
		zap.Int("concurrency", p.config.Concurrency),
		zap.Duration("poll_interval", p.config.PollInterval),
	)

	for i := 0; i < p.config.Concurrency; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.wg.Add(1)
	go p.promoteScheduled(ctx)

	return nil
}

// Stop drains the pool, waiting up to ShutdownTimeout for in-flight
// jobs.
func (p *Pool) Stop(ctx context.Context) error {
	if !p.running.Load() {
		return nil
	}

	p.log.Info("stopping worker pool")
	p.running.Store(false)
	close(p.stopCh)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info("worker pool stopped")
	case <-time.After(p.config.ShutdownTimeout):
		p.log.Warn("worker pool shutdown timed out")
	case <-ctx.Done():
		p.log.Warn("worker pool shutdown cancelled")
	}

	return nil
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	log := p.log.With(zap.Int("worker", id))

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.processNext(ctx, log)
		}
	}
}

func (p *Pool) processNext(ctx context.Context, log *zap.Logger) {
	job, err := p.queue.Dequeue(ctx)
	if err == jobs.ErrQueueEmpty {
		return
	}
	if err != nil {
		if p.running.Load() {
			log.Error("failed to dequeue job", zap.Error(err))
		}
		return
	}

	log = log.With(
		zap.String("job_id", job.ID),
		zap.String("job_type", job.Type),
		zap.Int("attempt", job.Attempts),
	)

	p.activeWorkers.Add(1)
	p.metrics.RecordStarted()
	defer p.activeWorkers.Add(-1)

	p.mu.RLock()
	handler, ok := p.handlers[job.Type]
	p.mu.RUnlock()

	if !ok {
		log.Error("no handler registered for job type")
		p.queue.Fail(ctx, job.ID, fmt.Errorf("no handler for job type %s", job.Type))
		p.failedJobs.Add(1)
		p.metrics.RecordFailed(job.Attempts < job.MaxAttempts)
		return
	}

	execCtx, cancel := context.WithTimeout(ctx, job.Timeout)
	defer cancel()

	start := time.Now()
	err = handler(execCtx, job.Payload)
	duration := time.Since(start)

	if err != nil {
		log.Error("job failed",
			zap.Error(err),
			zap.Duration("duration", duration),
		)
		p.queue.Fail(ctx, job.ID, err)
		p.failedJobs.Add(1)
		p.metrics.RecordFailed(job.Attempts < job.MaxAttempts)
		return
	}

	log.Info("job completed", zap.Duration("duration", duration))
	p.queue.Complete(ctx, job.ID)
	p.processedJobs.Add(1)
	p.metrics.RecordCompleted(duration)
}

// promoteScheduled moves due deferred jobs onto their queues.
func (p *Pool) promoteScheduled(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			promoted, err := p.queue.ProcessScheduled(ctx)
			if err != nil {
				if p.running.Load() {
					p.log.Error("failed to promote scheduled jobs", zap.Error(err))
				}
			} else if promoted > 0 {
				p.log.Debug("promoted scheduled jobs", zap.Int("count", promoted))
			}
		}
	}
}

// Stats returns a snapshot of pool activity.
func (p *Pool) Stats() jobs.WorkerPoolStats {
	return jobs.WorkerPoolStats{
		Running:       p.running.Load(),
		ActiveWorkers: p.activeWorkers.Load(),
		ProcessedJobs: p.processedJobs.Load(),
		FailedJobs:    p.failedJobs.Load(),
		Concurrency:   p.config.Concurrency,
	}
}
