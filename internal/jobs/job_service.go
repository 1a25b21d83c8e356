package jobs

import (
	"context"
	"time"
)

// jobService implements Service over a queue, a pool and a scheduler.
type jobService struct {
	queue     Queue
	pool      WorkerPool
	scheduler Scheduler
	metrics   *Metrics
}

// NewJobService creates the job service. Scheduler and metrics may be
// nil; the worker binary runs without an admin scheduler view and tests
// run without a registry.
func NewJobService(q Queue, pool WorkerPool, sched Scheduler, metrics *Metrics) Service {
	return &jobService{
		queue:     q,
		pool:      pool,
		scheduler: sched,
		metrics:   metrics,
	}
}

func (s *jobService) Enqueue(ctx context.Context, jobType string, payload any, opts ...JobOption) (string, error) {
	job, err := NewJobPayload(jobType, payload, opts...)
	if err != nil {
		return "", err
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return "", err
	}

	s.metrics.RecordEnqueued(job.Priority)
	return job.ID, nil
}

func (s *jobService) EnqueueAt(ctx context.Context, jobType string, payload any, scheduledAt time.Time, opts ...JobOption) (string, error) {
	opts = append(opts, WithScheduledAt(scheduledAt))
	return s.Enqueue(ctx, jobType, payload, opts...)
}

func (s *jobService) EnqueueIn(ctx context.Context, jobType string, payload any, delay time.Duration, opts ...JobOption) (string, error) {
	opts = append(opts, WithDelay(delay))
	return s.Enqueue(ctx, jobType, payload, opts...)
}

func (s *jobService) EnqueueEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.Enqueue(ctx, TypeSendEmail, EmailPayload{
		To:      to,
		Subject: subject,
		Body:    body,
	}, WithPriority(PriorityHigh))
	return err
}

func (s *jobService) GetJob(ctx context.Context, jobID string) (*JobPayload, error) {
	return s.queue.GetJob(ctx, jobID)
}

func (s *jobService) CancelJob(ctx context.Context, jobID string) error {
	return s.queue.DeleteJob(ctx, jobID)
}

func (s *jobService) RetryJob(ctx context.Context, jobID string) error {
	job, err := s.queue.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	job.Status = JobStatusPending
	job.Attempts = 0
	job.LastError = ""
	job.ScheduledAt = nil

	return s.queue.Enqueue(ctx, job)
}

func (s *jobService) GetQueueStats(ctx context.Context) (*QueueStats, error) {
	queueStats, err := s.queue.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	poolStats := s.pool.Stats()

	var schedulerStats SchedulerStats
	if s.scheduler != nil {
		scheduled := s.scheduler.ListJobs()
		names := make([]string, len(scheduled))
		for i, j := range scheduled {
			names[i] = j.Name
		}
		schedulerStats = SchedulerStats{
			IsLeader:          s.scheduler.IsLeader(),
			RegisteredJobs:    len(scheduled),
			ScheduledJobNames: names,
		}
	}

	return &QueueStats{
		Pending:   queueStats["pending"],
		Scheduled: queueStats["scheduled"],
		Completed: queueStats["completed_total"],
		Failed:    queueStats["failed_total"],
		Dead:      queueStats["dlq"],
		QueueSizes: map[string]int64{
			"critical": queueStats["queue_critical"],
			"high":     queueStats["queue_high"],
			"normal":   queueStats["queue_normal"],
			"low":      queueStats["queue_low"],
		},
		WorkerStats: WorkerStats{
			Running:       poolStats.Running,
			ActiveWorkers: poolStats.ActiveWorkers,
			Concurrency:   poolStats.Concurrency,
			ProcessedJobs: poolStats.ProcessedJobs,
			FailedJobs:    poolStats.FailedJobs,
		},
		SchedulerStats: schedulerStats,
	}, nil
}

func (s *jobService) GetDLQJobs(ctx context.Context, limit int) ([]*JobPayload, error) {
	return s.queue.GetDLQJobs(ctx, int64(limit))
}

func (s *jobService) RetryDLQJob(ctx context.Context, jobID string) error {
	return s.queue.RetryDLQJob(ctx, jobID)
}

func (s *jobService) PurgeDLQ(ctx context.Context) error {
	dead, err := s.queue.GetDLQJobs(ctx, 10000)
	if err != nil {
		return err
	}

	for _, job := range dead {
		if err := s.queue.DeleteJob(ctx, job.ID); err != nil {
			return err
		}
	}

	return nil
}
