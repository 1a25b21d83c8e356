package jobs

import (
	"context"
	"time"
)

// Service is the application-facing surface of the job system.
type Service interface {
	// Enqueue adds a job to the queue and returns its id.
	Enqueue(ctx context.Context, jobType string, payload any, opts ...JobOption) (string, error)

	// EnqueueAt schedules a job for a specific time.
	EnqueueAt(ctx context.Context, jobType string, payload any, scheduledAt time.Time, opts ...JobOption) (string, error)

	// EnqueueIn schedules a job after a delay.
	EnqueueIn(ctx context.Context, jobType string, payload any, delay time.Duration, opts ...JobOption) (string, error)

	// EnqueueEmail queues one outbound email for delivery. Satisfies the
	// dispatcher dependency of the domain services.
	EnqueueEmail(ctx context.Context, to, subject, body string) error

	// GetJob retrieves a job by id.
	GetJob(ctx context.Context, jobID string) (*JobPayload, error)

	// CancelJob removes a pending job.
	CancelJob(ctx context.Context, jobID string) error

	// RetryJob resets a failed job and puts it back on its queue.
	RetryJob(ctx context.Context, jobID string) error

	// GetQueueStats aggregates queue, worker and scheduler statistics.
	GetQueueStats(ctx context.Context) (*QueueStats, error)

	// GetDLQJobs lists dead jobs.
	GetDLQJobs(ctx context.Context, limit int) ([]*JobPayload, error)

	// RetryDLQJob resurrects one dead job.
	RetryDLQJob(ctx context.Context, jobID string) error

	// PurgeDLQ drops everything in the dead letter queue.
	PurgeDLQ(ctx context.Context) error
}

// WorkerPool is the execution side of the job system.
type WorkerPool interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Stats() WorkerPoolStats
}

// WorkerPoolStats is a snapshot of pool activity.
type WorkerPoolStats struct {
	Running       bool
	ActiveWorkers int64
	ProcessedJobs int64
	FailedJobs    int64
	Concurrency   int
}

// QueueStats is the aggregate view served by the admin endpoint.
type QueueStats struct {
	Pending        int64            `json:"pending"`
	Scheduled      int64            `json:"scheduled"`
	Completed      int64            `json:"completed"`
	Failed         int64            `json:"failed"`
	Dead           int64            `json:"dead"`
	QueueSizes     map[string]int64 `json:"queue_sizes"`
	WorkerStats    WorkerStats      `json:"worker_stats"`
	SchedulerStats SchedulerStats   `json:"scheduler_stats"`
}

// WorkerStats mirrors WorkerPoolStats in the stats response.
type WorkerStats struct {
	Running       bool  `json:"running"`
	ActiveWorkers int64 `json:"active_workers"`
	Concurrency   int   `json:"concurrency"`
	ProcessedJobs int64 `json:"processed_jobs"`
	FailedJobs    int64 `json:"failed_jobs"`
}

// SchedulerStats reports cron registration and leadership.
type SchedulerStats struct {
	IsLeader          bool     `json:"is_leader"`
	RegisteredJobs    int      `json:"registered_jobs"`
	ScheduledJobNames []string `json:"scheduled_job_names"`
}
