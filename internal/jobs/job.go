// Package jobs implements the Redis-backed background job system: a
// priority queue with retries and a dead letter queue, a polling worker
// pool, and a cron scheduler with leader election. Request handlers hand
// slow work (email, maintenance sweeps) to the queue instead of doing it
// inline.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrDuplicateJob = errors.New("duplicate job with same unique key")
	ErrQueueEmpty   = errors.New("queue is empty")
)

// Job types known to the system. Handlers are registered per type.
const (
	TypeSendEmail       = "email:send"
	TypeActivityCleanup = "maintenance:activity_cleanup"
	TypeSessionSweep    = "maintenance:session_sweep"
	TypeRewardNotices   = "maintenance:reward_notices"
	TypeCollectionCaps  = "maintenance:collection_caps"
)

// DefaultActivityRetentionDays is how long activity log entries are kept
// before the nightly cleanup removes them.
const DefaultActivityRetentionDays = 365

// EmailPayload carries one outbound message through the queue.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CleanupPayload parameterizes retention jobs.
type CleanupPayload struct {
	RetentionDays int `json:"retention_days"`
}

// Priority orders the queues a worker drains. Higher priorities are
// always drained first.
type Priority int

const (
	PriorityLow      Priority = 0
	PriorityNormal   Priority = 1
	PriorityHigh     Priority = 2
	PriorityCritical Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// QueueName returns the Redis list backing this priority.
func (p Priority) QueueName() string {
	return "savora:jobs:queue:" + p.String()
}

// JobStatus tracks a job through its lifecycle.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusRetrying  JobStatus = "retrying"
	JobStatusDead      JobStatus = "dead" // exhausted retries, parked in the DLQ
)

// RetryPolicy controls the backoff between attempts. Delays grow
// geometrically from BaseDelay and are capped at MaxDelay.
type RetryPolicy struct {
	MaxAttempts int           `json:"max_attempts"`
	BaseDelay   time.Duration `json:"base_delay"`
	MaxDelay    time.Duration `json:"max_delay"`
	Multiplier  float64       `json:"multiplier"`
}

// DefaultRetryPolicy returns the policy applied when a job does not set
// its own.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    5 * time.Minute,
		Multiplier:  2.0,
	}
}

// Backoff returns the delay before the given attempt number (1-based).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	delay := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		delay *= p.Multiplier
	}
	d := time.Duration(delay)
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// JobPayload is the serialized job record stored in Redis.
type JobPayload struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Priority    Priority        `json:"priority"`
	Status      JobStatus       `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	Retry       RetryPolicy     `json:"retry"`
	Timeout     time.Duration   `json:"timeout"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	UniqueKey   string          `json:"unique_key,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

// NewJobPayload builds a pending job record around a JSON-serializable
// payload.
func NewJobPayload(jobType string, payload any, opts ...JobOption) (*JobPayload, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	policy := DefaultRetryPolicy()
	jp := &JobPayload{
		ID:          uuid.New().String(),
		Type:        jobType,
		Payload:     data,
		Priority:    PriorityNormal,
		Status:      JobStatusPending,
		MaxAttempts: policy.MaxAttempts,
		Retry:       policy,
		Timeout:     5 * time.Minute,
		CreatedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(jp)
	}

	return jp, nil
}

// JobOption configures a job at enqueue time.
type JobOption func(*JobPayload)

// WithPriority sets the queue the job lands in.
func WithPriority(p Priority) JobOption {
	return func(jp *JobPayload) {
		jp.Priority = p
	}
}

// WithRetryPolicy overrides the default backoff.
func WithRetryPolicy(policy RetryPolicy) JobOption {
	return func(jp *JobPayload) {
		jp.Retry = policy
		jp.MaxAttempts = policy.MaxAttempts
	}
}

// WithTimeout caps the execution time of a single attempt.
func WithTimeout(d time.Duration) JobOption {
	return func(jp *JobPayload) {
		jp.Timeout = d
	}
}

// WithScheduledAt defers the job until a specific time.
func WithScheduledAt(t time.Time) JobOption {
	return func(jp *JobPayload) {
		jp.ScheduledAt = &t
	}
}

// WithDelay defers the job by a duration from now.
func WithDelay(d time.Duration) JobOption {
	return func(jp *JobPayload) {
		t := time.Now().Add(d)
		jp.ScheduledAt = &t
	}
}

// WithUniqueKey deduplicates: a second enqueue with the same key fails
// with ErrDuplicateJob until the first job finishes.
func WithUniqueKey(key string) JobOption {
	return func(jp *JobPayload) {
		jp.UniqueKey = key
	}
}

// WithTags attaches free-form labels for inspection.
func WithTags(tags ...string) JobOption {
	return func(jp *JobPayload) {
		jp.Tags = append(jp.Tags, tags...)
	}
}

// Queue is the storage side of the job system.
type Queue interface {
	// Enqueue stores a job and makes it runnable, or schedules it when
	// ScheduledAt is in the future.
	Enqueue(ctx context.Context, job *JobPayload) error
	// Dequeue pops the next runnable job, highest priority first, and
	// marks it running. Returns ErrQueueEmpty when nothing is runnable.
	Dequeue(ctx context.Context, priorities ...Priority) (*JobPayload, error)
	// GetJob loads a job record by id.
	GetJob(ctx context.Context, jobID string) (*JobPayload, error)
	// UpdateJob rewrites a job record.
	UpdateJob(ctx context.Context, job *JobPayload) error
	// Complete marks a job done and releases its unique key.
	Complete(ctx context.Context, jobID string) error
	// Fail records a failure, scheduling a retry with backoff or moving
	// the job to the DLQ once attempts are exhausted.
	Fail(ctx context.Context, jobID string, jobErr error) error
	// ProcessScheduled promotes due scheduled jobs onto their queues.
	ProcessScheduled(ctx context.Context) (int, error)
	// GetDLQJobs lists jobs parked in the dead letter queue.
	GetDLQJobs(ctx context.Context, limit int64) ([]*JobPayload, error)
	// RetryDLQJob re-enqueues a dead job under a fresh id.
	RetryDLQJob(ctx context.Context, jobID string) error
	// DeleteJob removes a job from every structure it may sit in.
	DeleteJob(ctx context.Context, jobID string) error
	// RequeueJob pushes an already-stored job id back onto a queue.
	RequeueJob(ctx context.Context, jobID string, queueKey string) error
	// GetStats returns counter and queue-depth statistics.
	GetStats(ctx context.Context) (map[string]int64, error)
}

// ScheduledJobInfo describes one registered cron entry.
type ScheduledJobInfo struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
	JobType  string `json:"job_type"`
	Priority string `json:"priority"`
}

// Scheduler turns cron expressions into enqueued jobs on exactly one
// instance of the deployment.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	// IsLeader reports whether this instance currently holds the
	// scheduler lease.
	IsLeader() bool
	ListJobs() []ScheduledJobInfo
}
