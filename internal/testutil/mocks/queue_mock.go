package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/savora/savora-cloud-go/internal/jobs"
)

// MockJobQueue is an in-memory jobs.Queue with the same lifecycle
// semantics as the Redis queue: per-priority FIFO lists, a deferred set,
// retry backoff and a dead letter queue.
type MockJobQueue struct {
	mu        sync.Mutex
	Jobs      map[string]*jobs.JobPayload
	queues    map[jobs.Priority][]string
	scheduled map[string]time.Time
	dlq       []string
	unique    map[string]string
	stats     map[string]int64

	EnqueueErr error
	DequeueErr error
}

var _ jobs.Queue = (*MockJobQueue)(nil)

func NewMockJobQueue() *MockJobQueue {
	return &MockJobQueue{
		Jobs:      make(map[string]*jobs.JobPayload),
		queues:    make(map[jobs.Priority][]string),
		scheduled: make(map[string]time.Time),
		unique:    make(map[string]string),
		stats:     make(map[string]int64),
	}
}

func (q *MockJobQueue) Enqueue(ctx context.Context, job *jobs.JobPayload) error {
	if q.EnqueueErr != nil {
		return q.EnqueueErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if job.UniqueKey != "" {
		if _, taken := q.unique[job.UniqueKey]; taken {
			return jobs.ErrDuplicateJob
		}
		q.unique[job.UniqueKey] = job.ID
	}

	q.Jobs[job.ID] = job
	if job.ScheduledAt != nil && job.ScheduledAt.After(time.Now()) {
		q.scheduled[job.ID] = *job.ScheduledAt
	} else {
		delete(q.scheduled, job.ID)
		q.queues[job.Priority] = append(q.queues[job.Priority], job.ID)
	}

	q.stats["enqueued_total"]++
	q.stats["pending"]++
	return nil
}

func (q *MockJobQueue) Dequeue(ctx context.Context, priorities ...jobs.Priority) (*jobs.JobPayload, error) {
	if q.DequeueErr != nil {
		return nil, q.DequeueErr
	}
	if len(priorities) == 0 {
		priorities = []jobs.Priority{
			jobs.PriorityCritical,
			jobs.PriorityHigh,
			jobs.PriorityNormal,
			jobs.PriorityLow,
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range priorities {
		ids := q.queues[p]
		if len(ids) == 0 {
			continue
		}
		jobID := ids[0]
		q.queues[p] = ids[1:]

		job, ok := q.Jobs[jobID]
		if !ok {
			continue
		}

		now := time.Now()
		job.Status = jobs.JobStatusRunning
		job.StartedAt = &now
		job.Attempts++
		q.stats["pending"]--
		return job, nil
	}

	return nil, jobs.ErrQueueEmpty
}

func (q *MockJobQueue) GetJob(ctx context.Context, jobID string) (*jobs.JobPayload, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.Jobs[jobID]
	if !ok {
		return nil, jobs.ErrJobNotFound
	}
	return job, nil
}

func (q *MockJobQueue) UpdateJob(ctx context.Context, job *jobs.JobPayload) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Jobs[job.ID] = job
	return nil
}

func (q *MockJobQueue) Complete(ctx context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.Jobs[jobID]
	if !ok {
		return jobs.ErrJobNotFound
	}
	now := time.Now()
	job.Status = jobs.JobStatusCompleted
	job.CompletedAt = &now
	if job.UniqueKey != "" {
		delete(q.unique, job.UniqueKey)
	}
	q.stats["completed_total"]++
	return nil
}

func (q *MockJobQueue) Fail(ctx context.Context, jobID string, jobErr error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.Jobs[jobID]
	if !ok {
		return jobs.ErrJobNotFound
	}

	job.LastError = jobErr.Error()
	if job.Attempts < job.MaxAttempts {
		job.Status = jobs.JobStatusRetrying
		due := time.Now().Add(job.Retry.Backoff(job.Attempts))
		job.ScheduledAt = &due
		q.scheduled[job.ID] = due
		q.stats["retries_total"]++
	} else {
		job.Status = jobs.JobStatusDead
		q.dlq = append(q.dlq, job.ID)
		if job.UniqueKey != "" {
			delete(q.unique, job.UniqueKey)
		}
		q.stats["dead_total"]++
	}
	q.stats["failed_total"]++
	return nil
}

func (q *MockJobQueue) ProcessScheduled(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	promoted := 0
	now := time.Now()
	for jobID, due := range q.scheduled {
		if due.After(now) {
			continue
		}
		delete(q.scheduled, jobID)

		job, ok := q.Jobs[jobID]
		if !ok {
			continue
		}
		job.ScheduledAt = nil
		job.Status = jobs.JobStatusPending
		q.queues[job.Priority] = append(q.queues[job.Priority], jobID)
		promoted++
	}
	return promoted, nil
}

func (q *MockJobQueue) GetDLQJobs(ctx context.Context, limit int64) ([]*jobs.JobPayload, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var dead []*jobs.JobPayload
	for _, jobID := range q.dlq {
		if int64(len(dead)) >= limit {
			break
		}
		if job, ok := q.Jobs[jobID]; ok {
			dead = append(dead, job)
		}
	}
	return dead, nil
}

func (q *MockJobQueue) RetryDLQJob(ctx context.Context, jobID string) error {
	q.mu.Lock()
	job, ok := q.Jobs[jobID]
	if !ok {
		q.mu.Unlock()
		return jobs.ErrJobNotFound
	}
	for i, id := range q.dlq {
		if id == jobID {
			q.dlq = append(q.dlq[:i], q.dlq[i+1:]...)
			break
		}
	}
	q.mu.Unlock()

	job.ID = uuid.New().String()
	job.Status = jobs.JobStatusPending
	job.Attempts = 0
	job.LastError = ""
	return q.Enqueue(ctx, job)
}

func (q *MockJobQueue) DeleteJob(ctx context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.Jobs[jobID]
	if !ok {
		return jobs.ErrJobNotFound
	}
	delete(q.Jobs, jobID)
	delete(q.scheduled, jobID)
	if job.UniqueKey != "" {
		delete(q.unique, job.UniqueKey)
	}
	for p, ids := range q.queues {
		for i, id := range ids {
			if id == jobID {
				q.queues[p] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	for i, id := range q.dlq {
		if id == jobID {
			q.dlq = append(q.dlq[:i], q.dlq[i+1:]...)
			break
		}
	}
	return nil
}

func (q *MockJobQueue) RequeueJob(ctx context.Context, jobID string, queueKey string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.Jobs[jobID]
	if !ok {
		return jobs.ErrJobNotFound
	}
	q.queues[job.Priority] = append(q.queues[job.Priority], jobID)
	return nil
}

func (q *MockJobQueue) GetStats(ctx context.Context) (map[string]int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	stats := make(map[string]int64, len(q.stats))
	for k, v := range q.stats {
		stats[k] = v
	}
	for _, p := range []jobs.Priority{jobs.PriorityCritical, jobs.PriorityHigh, jobs.PriorityNormal, jobs.PriorityLow} {
		stats["queue_"+p.String()] = int64(len(q.queues[p]))
	}
	stats["scheduled"] = int64(len(q.scheduled))
	stats["dlq"] = int64(len(q.dlq))
	return stats, nil
}

// PendingIDs returns the ids currently runnable at a priority, oldest
// first. Test helper.
func (q *MockJobQueue) PendingIDs(p jobs.Priority) []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.queues[p]))
	copy(out, q.queues[p])
	return out
}
