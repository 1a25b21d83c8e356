package jobs_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

// stubPool satisfies jobs.WorkerPool for service tests that never
// execute anything.
type stubPool struct {
	stats jobs.WorkerPoolStats
}

func (p *stubPool) Start(ctx context.Context) error { return nil }
func (p *stubPool) Stop(ctx context.Context) error  { return nil }
func (p *stubPool) Stats() jobs.WorkerPoolStats     { return p.stats }

func setupJobService(t *testing.T) (jobs.Service, *mocks.MockJobQueue) {
	t.Helper()
	q := mocks.NewMockJobQueue()
	pool := &stubPool{stats: jobs.WorkerPoolStats{Running: true, Concurrency: 4}}
	return jobs.NewJobService(q, pool, nil, nil), q
}

func TestJobService_Enqueue(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	jobID, err := svc.Enqueue(ctx, jobs.TypeSessionSweep, nil)
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	job, err := q.GetJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, jobs.TypeSessionSweep, job.Type)
	assert.Equal(t, jobs.JobStatusPending, job.Status)
}

func TestJobService_Enqueue_WithOptions(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	jobID, err := svc.Enqueue(ctx, jobs.TypeActivityCleanup, jobs.CleanupPayload{RetentionDays: 30},
		jobs.WithPriority(jobs.PriorityHigh),
		jobs.WithUniqueKey("cleanup-30"),
		jobs.WithTimeout(10*time.Minute),
	)
	require.NoError(t, err)

	job, err := q.GetJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, jobs.PriorityHigh, job.Priority)
	assert.Equal(t, "cleanup-30", job.UniqueKey)
	assert.Equal(t, 10*time.Minute, job.Timeout)
}

func TestJobService_Enqueue_Duplicate(t *testing.T) {
	svc, _ := setupJobService(t)
	ctx := context.Background()

	_, err := svc.Enqueue(ctx, jobs.TypeSessionSweep, nil, jobs.WithUniqueKey("once"))
	require.NoError(t, err)

	_, err = svc.Enqueue(ctx, jobs.TypeSessionSweep, nil, jobs.WithUniqueKey("once"))
	assert.ErrorIs(t, err, jobs.ErrDuplicateJob)
}

func TestJobService_EnqueueAt(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	at := time.Now().Add(time.Hour)
	jobID, err := svc.EnqueueAt(ctx, jobs.TypeRewardNotices, nil, at)
	require.NoError(t, err)

	job, err := q.GetJob(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, job.ScheduledAt)
	assert.True(t, job.ScheduledAt.Equal(at))

	// Deferred jobs are not runnable yet.
	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, jobs.ErrQueueEmpty)
}

func TestJobService_EnqueueIn(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	jobID, err := svc.EnqueueIn(ctx, jobs.TypeRewardNotices, nil, time.Hour)
	require.NoError(t, err)

	job, err := q.GetJob(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, job.ScheduledAt)
	assert.True(t, job.ScheduledAt.After(time.Now().Add(59*time.Minute)))
}

func TestJobService_EnqueueEmail(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnqueueEmail(ctx, "user@example.com", "Welcome", "Hi there"))

	ids := q.PendingIDs(jobs.PriorityHigh)
	require.Len(t, ids, 1)

	job, err := q.GetJob(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, jobs.TypeSendEmail, job.Type)

	var payload jobs.EmailPayload
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	assert.Equal(t, "user@example.com", payload.To)
	assert.Equal(t, "Welcome", payload.Subject)
	assert.Equal(t, "Hi there", payload.Body)
}

func TestJobService_CancelJob(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	jobID, err := svc.Enqueue(ctx, jobs.TypeSessionSweep, nil)
	require.NoError(t, err)

	require.NoError(t, svc.CancelJob(ctx, jobID))

	_, err = q.GetJob(ctx, jobID)
	assert.ErrorIs(t, err, jobs.ErrJobNotFound)
	assert.Empty(t, q.PendingIDs(jobs.PriorityNormal))
}

func TestJobService_RetryJob(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	jobID, err := svc.Enqueue(ctx, jobs.TypeSessionSweep, nil)
	require.NoError(t, err)

	job, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.Equal(t, jobID, job.ID)
	require.NoError(t, q.Fail(ctx, jobID, assert.AnError))

	require.NoError(t, svc.RetryJob(ctx, jobID))

	job, err = q.GetJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, jobs.JobStatusPending, job.Status)
	assert.Equal(t, 0, job.Attempts)
	assert.Empty(t, job.LastError)
}

func TestJobService_DLQ(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	policy := jobs.RetryPolicy{MaxAttempts: 1, BaseDelay: time.Second, MaxDelay: time.Second, Multiplier: 1}
	jobID, err := svc.Enqueue(ctx, jobs.TypeSendEmail, jobs.EmailPayload{To: "a@example.com"},
		jobs.WithRetryPolicy(policy),
	)
	require.NoError(t, err)

	// One failed attempt exhausts the budget and parks the job.
	_, err = q.Dequeue(ctx)
	require.NoError(t, err)
	require.NoError(t, q.Fail(ctx, jobID, assert.AnError))

	dead, err := svc.GetDLQJobs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, jobs.JobStatusDead, dead[0].Status)

	// Resurrect under a new id.
	require.NoError(t, svc.RetryDLQJob(ctx, jobID))
	dead, err = svc.GetDLQJobs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, dead)
	assert.Len(t, q.PendingIDs(jobs.PriorityNormal), 1)
}

func TestJobService_PurgeDLQ(t *testing.T) {
	svc, q := setupJobService(t)
	ctx := context.Background()

	policy := jobs.RetryPolicy{MaxAttempts: 1, BaseDelay: time.Second, MaxDelay: time.Second, Multiplier: 1}
	for i := 0; i < 3; i++ {
		jobID, err := svc.Enqueue(ctx, jobs.TypeSessionSweep, nil, jobs.WithRetryPolicy(policy))
		require.NoError(t, err)
		_, err = q.Dequeue(ctx)
		require.NoError(t, err)
		require.NoError(t, q.Fail(ctx, jobID, assert.AnError))
	}

	require.NoError(t, svc.PurgeDLQ(ctx))

	dead, err := svc.GetDLQJobs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, dead)
}

func TestJobService_GetQueueStats(t *testing.T) {
	svc, _ := setupJobService(t)
	ctx := context.Background()

	_, err := svc.Enqueue(ctx, jobs.TypeSessionSweep, nil)
	require.NoError(t, err)
	_, err = svc.Enqueue(ctx, jobs.TypeSendEmail, jobs.EmailPayload{}, jobs.WithPriority(jobs.PriorityHigh))
	require.NoError(t, err)

	stats, err := svc.GetQueueStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.QueueSizes["normal"])
	assert.Equal(t, int64(1), stats.QueueSizes["high"])
	assert.True(t, stats.WorkerStats.Running)
	assert.Equal(t, 4, stats.WorkerStats.Concurrency)
	assert.False(t, stats.SchedulerStats.IsLeader)
}
