package handler_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/jobs/handler"
	"github.com/savora/savora-cloud-go/internal/jobs/worker"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

// The stubs embed the service interfaces and override only what the
// handlers call; anything else would panic and fail the test loudly.

type stubMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *stubMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+subject+"|"+body)
	return nil
}

func (m *stubMailer) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type stubActivities struct {
	service.ActivityService
	cleanupDays atomic.Int64
	capsCalls   atomic.Int64
}

func (s *stubActivities) CleanupOld(ctx context.Context, retentionDays int) (int64, error) {
	s.cleanupDays.Store(int64(retentionDays))
	return 7, nil
}

func (s *stubActivities) EnforceCaps(ctx context.Context) (int, error) {
	s.capsCalls.Add(1)
	return 2, nil
}

type stubSessions struct {
	service.SessionService
	sweeps atomic.Int64
}

func (s *stubSessions) SweepExpired(ctx context.Context) (int64, error) {
	s.sweeps.Add(1)
	return 3, nil
}

type stubReferrals struct {
	service.ReferralService
	notices atomic.Int64
}

func (s *stubReferrals) ExpireRewardNotices(ctx context.Context) error {
	s.notices.Add(1)
	return nil
}

type fixture struct {
	queue      *mocks.MockJobQueue
	pool       *worker.Pool
	registry   *handler.Registry
	mailer     *stubMailer
	activities *stubActivities
	sessions   *stubSessions
	referrals  *stubReferrals
}

func setupHandlers(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		queue:      mocks.NewMockJobQueue(),
		mailer:     &stubMailer{},
		activities: &stubActivities{},
		sessions:   &stubSessions{},
		referrals:  &stubReferrals{},
	}
	f.pool = worker.NewPool(f.queue, zap.NewNop(), nil, worker.PoolConfig{
		Concurrency:     2,
		PollInterval:    5 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	f.registry = handler.NewRegistry(f.pool, zap.NewNop())

	handler.RegisterAll(f.registry, handler.Deps{
		Mailer:     f.mailer,
		Activities: f.activities,
		Sessions:   f.sessions,
		Referrals:  f.referrals,
	}, zap.NewNop())

	require.NoError(t, f.pool.Start(context.Background()))
	t.Cleanup(func() { f.pool.Stop(context.Background()) })
	return f
}

func (f *fixture) run(t *testing.T, jobType string, payload any) {
	t.Helper()
	job, err := jobs.NewJobPayload(jobType, payload)
	require.NoError(t, err)
	require.NoError(t, f.queue.Enqueue(context.Background(), job))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, err := f.queue.GetJob(context.Background(), job.ID)
		require.NoError(t, err)
		if got.Status == jobs.JobStatusCompleted {
			return
		}
		if got.Status == jobs.JobStatusDead {
			t.Fatalf("job %s died: %s", jobType, got.LastError)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not complete in time", jobType)
}

func TestRegisterAll_ListsEveryJobType(t *testing.T) {
	f := setupHandlers(t)

	handlers := f.registry.ListHandlers()
	for _, jobType := range []string{
		jobs.TypeSendEmail,
		jobs.TypeActivityCleanup,
		jobs.TypeSessionSweep,
		jobs.TypeRewardNotices,
		jobs.TypeCollectionCaps,
	} {
		assert.Contains(t, handlers, jobType)
	}
}

func TestSendEmailHandler(t *testing.T) {
	f := setupHandlers(t)

	f.run(t, jobs.TypeSendEmail, jobs.EmailPayload{
		To:      "user@example.com",
		Subject: "Welcome",
		Body:    "Hello",
	})

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "user@example.com|Welcome|Hello", sent[0])
}

func TestActivityCleanupHandler(t *testing.T) {
	f := setupHandlers(t)

	f.run(t, jobs.TypeActivityCleanup, jobs.CleanupPayload{RetentionDays: 90})
	assert.Equal(t, int64(90), f.activities.cleanupDays.Load())

	// A zero retention falls back to the default window.
	f.run(t, jobs.TypeActivityCleanup, jobs.CleanupPayload{})
	assert.Equal(t, int64(jobs.DefaultActivityRetentionDays), f.activities.cleanupDays.Load())
}

func TestSessionSweepHandler(t *testing.T) {
	f := setupHandlers(t)

	f.run(t, jobs.TypeSessionSweep, nil)
	assert.Equal(t, int64(1), f.sessions.sweeps.Load())
}

func TestRewardNoticesHandler(t *testing.T) {
	f := setupHandlers(t)

	f.run(t, jobs.TypeRewardNotices, nil)
	assert.Equal(t, int64(1), f.referrals.notices.Load())
}

func TestCollectionCapsHandler(t *testing.T) {
	f := setupHandlers(t)

	f.run(t, jobs.TypeCollectionCaps, nil)
	assert.Equal(t, int64(1), f.activities.capsCalls.Load())
}
