package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/testutil/mocks"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	return NewScheduler(nil, mocks.NewMockJobQueue(), zap.NewNop())
}

func TestScheduler_Register(t *testing.T) {
	s := newTestScheduler(t)

	err := s.Register(Entry{
		Name:     "nightly",
		Schedule: DailyMidnight,
		JobType:  jobs.TypeActivityCleanup,
	})
	require.NoError(t, err)

	listed := s.ListJobs()
	require.Len(t, listed, 1)
	assert.Equal(t, "nightly", listed[0].Name)
	assert.Equal(t, DailyMidnight, listed[0].Schedule)
	assert.Equal(t, jobs.TypeActivityCleanup, listed[0].JobType)
}

func TestScheduler_Register_InvalidCron(t *testing.T) {
	s := newTestScheduler(t)

	err := s.Register(Entry{
		Name:     "broken",
		Schedule: "not a cron expression",
		JobType:  jobs.TypeSessionSweep,
	})
	assert.Error(t, err)
	assert.Empty(t, s.ListJobs())
}

func TestScheduler_Register_Duplicate(t *testing.T) {
	s := newTestScheduler(t)

	entry := Entry{Name: "sweep", Schedule: EveryHour, JobType: jobs.TypeSessionSweep}
	require.NoError(t, s.Register(entry))
	assert.Error(t, s.Register(entry))
}

func TestRegisterMaintenance(t *testing.T) {
	s := newTestScheduler(t)
	require.NoError(t, RegisterMaintenance(s))

	byName := make(map[string]jobs.ScheduledJobInfo)
	for _, info := range s.ListJobs() {
		byName[info.Name] = info
	}

	require.Len(t, byName, 4)
	assert.Equal(t, jobs.TypeSessionSweep, byName["session-sweep"].JobType)
	assert.Equal(t, EveryHour, byName["session-sweep"].Schedule)
	assert.Equal(t, jobs.TypeActivityCleanup, byName["activity-cleanup"].JobType)
	assert.Equal(t, DailyMidnight, byName["activity-cleanup"].Schedule)
	assert.Equal(t, jobs.TypeRewardNotices, byName["reward-expiry-notices"].JobType)
	assert.Equal(t, jobs.TypeCollectionCaps, byName["collection-caps"].JobType)
}

func TestScheduler_IsLeader_DefaultsFalse(t *testing.T) {
	s := newTestScheduler(t)
	assert.False(t, s.IsLeader())
}

func TestScheduler_NextRun(t *testing.T) {
	s := newTestScheduler(t)
	require.NoError(t, s.Register(Entry{
		Name:     "sweep",
		Schedule: EveryHour,
		JobType:  jobs.TypeSessionSweep,
	}))

	next, err := s.NextRun("sweep")
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 0, next.Minute())

	_, err = s.NextRun("unknown")
	assert.Error(t, err)
}

func TestExecutionWindow_Granularity(t *testing.T) {
	now := time.Now().UTC()

	assert.Equal(t, now.Format("2006-01-02T15"), executionWindow(EveryHour))
	assert.Equal(t, now.Format("2006-01-02"), executionWindow(DailyMidnight))
	assert.Equal(t, now.Format("2006-01-02"), executionWindow(DailyMorning))
	assert.Equal(t, now.Format("2006-01-02T15:04"), executionWindow("*/7 * * * *"))

	year, week := now.ISOWeek()
	assert.Equal(t, fmt.Sprintf("%d-W%02d", year, week), executionWindow(WeeklySunday))
}

func TestUniqueKey_StableWithinWindow(t *testing.T) {
	entry := Entry{Name: "sweep", JobType: jobs.TypeSessionSweep}

	a := uniqueKey(entry, "2026-09-01T10")
	b := uniqueKey(entry, "2026-09-01T10")
	c := uniqueKey(entry, "2026-09-01T11")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "cron:sweep:")
}
