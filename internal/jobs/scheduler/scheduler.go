// Package scheduler turns cron expressions into enqueued jobs. Every
// instance of the deployment runs a scheduler, but only the current
// leader enqueues, so recurring work fires once per window no matter how
// many replicas are up.
package scheduler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/jobs"
)

// Common cron expressions.
const (
	EveryMinute   = "* * * * *"
	EveryHour     = "0 * * * *"
	DailyMidnight = "0 0 * * *"
	DailyMorning  = "0 9 * * *"
	WeeklySunday  = "0 3 * * 0"
)

const (
	leaderKey           = "savora:jobs:scheduler:leader"
	executionWindowPref = "savora:jobs:scheduler:window:"
)

// Config holds the scheduler lease and deduplication TTLs.
type Config struct {
	LeaderLockTTL  time.Duration
	WindowDedupTTL time.Duration
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		LeaderLockTTL:  30 * time.Second,
		WindowDedupTTL: 24 * time.Hour,
	}
}

// Entry is one recurring job registration.
type Entry struct {
	Name     string
	Schedule string // five-field cron expression
	JobType  string
	Payload  any
	Priority jobs.Priority
	Tags     []string
}

// Scheduler manages cron entries with Redis leader election.
type Scheduler struct {
	redis   *redis.Client
	queue   jobs.Queue
	log     *zap.Logger
	config  Config
	cron    *cron.Cron
	entries map[string]Entry
	mu      sync.RWMutex

	instanceID string
	isLeader   bool
	leaderMu   sync.RWMutex

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

var _ jobs.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a scheduler with default settings.
func NewScheduler(redisClient *redis.Client, q jobs.Queue, log *zap.Logger) *Scheduler {
	return NewSchedulerWithConfig(redisClient, q, log, DefaultConfig())
}

// NewSchedulerWithConfig creates a scheduler with explicit settings.
func NewSchedulerWithConfig(redisClient *redis.Client, q jobs.Queue, log *zap.Logger, config Config) *Scheduler {
	return &Scheduler{
		redis:      redisClient,
		queue:      q,
		log:        log,
		config:     config,
		cron:       cron.New(),
		entries:    make(map[string]Entry),
		instanceID: uuid.New().String(),
		stopCh:     make(chan struct{}),
	}
}

// Register adds a recurring job. Must be called before Start.
func (s *Scheduler) Register(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry.Name]; exists {
		return fmt.Errorf("scheduled job %s already registered", entry.Name)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(entry.Schedule); err != nil {
		return fmt.Errorf("invalid cron expression for %s: %w", entry.Name, err)
	}

	s.entries[entry.Name] = entry
	s.log.Info("registered scheduled job",
		zap.String("name", entry.Name),
		zap.String("schedule", entry.Schedule),
		zap.String("job_type", entry.JobType),
	)
	return nil
}

// RegisterMaintenance registers the recurring maintenance jobs: the
// hourly session sweep, the nightly activity retention cleanup, the
// morning reward expiry notices and the weekly collection cap repair.
func RegisterMaintenance(s *Scheduler) error {
	entries := []Entry{
		{
			Name:     "session-sweep",
			Schedule: EveryHour,
			JobType:  jobs.TypeSessionSweep,
			Priority: jobs.PriorityLow,
			Tags:     []string{"maintenance"},
		},
		{
			Name:     "activity-cleanup",
			Schedule: DailyMidnight,
			JobType:  jobs.TypeActivityCleanup,
			Payload:  jobs.CleanupPayload{RetentionDays: jobs.DefaultActivityRetentionDays},
			Priority: jobs.PriorityLow,
			Tags:     []string{"maintenance"},
		},
		{
			Name:     "reward-expiry-notices",
			Schedule: DailyMorning,
			JobType:  jobs.TypeRewardNotices,
			Priority: jobs.PriorityNormal,
			Tags:     []string{"maintenance", "email"},
		},
		{
			Name:     "collection-caps",
			Schedule: WeeklySunday,
			JobType:  jobs.TypeCollectionCaps,
			Priority: jobs.PriorityLow,
			Tags:     []string{"maintenance"},
		},
	}

	for _, e := range entries {
		if err := s.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// Start begins leader election and cron evaluation.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	s.running = true
	s.log.Info("starting scheduler", zap.String("instance_id", s.instanceID))

	s.wg.Add(1)
	go s.leaderElectionLoop(ctx)

	s.mu.RLock()
	for _, entry := range s.entries {
		e := entry
		if _, err := s.cron.AddFunc(e.Schedule, func() {
			s.fire(context.Background(), e)
		}); err != nil {
			s.log.Error("failed to add cron entry",
				zap.String("name", e.Name),
				zap.Error(err),
			)
		}
	}
	s.mu.RUnlock()

	s.cron.Start()
	return nil
}

// Stop halts cron evaluation and releases leadership.
func (s *Scheduler) Stop(ctx context.Context) error {
	if !s.running {
		return nil
	}

	s.log.Info("stopping scheduler")
	s.running = false
	close(s.stopCh)

	cronCtx := s.cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}

	s.releaseLeadership(ctx)
	s.wg.Wait()
	return nil
}

// fire enqueues one occurrence of an entry if this instance leads and no
// other instance already enqueued the same execution window.
func (s *Scheduler) fire(ctx context.Context, entry Entry) {
	if !s.IsLeader() {
		return
	}

	window := executionWindow(entry.Schedule)
	windowKey := executionWindowPref + entry.Name + ":" + window

	acquired, err := s.redis.SetNX(ctx, windowKey, s.instanceID, s.config.WindowDedupTTL).Result()
	if err != nil {
		s.log.Error("failed to claim execution window",
			zap.String("name", entry.Name),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		s.log.Debug("execution window already claimed",
			zap.String("name", entry.Name),
			zap.String("window", window),
		)
		return
	}

	payload, err := jobs.NewJobPayload(entry.JobType, entry.Payload,
		jobs.WithPriority(entry.Priority),
		jobs.WithUniqueKey(uniqueKey(entry, window)),
		jobs.WithTags(append(entry.Tags, "scheduled", "cron:"+entry.Name)...),
	)
	if err != nil {
		s.log.Error("failed to build scheduled job payload",
			zap.String("name", entry.Name),
			zap.Error(err),
		)
		return
	}

	if err := s.queue.Enqueue(ctx, payload); err != nil {
		if err == jobs.ErrDuplicateJob {
			return
		}
		s.log.Error("failed to enqueue scheduled job",
			zap.String("name", entry.Name),
			zap.Error(err),
		)
		return
	}

	s.log.Info("scheduled job enqueued",
		zap.String("name", entry.Name),
		zap.String("job_id", payload.ID),
		zap.String("window", window),
	)
}

// executionWindow maps now onto an identifier with the granularity of
// the schedule, so two leaders racing over a handover cannot both fire
// the same occurrence.
func executionWindow(schedule string) string {
	now := time.Now().UTC()

	switch schedule {
	case EveryHour:
		return now.Format("2006-01-02T15")
	case DailyMidnight, DailyMorning:
		return now.Format("2006-01-02")
	case WeeklySunday:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return now.Format("2006-01-02T15:04")
	}
}

// uniqueKey derives the queue deduplication key for one occurrence.
func uniqueKey(entry Entry, window string) string {
	data := fmt.Sprintf("%s:%s:%s:%v", entry.Name, entry.JobType, window, entry.Payload)
	sum := sha256.Sum256([]byte(data))
	return "cron:" + entry.Name + ":" + hex.EncodeToString(sum[:8])
}

// leaderElectionLoop acquires and renews the scheduler lease.
func (s *Scheduler) leaderElectionLoop(ctx context.Context) {
	defer s.wg.Done()

	s.tryAcquireLeadership(ctx)

	ticker := time.NewTicker(s.config.LeaderLockTTL / 3)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tryAcquireLeadership(ctx)
		}
	}
}

func (s *Scheduler) tryAcquireLeadership(ctx context.Context) {
	s.leaderMu.Lock()
	defer s.leaderMu.Unlock()

	set, err := s.redis.SetNX(ctx, leaderKey, s.instanceID, s.config.LeaderLockTTL).Result()
	if err != nil {
		s.log.Error("leader election failed", zap.Error(err))
		s.isLeader = false
		return
	}

	if set {
		if !s.isLeader {
			s.log.Info("acquired scheduler leadership", zap.String("instance_id", s.instanceID))
		}
		s.isLeader = true
		return
	}

	current, err := s.redis.Get(ctx, leaderKey).Result()
	if err != nil {
		s.isLeader = false
		return
	}

	if current == s.instanceID {
		s.redis.Expire(ctx, leaderKey, s.config.LeaderLockTTL)
		s.isLeader = true
	} else {
		if s.isLeader {
			s.log.Info("lost scheduler leadership",
				zap.String("instance_id", s.instanceID),
				zap.String("new_leader", current),
			)
		}
		s.isLeader = false
	}
}

// releaseLeadership drops the lease on shutdown so a standby takes over
// without waiting out the TTL.
func (s *Scheduler) releaseLeadership(ctx context.Context) {
	s.leaderMu.Lock()
	defer s.leaderMu.Unlock()

	if !s.isLeader {
		return
	}

	// Compare-and-delete so we never remove a lease another instance
	// acquired in the meantime.
	script := `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`
	if _, err := s.redis.Eval(ctx, script, []string{leaderKey}, s.instanceID).Result(); err != nil {
		s.log.Warn("failed to release scheduler leadership", zap.Error(err))
	}
	s.isLeader = false
}

// IsLeader reports whether this instance holds the scheduler lease.
func (s *Scheduler) IsLeader() bool {
	s.leaderMu.RLock()
	defer s.leaderMu.RUnlock()
	return s.isLeader
}

// ListJobs returns the registered entries.
func (s *Scheduler) ListJobs() []jobs.ScheduledJobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]jobs.ScheduledJobInfo, 0, len(s.entries))
	for _, entry := range s.entries {
		result = append(result, jobs.ScheduledJobInfo{
			Name:     entry.Name,
			Schedule: entry.Schedule,
			JobType:  entry.JobType,
			Priority: entry.Priority.String(),
		})
	}
	return result
}

// NextRun returns the next occurrence of a registered entry.
func (s *Scheduler) NextRun(name string) (time.Time, error) {
	s.mu.RLock()
	entry, exists := s.entries[name]
	s.mu.RUnlock()

	if !exists {
		return time.Time{}, fmt.Errorf("scheduled job %s not found", name)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(entry.Schedule)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(time.Now()), nil
}
