// Package queue implements the Redis storage layer of the job system.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/savora/savora-cloud-go/internal/jobs"
)

const (
	keyPrefixJob    = "savora:jobs:job:"
	keyPrefixUnique = "savora:jobs:unique:"
	keyScheduled    = "savora:jobs:scheduled"
	keyDLQ          = "savora:jobs:dlq"
	keyStats        = "savora:jobs:stats"

	// Job records are kept a day after their last update so completed
	// and dead jobs stay inspectable without growing forever.
	jobRecordTTL = 24 * time.Hour
)

// RedisQueue implements jobs.Queue. Runnable job ids live in one list
// per priority, deferred ids in a sorted set scored by their due time.
type RedisQueue struct {
	client *redis.Client
}

// NewRedisQueue creates a Redis-backed queue.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job *jobs.JobPayload) error {
	if job.UniqueKey != "" {
		exists, err := q.client.Exists(ctx, keyPrefixUnique+job.UniqueKey).Result()
		if err != nil {
			return fmt.Errorf("check unique key: %w", err)
		}
		if exists > 0 {
			return jobs.ErrDuplicateJob
		}
	}

	if err := q.storeJob(ctx, job); err != nil {
		return err
	}

	if job.ScheduledAt != nil && job.ScheduledAt.After(time.Now()) {
		err := q.client.ZAdd(ctx, keyScheduled, redis.Z{
			Score:  float64(job.ScheduledAt.Unix()),
			Member: job.ID,
		}).Err()
		if err != nil {
			return fmt.Errorf("schedule job: %w", err)
		}
	} else {
		if err := q.client.LPush(ctx, job.Priority.QueueName(), job.ID).Err(); err != nil {
			return fmt.Errorf("push job: %w", err)
		}
	}

	if job.UniqueKey != "" {
		ttl := jobRecordTTL
		if job.ScheduledAt != nil {
			ttl = time.Until(*job.ScheduledAt) + jobRecordTTL
		}
		if err := q.client.Set(ctx, keyPrefixUnique+job.UniqueKey, job.ID, ttl).Err(); err != nil {
			return fmt.Errorf("set unique key: %w", err)
		}
	}

	q.client.HIncrBy(ctx, keyStats, "enqueued_total", 1)
	q.client.HIncrBy(ctx, keyStats, "pending", 1)
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, priorities ...jobs.Priority) (*jobs.JobPayload, error) {
	if len(priorities) == 0 {
		priorities = []jobs.Priority{
			jobs.PriorityCritical,
			jobs.PriorityHigh,
			jobs.PriorityNormal,
			jobs.PriorityLow,
		}
	}

	for _, priority := range priorities {
		// RPOP is atomic, so two workers can never pop the same id.
		jobID, err := q.client.RPop(ctx, priority.QueueName()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("dequeue: %w", err)
		}

		job, err := q.GetJob(ctx, jobID)
		if err != nil {
			// The record expired while the id sat in the queue.
			continue
		}

		now := time.Now()
		job.Status = jobs.JobStatusRunning
		job.StartedAt = &now
		job.Attempts++

		if err := q.UpdateJob(ctx, job); err != nil {
			return nil, err
		}

		q.client.HIncrBy(ctx, keyStats, "pending", -1)
		return job, nil
	}

	return nil, jobs.ErrQueueEmpty
}

func (q *RedisQueue) GetJob(ctx context.Context, jobID string) (*jobs.JobPayload, error) {
	data, err := q.client.Get(ctx, keyPrefixJob+jobID).Bytes()
	if err == redis.Nil {
		return nil, jobs.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	var job jobs.JobPayload
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &job, nil
}

func (q *RedisQueue) UpdateJob(ctx context.Context, job *jobs.JobPayload) error {
	return q.storeJob(ctx, job)
}

func (q *RedisQueue) storeJob(ctx context.Context, job *jobs.JobPayload) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := q.client.Set(ctx, keyPrefixJob+job.ID, data, jobRecordTTL).Err(); err != nil {
		return fmt.Errorf("store job: %w", err)
	}
	return nil
}

func (q *RedisQueue) Complete(ctx context.Context, jobID string) error {
	job, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	now := time.Now()
	job.Status = jobs.JobStatusCompleted
	job.CompletedAt = &now

	if err := q.UpdateJob(ctx, job); err != nil {
		return err
	}

	if job.UniqueKey != "" {
		q.client.Del(ctx, keyPrefixUnique+job.UniqueKey)
	}

	q.client.HIncrBy(ctx, keyStats, "completed_total", 1)
	return nil
}

func (q *RedisQueue) Fail(ctx context.Context, jobID string, jobErr error) error {
	job, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	job.LastError = jobErr.Error()

	if job.Attempts < job.MaxAttempts {
		job.Status = jobs.JobStatusRetrying
		due := time.Now().Add(job.Retry.Backoff(job.Attempts))
		job.ScheduledAt = &due

		if err := q.UpdateJob(ctx, job); err != nil {
			return err
		}
		err := q.client.ZAdd(ctx, keyScheduled, redis.Z{
			Score:  float64(due.Unix()),
			Member: job.ID,
		}).Err()
		if err != nil {
			return fmt.Errorf("schedule retry: %w", err)
		}
		q.client.HIncrBy(ctx, keyStats, "retries_total", 1)
	} else {
		job.Status = jobs.JobStatusDead
		if err := q.UpdateJob(ctx, job); err != nil {
			return err
		}
		if err := q.client.LPush(ctx, keyDLQ, job.ID).Err(); err != nil {
			return fmt.Errorf("move to dlq: %w", err)
		}
		if job.UniqueKey != "" {
			q.client.Del(ctx, keyPrefixUnique+job.UniqueKey)
		}
		q.client.HIncrBy(ctx, keyStats, "dead_total", 1)
	}

	q.client.HIncrBy(ctx, keyStats, "failed_total", 1)
	return nil
}

func (q *RedisQueue) ProcessScheduled(ctx context.Context) (int, error) {
	jobIDs, err := q.client.ZRangeByScore(ctx, keyScheduled, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", time.Now().Unix()),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("read scheduled set: %w", err)
	}

	promoted := 0
	for _, jobID := range jobIDs {
		job, err := q.GetJob(ctx, jobID)
		if err != nil {
			q.client.ZRem(ctx, keyScheduled, jobID)
			continue
		}

		if err := q.client.ZRem(ctx, keyScheduled, jobID).Err(); err != nil {
			continue
		}

		job.ScheduledAt = nil
		job.Status = jobs.JobStatusPending
		if err := q.UpdateJob(ctx, job); err != nil {
			continue
		}

		if err := q.client.LPush(ctx, job.Priority.QueueName(), job.ID).Err(); err != nil {
			continue
		}
		promoted++
	}

	return promoted, nil
}

func (q *RedisQueue) GetDLQJobs(ctx context.Context, limit int64) ([]*jobs.JobPayload, error) {
	jobIDs, err := q.client.LRange(ctx, keyDLQ, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read dlq: %w", err)
	}

	var dead []*jobs.JobPayload
	for _, jobID := range jobIDs {
		job, err := q.GetJob(ctx, jobID)
		if err != nil {
			continue
		}
		dead = append(dead, job)
	}
	return dead, nil
}

func (q *RedisQueue) RetryDLQJob(ctx context.Context, jobID string) error {
	job, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	if err := q.client.LRem(ctx, keyDLQ, 1, jobID).Err(); err != nil {
		return fmt.Errorf("remove from dlq: %w", err)
	}

	// A fresh id so the resurrected run does not collide with the dead
	// record.
	job.ID = uuid.New().String()
	job.Status = jobs.JobStatusPending
	job.Attempts = 0
	job.LastError = ""

	return q.Enqueue(ctx, job)
}

func (q *RedisQueue) DeleteJob(ctx context.Context, jobID string) error {
	job, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	q.client.Del(ctx, keyPrefixJob+jobID)
	q.client.LRem(ctx, job.Priority.QueueName(), 0, jobID)
	q.client.ZRem(ctx, keyScheduled, jobID)
	q.client.LRem(ctx, keyDLQ, 0, jobID)

	if job.UniqueKey != "" {
		q.client.Del(ctx, keyPrefixUnique+job.UniqueKey)
	}
	return nil
}

func (q *RedisQueue) RequeueJob(ctx context.Context, jobID string, queueKey string) error {
	return q.client.LPush(ctx, queueKey, jobID).Err()
}

func (q *RedisQueue) GetStats(ctx context.Context) (map[string]int64, error) {
	raw, err := q.client.HGetAll(ctx, keyStats).Result()
	if err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for k, v := range raw {
		var n int64
		fmt.Sscanf(v, "%d", &n)
		stats[k] = n
	}

	for _, p := range []jobs.Priority{jobs.PriorityCritical, jobs.PriorityHigh, jobs.PriorityNormal, jobs.PriorityLow} {
		size, _ := q.client.LLen(ctx, p.QueueName()).Result()
		stats["queue_"+p.String()] = size
	}

	scheduled, _ := q.client.ZCard(ctx, keyScheduled).Result()
	stats["scheduled"] = scheduled

	dlq, _ := q.client.LLen(ctx, keyDLQ).Result()
	stats["dlq"] = dlq

	return stats, nil
}
