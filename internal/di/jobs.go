package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/service"
	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/jobs/handler"
	"github.com/savora/savora-cloud-go/internal/jobs/queue"
	"github.com/savora/savora-cloud-go/internal/jobs/scheduler"
	"github.com/savora/savora-cloud-go/internal/jobs/worker"
	"github.com/savora/savora-cloud-go/internal/mailer"
)

// JobsModule provides the background job system
var JobsModule = fx.Module("jobs",
	fx.Provide(
		provideJobQueue,
		providePool,
		provideWorkerPool,
		provideScheduler,
		provideSchedulerInterface,
		provideJobService,
		provideHandlerRegistry,
		mailer.NewMailer,
	),
	fx.Invoke(
		registerJobHandlers,
		registerMaintenanceJobs,
		startJobWorkers,
	),
)

func provideJobQueue(client *redis.Client) jobs.Queue {
	return queue.NewRedisQueue(client)
}

func providePool(q jobs.Queue, logger *zap.Logger, metrics *jobs.Metrics) *worker.Pool {
	return worker.NewPool(q, logger, metrics, worker.DefaultPoolConfig())
}

func provideWorkerPool(pool *worker.Pool) jobs.WorkerPool {
	return pool
}

func provideScheduler(client *redis.Client, q jobs.Queue, logger *zap.Logger) *scheduler.Scheduler {
	return scheduler.NewScheduler(client, q, logger)
}

func provideSchedulerInterface(sched *scheduler.Scheduler) jobs.Scheduler {
	return sched
}

func provideJobService(q jobs.Queue, pool jobs.WorkerPool, sched jobs.Scheduler, metrics *jobs.Metrics) jobs.Service {
	return jobs.NewJobService(q, pool, sched, metrics)
}

func provideHandlerRegistry(pool *worker.Pool, logger *zap.Logger) *handler.Registry {
	return handler.NewRegistry(pool, logger)
}

func registerJobHandlers(
	registry *handler.Registry,
	mail mailer.Mailer,
	activityService service.ActivityService,
	sessionService service.SessionService,
	referralService service.ReferralService,
	logger *zap.Logger,
) {
	handler.RegisterAll(registry, handler.Deps{
		Mailer:     mail,
		Activities: activityService,
		Sessions:   sessionService,
		Referrals:  referralService,
	}, logger)
	logger.Info("Registered job handlers")
}

func registerMaintenanceJobs(sched *scheduler.Scheduler, logger *zap.Logger) {
	if err := scheduler.RegisterMaintenance(sched); err != nil {
		logger.Warn("Failed to register maintenance jobs", zap.Error(err))
		return
	}
	logger.Info("Registered maintenance jobs")
}

func startJobWorkers(lc fx.Lifecycle, pool *worker.Pool, sched *scheduler.Scheduler, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting job worker pool")
			if err := pool.Start(ctx); err != nil {
				return fmt.Errorf("failed to start worker pool: %w", err)
			}

			logger.Info("Starting job scheduler")
			if err := sched.Start(ctx); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping job scheduler")
			if err := sched.Stop(ctx); err != nil {
				logger.Warn("Error stopping scheduler", zap.Error(err))
			}

			logger.Info("Stopping job worker pool")
			if err := pool.Stop(ctx); err != nil {
				logger.Warn("Error stopping worker pool", zap.Error(err))
			}

			return nil
		},
	})
}
