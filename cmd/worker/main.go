package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/config"
	mongodao "github.com/savora/savora-cloud-go/internal/domain/dao/mongo"
	repoimpl "github.com/savora/savora-cloud-go/internal/domain/repository/impl"
	svcimpl "github.com/savora/savora-cloud-go/internal/domain/service/impl"
	"github.com/savora/savora-cloud-go/internal/jobs"
	"github.com/savora/savora-cloud-go/internal/jobs/handler"
	"github.com/savora/savora-cloud-go/internal/jobs/queue"
	"github.com/savora/savora-cloud-go/internal/jobs/scheduler"
	"github.com/savora/savora-cloud-go/internal/jobs/worker"
	"github.com/savora/savora-cloud-go/internal/mailer"
	"github.com/savora/savora-cloud-go/internal/security"
	"github.com/savora/savora-cloud-go/pkg/logger"
)

// The worker binary runs the job system without the HTTP API. It
// connects to the same MongoDB and Redis as the server, so maintenance
// jobs operate on live data while the API stays free of background
// load.
func main() {
	cfg, log := mustLoadConfig()
	defer log.Sync()

	log.Info("Starting Savora worker",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := mustConnectRedis(ctx, cfg, log)
	defer redisClient.Close()

	mongoClient, db := mustConnectMongo(ctx, cfg, log)
	defer mongoClient.Disconnect(context.Background())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := jobs.NewMetrics(registry)

	jobQueue := queue.NewRedisQueue(redisClient)
	pool := worker.NewPool(jobQueue, log, metrics, poolConfig())
	sched := scheduler.NewScheduler(redisClient, jobQueue, log)

	deps, err := buildHandlerDeps(cfg, db, jobQueue, pool, sched, metrics, log)
	if err != nil {
		log.Fatal("Failed to build job handler dependencies", zap.Error(err))
	}

	handlerRegistry := handler.NewRegistry(pool, log)
	handler.RegisterAll(handlerRegistry, deps, log)

	if err := scheduler.RegisterMaintenance(sched); err != nil {
		log.Fatal("Failed to register maintenance jobs", zap.Error(err))
	}

	if err := pool.Start(ctx); err != nil {
		log.Fatal("Failed to start worker pool", zap.Error(err))
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}

	go startMetricsServer(registry, pool, sched, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received, stopping workers")
	cancel()
	gracefulShutdown(pool, sched, log)
}

func mustLoadConfig() (*config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: cfg.App.Debug,
		Encoding:    "json",
	})
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, log
}

func mustConnectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr()))
	return client
}

func mustConnectMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.Client, *mongo.Database) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.MongoURI()))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	log.Info("Connected to MongoDB", zap.String("database", cfg.Database.Name))
	return client, client.Database(cfg.Database.Name)
}

func poolConfig() worker.PoolConfig {
	poolCfg := worker.DefaultPoolConfig()
	if concurrency := os.Getenv("SAVORA_WORKER_CONCURRENCY"); concurrency != "" {
		fmt.Sscanf(concurrency, "%d", &poolCfg.Concurrency)
	}
	return poolCfg
}

// nopNotifier satisfies the security notifier dependency. The worker
// has no websocket clients; live events only exist on the API nodes.
type nopNotifier struct{}

func (nopNotifier) Publish(userID uint, eventType, message string) {}

func buildHandlerDeps(
	cfg *config.Config,
	db *mongo.Database,
	jobQueue jobs.Queue,
	pool jobs.WorkerPool,
	sched jobs.Scheduler,
	metrics *jobs.Metrics,
	log *zap.Logger,
) (handler.Deps, error) {
	idCounter := mongodao.NewIDCounter(db)
	userRepo := repoimpl.NewUserRepository(mongodao.NewUserDAO(db, idCounter))

	cipher, err := security.NewFieldCipher(cfg.Referral.FieldSecret)
	if err != nil {
		return handler.Deps{}, err
	}

	dispatcher := jobs.NewJobService(jobQueue, pool, sched, metrics)
	notifier := nopNotifier{}

	activityService := svcimpl.NewActivityService(userRepo, log)
	sessionService := svcimpl.NewSessionService(userRepo, activityService, notifier)
	referralService := svcimpl.NewReferralService(userRepo, cipher, activityService, dispatcher, notifier, cfg.Referral, log)

	return handler.Deps{
		Mailer:     mailer.NewMailer(cfg.SMTP, log),
		Activities: activityService,
		Sessions:   sessionService,
		Referrals:  referralService,
	}, nil
}

func startMetricsServer(registry *prometheus.Registry, pool *worker.Pool, sched *scheduler.Scheduler, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := pool.Stats()
		w.Header().Set("Content-Type", "application/json")
		if !stats.Running {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		fmt.Fprintf(w, `{"running":%t,"active_workers":%d,"is_leader":%t}`,
			stats.Running, stats.ActiveWorkers, sched.IsLeader())
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ready"}`))
	})

	port := os.Getenv("SAVORA_METRICS_PORT")
	if port == "" {
		port = "9100"
	}
	log.Info("Starting metrics server", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Error("Metrics server error", zap.Error(err))
	}
}

func gracefulShutdown(pool *worker.Pool, sched *scheduler.Scheduler, log *zap.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), worker.DefaultPoolConfig().ShutdownTimeout)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping scheduler", zap.Error(err))
	}
	if err := pool.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping worker pool", zap.Error(err))
	}
	log.Info("Worker shutdown complete")
}
