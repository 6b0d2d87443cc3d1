package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campfirehq/youthorg-api/internal/backup"
	"github.com/campfirehq/youthorg-api/internal/email"
	"github.com/campfirehq/youthorg-api/internal/repository/postgres"
	historyService "github.com/campfirehq/youthorg-api/internal/service/history"
	summaryService "github.com/campfirehq/youthorg-api/internal/service/summary"
	"github.com/campfirehq/youthorg-api/internal/storage"
	"github.com/campfirehq/youthorg-api/pkg/metrics"
)

// WorkerConfig comes entirely from the environment; the worker runs in
// containers where a config file is one more thing to mount.
type WorkerConfig struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"youthorg"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"youthorg"`
	DBName     string `envconfig:"DB_NAME" default:"youthorg"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"noreply@example.org"`

	MediaRoot  string `envconfig:"MEDIA_ROOT" default:"./data/media"`
	BackupRoot string `envconfig:"BACKUP_ROOT" default:"./data/backups"`

	SummaryWeekday   time.Weekday  `envconfig:"SUMMARY_WEEKDAY" default:"1"`
	CheckInterval    time.Duration `envconfig:"CHECK_INTERVAL" default:"1h"`
	HistoryRetention time.Duration `envconfig:"HISTORY_RETENTION" default:"8760h"`
	BackupEnabled    bool          `envconfig:"BACKUP_ENABLED" default:"false"`

	HealthPort int `envconfig:"HEALTH_PORT" default:"8081"`
}

// Worker runs the periodic jobs: the weekly summary mail, the assignment
// history retention sweep, and the optional media backup.
type Worker struct {
	cfg     WorkerConfig
	logger  *zap.Logger
	summary *summaryService.Service
	history *historyService.Service
	backups *backup.Manager
	metrics *metrics.Metrics

	lastSummary time.Time
	lastPrune   time.Time
	lastBackup  time.Time
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg WorkerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Fatal("failed to load worker config", zap.Error(err))
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	eventRepo := postgres.NewEventRepository(db)
	historyRepo := postgres.NewHistoryRepository(db)
	userRepo := postgres.NewUserRepository(db)

	mailer := email.NewSMTPService(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	w := &Worker{
		cfg:     cfg,
		logger:  logger,
		summary: summaryService.NewService(eventRepo, historyRepo, userRepo, mailer),
		history: historyService.NewService(historyRepo),
		metrics: metrics.NewMetrics("youthorg", "worker"),
	}

	if cfg.BackupEnabled {
		manager, err := newBackupManager(cfg)
		if err != nil {
			logger.Fatal("failed to initialize backups", zap.Error(err))
		}
		w.backups = manager
	}

	setupHealthCheck(cfg.HealthPort, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	w.Run(ctx)
}

func newBackupManager(cfg WorkerConfig) (*backup.Manager, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	secrets := backup.NewRedisSecretStore(redis.NewClient(opts))

	mediaStore, err := storage.NewFSStore(cfg.MediaRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open media storage: %w", err)
	}
	backupStore, err := storage.NewFSStore(cfg.BackupRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup storage: %w", err)
	}

	return backup.NewManager(secrets, mediaStore, backupStore), nil
}

func setupHealthCheck(port int, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			logger.Error("health check server failed", zap.Error(err))
			os.Exit(1)
		}
	}()
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.CheckInterval)
	defer ticker.Stop()

	w.logger.Info("worker started",
		zap.Duration("check_interval", w.cfg.CheckInterval),
		zap.Bool("backup_enabled", w.backups != nil),
	)

	// Run once at startup so a crashed worker catches up immediately.
	w.tick(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return
		case now := <-ticker.C:
			w.tick(ctx, now)
		}
	}
}

func (w *Worker) tick(ctx context.Context, now time.Time) {
	if w.summaryDue(now) {
		w.runSummary(ctx, now)
	}
	if w.pruneDue(now) {
		w.runPrune(ctx, now)
	}
	if w.backups != nil && w.backupDue(now) {
		w.runBackup(ctx, now)
	}
}

// summaryDue fires once on the configured weekday.
func (w *Worker) summaryDue(now time.Time) bool {
	if now.Weekday() != w.cfg.SummaryWeekday {
		return false
	}
	return !sameDay(w.lastSummary, now)
}

func (w *Worker) pruneDue(now time.Time) bool {
	return !sameDay(w.lastPrune, now)
}

func (w *Worker) backupDue(now time.Time) bool {
	return !sameDay(w.lastBackup, now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (w *Worker) runSummary(ctx context.Context, now time.Time) {
	timer := prometheus.NewTimer(w.metrics.SummaryLatency)
	defer timer.ObserveDuration()

	if err := w.summary.SendWeeklySummary(ctx, now); err != nil {
		w.metrics.SummaryRuns.WithLabelValues("error").Inc()
		w.logger.Error("weekly summary failed", zap.Error(err))
		return
	}

	w.metrics.SummaryRuns.WithLabelValues("ok").Inc()
	w.lastSummary = now
	w.logger.Info("weekly summary sent")
}

func (w *Worker) runPrune(ctx context.Context, now time.Time) {
	deleted, err := w.history.Prune(ctx, w.cfg.HistoryRetention)
	if err != nil {
		w.metrics.HistoryPruneRuns.WithLabelValues("error").Inc()
		w.logger.Error("history prune failed", zap.Error(err))
		return
	}

	w.metrics.HistoryPruneRuns.WithLabelValues("ok").Inc()
	w.metrics.HistoryPruned.Add(float64(deleted))
	w.lastPrune = now
	w.logger.Info("history pruned", zap.Int64("deleted", deleted))
}

func (w *Worker) runBackup(ctx context.Context, now time.Time) {
	session, err := w.backups.NewSession(ctx)
	if err != nil {
		w.logger.Error("backup session failed", zap.Error(err))
		return
	}

	copied, failed, err := session.BackupPrefix(ctx, "galleries")
	if err != nil {
		w.logger.Error("backup failed", zap.Error(err))
		return
	}

	w.metrics.BackupObjects.Add(float64(copied))
	w.metrics.BackupFailures.Add(float64(failed))
	w.lastBackup = now
	w.logger.Info("backup finished", zap.Int("copied", copied), zap.Int("failed", failed))
}
