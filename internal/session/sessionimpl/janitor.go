package sessionimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	downloadRepo "github.com/orgball2608/wallify-bot/internal/repositories/download"
	"github.com/orgball2608/wallify-bot/internal/session"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"go.uber.org/fx"
)

const (
	evictInterval  = 10 * time.Minute
	cleanupTimeout = 5 * time.Minute
)

type JanitorOpts struct {
	fx.In

	LC        fx.Lifecycle
	Config    *config.Config
	Logger    logger.Logger
	Clock     clockwork.Clock
	Sessions  session.Manager
	Downloads downloadRepo.Repository
}

// Janitor runs the periodic session eviction and download log cleanup.
type Janitor struct {
	scheduler gocron.Scheduler
	sessions  session.Manager
	downloads downloadRepo.Repository
	retention time.Duration
	idleTTL   time.Duration
	logger    logger.Logger
}

func NewJanitor(opts JanitorOpts) (*Janitor, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithClock(opts.Clock),
		gocron.WithLocation(time.Local),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	j := &Janitor{
		scheduler: scheduler,
		sessions:  opts.Sessions,
		downloads: opts.Downloads,
		retention: opts.Config.Session.DownloadRetention,
		idleTTL:   opts.Config.Session.IdleTTL,
		logger:    opts.Logger.WithComponent("Janitor"),
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(evictInterval),
		gocron.NewTask(j.EvictIdle),
		gocron.WithName("evict-idle-sessions"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule session eviction: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
			defer cancel()
			j.CleanupDownloads(ctx)
		}),
		gocron.WithName("cleanup-download-log"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule download cleanup: %w", err)
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			j.logger.Info("Scheduler started", "evict_interval", evictInterval.String())
			return nil
		},
		OnStop: func(context.Context) error {
			return scheduler.Shutdown()
		},
	})

	return j, nil
}

func (j *Janitor) EvictIdle() {
	if n := j.sessions.EvictIdle(j.idleTTL); n > 0 {
		j.logger.Info("Evicted idle sessions", "count", n, "remaining", j.sessions.Len())
	}
}

func (j *Janitor) CleanupDownloads(ctx context.Context) {
	deleted, err := j.downloads.CleanupOldRecords(ctx, j.retention)
	if err != nil {
		j.logger.Error("Failed to clean up download log", "error", err)
		return
	}
	j.logger.Info("Cleaned up download log", "deleted", deleted, "retention", j.retention.String())
}
