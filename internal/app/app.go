package app

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/wallify-bot/internal/command"
	"github.com/orgball2608/wallify-bot/internal/command/commandimpl"
	"github.com/orgball2608/wallify-bot/internal/download"
	"github.com/orgball2608/wallify-bot/internal/download/downloadimpl"
	"github.com/orgball2608/wallify-bot/internal/httpserver"
	"github.com/orgball2608/wallify-bot/internal/metrics"
	"github.com/orgball2608/wallify-bot/internal/migrations"
	"github.com/orgball2608/wallify-bot/internal/notify"
	"github.com/orgball2608/wallify-bot/internal/notify/notifyimpl"
	"github.com/orgball2608/wallify-bot/internal/pexels"
	"github.com/orgball2608/wallify-bot/internal/pexels/pexelsimpl"
	"github.com/orgball2608/wallify-bot/internal/ratelimit"
	repositories "github.com/orgball2608/wallify-bot/internal/repositories/fx"
	"github.com/orgball2608/wallify-bot/internal/session/sessionimpl"
	"github.com/orgball2608/wallify-bot/internal/telegram"
	"github.com/orgball2608/wallify-bot/internal/telegram/telegramimpl"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"github.com/orgball2608/wallify-bot/pkg/pgx"
	"go.uber.org/fx"
)

const (
	migrateTimeout = time.Minute
	restartDelay   = 5 * time.Second
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		func() clockwork.Clock {
			return clockwork.NewRealClock()
		},
		func() ratelimit.Limiter {
			return ratelimit.NewInMemoryLimiter(2*time.Second, 5)
		},
	),
	metrics.Module,
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			pexelsimpl.New,
			fx.As(new(pexels.Client)),
		),
		fx.Annotate(
			notifyimpl.New,
			fx.As(new(notify.Factory)),
		),
		fx.Annotate(
			downloadimpl.New,
			fx.As(new(download.Factory)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
		httpserver.New,
	),
	repositories.Module,
	sessionimpl.Module,
	fx.Invoke(migrate),
	fx.Invoke(func(*httpserver.Server) {}),
	fx.Invoke(run),
)

func migrate(cfg *config.Config, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := migrations.Up(ctx, cfg.GetDSN()); err != nil {
		log.Error("Failed to apply migrations", "error", err)
		return err
	}
	log.Info("Migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, cmd command.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if cfg.Pexels.APIKey == "" {
				log.Warn("PEXELS_API_KEY is not set, searches will report a configuration error")
			}

			go func() {
				defer close(done)
				for {
					err := cmd.HandleCommand(ctx)
					if errors.Is(err, context.Canceled) {
						return
					}
					log.Error("Command handler stopped, restarting", "error", err, "delay", restartDelay.String())

					select {
					case <-ctx.Done():
						return
					case <-time.After(restartDelay):
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
