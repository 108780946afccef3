package logger

import (
	"context"
	"time"

	"github.com/orgball2608/wallify-bot/pkg/config"
	"go.uber.org/fx"
)

var FxOption = fx.Annotate(
	func(lc fx.Lifecycle, cfg *config.Config) *Impl {
		l := New(
			Opts{
				Env:       cfg.App.Env,
				Level:     cfg.App.LogLevel,
				SentryDSN: cfg.App.SentryUrl,
				FilePath:  cfg.App.LogFile,
			},
		)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				l.Flush(2 * time.Second)
				return nil
			},
		})
		return l
	},
	fx.As(new(Logger)),
)
