package sessionimpl

import (
	"github.com/orgball2608/wallify-bot/internal/session"
	"go.uber.org/fx"
)

var Module = fx.Module("session",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(session.Manager)),
		),
		NewJanitor,
	),
	fx.Invoke(func(*Janitor) {}),
)
