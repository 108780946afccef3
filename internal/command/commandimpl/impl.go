package commandimpl

import (
	"github.com/orgball2608/wallify-bot/internal/command"
	"github.com/orgball2608/wallify-bot/internal/ratelimit"
	downloadRepo "github.com/orgball2608/wallify-bot/internal/repositories/download"
	"github.com/orgball2608/wallify-bot/internal/session"
	"github.com/orgball2608/wallify-bot/internal/telegram"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram     telegram.Client
	Sessions     session.Manager
	DownloadRepo downloadRepo.Repository
	Limiter      ratelimit.Limiter
	Logger       logger.Logger
	Config       *config.Config
}

type CommandImpl struct {
	Telegram     telegram.Client
	Sessions     session.Manager
	DownloadRepo downloadRepo.Repository
	Limiter      ratelimit.Limiter
	Logger       logger.Logger
	Config       *config.Config
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram:     opts.Telegram,
		Sessions:     opts.Sessions,
		DownloadRepo: opts.DownloadRepo,
		Limiter:      opts.Limiter,
		Logger:       opts.Logger.WithComponent("CommandHandler"),
		Config:       opts.Config,
	}
}

var _ command.Client = (*CommandImpl)(nil)
