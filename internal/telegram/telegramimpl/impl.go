package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/wallify-bot/internal/telegram"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	bot    *tgbotapi.BotAPI
	logger logger.Logger
}

func New(opts Opts) (*TelegramImpl, error) {
	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.BotToken)
	if err != nil {
		opts.Logger.Error("Error creating bot", "error", err)
		return nil, err
	}

	log := opts.Logger.WithComponent("Telegram")
	log.Info("Authorized on account", "username", bot.Self.UserName)

	return &TelegramImpl{
		bot:    bot,
		logger: log,
	}, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)
