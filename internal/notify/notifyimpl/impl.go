package notifyimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/notify"
	"github.com/orgball2608/wallify-bot/internal/telegram"
	"github.com/orgball2608/wallify-bot/pkg/formatter"
	"github.com/orgball2608/wallify-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram telegram.Client
	Logger   logger.Logger
}

// FactoryImpl hands out notifiers that post to a single chat.
type FactoryImpl struct {
	telegram telegram.Client
	logger   logger.Logger
}

func New(opts Opts) *FactoryImpl {
	return &FactoryImpl{
		telegram: opts.Telegram,
		logger:   opts.Logger.WithComponent("Notifier"),
	}
}

var _ notify.Factory = (*FactoryImpl)(nil)

func (f *FactoryImpl) ForChat(chatID int64) notify.Notifier {
	return &ChatNotifier{telegram: f.telegram, logger: f.logger, chatID: chatID}
}

type ChatNotifier struct {
	telegram telegram.Client
	logger   logger.Logger
	chatID   int64
}

var _ notify.Notifier = (*ChatNotifier)(nil)

func (n *ChatNotifier) Notify(_ context.Context, note domain.Notification) {
	if _, err := n.telegram.SendMessage(n.chatID, Format(note)); err != nil {
		n.logger.Warn("Failed to deliver notification", "chatID", n.chatID, "title", note.Title, "error", err)
	}
}

// Format renders a notification as a MarkdownV2 message.
func Format(note domain.Notification) string {
	icon := "ℹ️"
	if note.Severity == domain.SeverityDestructive {
		icon = "⚠️"
	}
	return fmt.Sprintf("%s *%s*\n%s", icon,
		formatter.EscapeMarkdownV2(note.Title),
		formatter.EscapeMarkdownV2(note.Description))
}
