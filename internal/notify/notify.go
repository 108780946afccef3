package notify

import (
	"context"

	"github.com/orgball2608/wallify-bot/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=notify.go -destination=mocks/mock.go
type Notifier interface {
	// Notify shows a transient message. Delivery failures are logged, never returned.
	Notify(ctx context.Context, n domain.Notification)
}

// Factory binds a Notifier to a chat.
type Factory interface {
	ForChat(chatID int64) Notifier
}
