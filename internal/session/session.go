package session

import (
	"context"
	"time"

	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/feed"
)

// Manager keeps one feed controller per chat.
//
//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=mocks/mock.go
type Manager interface {
	// Get returns the chat's controller, creating it from the stored
	// preference on first use.
	Get(ctx context.Context, chatID int64) *feed.Controller

	// Remember stores the query so a new session resumes from it.
	Remember(ctx context.Context, chatID int64, q domain.Query)

	Forget(chatID int64)

	// EvictIdle drops sessions unused for longer than olderThan and returns
	// how many were removed.
	EvictIdle(olderThan time.Duration) int

	Len() int
}
