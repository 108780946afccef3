package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles commands per chat.
type Limiter interface {
	Allow(chatID int64) bool
}

// InMemoryLimiter keeps one token bucket per chat.
type InMemoryLimiter struct {
	mu    sync.Mutex
	chats map[int64]*rate.Limiter
	every rate.Limit
	burst int
}

// NewInMemoryLimiter allows one command per interval with the given burst.
// NewInMemoryLimiter(2*time.Second, 5) lets a chat fire five buttons in a row
// and then one every two seconds.
func NewInMemoryLimiter(interval time.Duration, burst int) *InMemoryLimiter {
	return &InMemoryLimiter{
		chats: make(map[int64]*rate.Limiter),
		every: rate.Every(interval),
		burst: burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

func (l *InMemoryLimiter) Allow(chatID int64) bool {
	l.mu.Lock()
	limiter, ok := l.chats[chatID]
	if !ok {
		limiter = rate.NewLimiter(l.every, l.burst)
		l.chats[chatID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// Forget drops the bucket of a chat whose session ended.
func (l *InMemoryLimiter) Forget(chatID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.chats, chatID)
}
