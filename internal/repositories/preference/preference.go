package preference

import (
	"context"
	"errors"

	"github.com/orgball2608/wallify-bot/internal/domain"
)

var ErrNotFound = errors.New("preference not found")

//go:generate go run go.uber.org/mock/mockgen -source=preference.go -destination=mocks/mock.go
type Repository interface {
	// Get returns the stored preference of a chat, or ErrNotFound.
	Get(ctx context.Context, chatID int64) (*domain.Preference, error)

	// Upsert stores the last category and search term of a chat.
	Upsert(ctx context.Context, pref domain.Preference) error
}
