package download

import (
	"context"
	"time"

	"github.com/orgball2608/wallify-bot/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=download.go -destination=mocks/mock.go
type Repository interface {
	// Create logs a delivered original.
	Create(ctx context.Context, record domain.DownloadRecord) error

	CountByChat(ctx context.Context, chatID int64) (int64, error)

	// CleanupOldRecords deletes records older than olderThan and returns how many were removed.
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
