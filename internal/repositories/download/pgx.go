package download

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/repositories"
	"github.com/orgball2608/wallify-bot/pkg/logger"
)

const table = "downloads"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("DownloadRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, record domain.DownloadRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query, args, err := insertQuery(record)
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

func (p *Pgx) CountByChat(ctx context.Context, chatID int64) (int64, error) {
	query, args, err := countQuery(chatID)
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var count int64
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	query, args, err := cleanupQuery(time.Now().Add(-olderThan))
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func insertQuery(record domain.DownloadRecord) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Insert(table).
		Columns("chat_id", "photo_id", "filename", "created_at").
		Values(record.ChatID, record.PhotoID, record.Filename, record.CreatedAt).
		ToSql()
}

func countQuery(chatID int64) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"chat_id": chatID}).
		ToSql()
}

func cleanupQuery(cutoff time.Time) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
}
