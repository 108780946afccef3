package preference

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/wallify-bot/internal/domain"
	"github.com/orgball2608/wallify-bot/internal/repositories"
	"github.com/orgball2608/wallify-bot/pkg/logger"
)

const table = "chat_preferences"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PreferenceRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Get(ctx context.Context, chatID int64) (*domain.Preference, error) {
	query, args, err := selectQuery(chatID)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var (
		pref     domain.Preference
		category string
	)
	err = p.pg.QueryRow(ctx, query, args...).Scan(&pref.ChatID, &category, &pref.SearchTerm, &pref.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	pref.Category = domain.Category(category)

	return &pref, nil
}

func (p *Pgx) Upsert(ctx context.Context, pref domain.Preference) error {
	if pref.UpdatedAt.IsZero() {
		pref.UpdatedAt = time.Now()
	}

	query, args, err := upsertQuery(pref)
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		p.logger.Error("Failed to upsert preference", "chat_id", pref.ChatID, "error", err)
		return err
	}
	return nil
}

func selectQuery(chatID int64) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Select("chat_id", "category", "search_term", "updated_at").
		From(table).
		Where(sq.Eq{"chat_id": chatID}).
		ToSql()
}

func upsertQuery(pref domain.Preference) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Insert(table).
		Columns("chat_id", "category", "search_term", "updated_at").
		Values(pref.ChatID, string(pref.Category), pref.SearchTerm, pref.UpdatedAt).
		Suffix("ON CONFLICT (chat_id) DO UPDATE SET " +
			"category = EXCLUDED.category, " +
			"search_term = EXCLUDED.search_term, " +
			"updated_at = EXCLUDED.updated_at").
		ToSql()
}
