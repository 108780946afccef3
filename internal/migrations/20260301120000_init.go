package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE chat_preferences (
		chat_id     BIGINT PRIMARY KEY,
		category    VARCHAR(16) NOT NULL DEFAULT 'smartphone',
		search_term VARCHAR(256) NOT NULL DEFAULT 'Wallpaper',
		updated_at  TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	`)
	return err
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS chat_preferences;`)
	return err
}
