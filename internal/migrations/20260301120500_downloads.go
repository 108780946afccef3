package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upDownloads, downDownloads)
}

func upDownloads(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE downloads (
		id         SERIAL PRIMARY KEY,
		chat_id    BIGINT NOT NULL,
		photo_id   BIGINT NOT NULL,
		filename   VARCHAR(512) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	CREATE INDEX idx_downloads_chat_id ON downloads (chat_id);
	CREATE INDEX idx_downloads_created_at ON downloads (created_at);
	`)
	return err
}

func downDownloads(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS downloads;`)
	return err
}
