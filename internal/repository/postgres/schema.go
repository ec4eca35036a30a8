package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates the tables used by the service.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// photos.event_id has no ON DELETE CASCADE: photos are deleted explicitly
// before their event.
const schema = `
CREATE TABLE IF NOT EXISTS admins (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS events (
    id BIGSERIAL PRIMARY KEY,
    event_title TEXT NOT NULL,
    event_slug TEXT NOT NULL,
    admin_id BIGINT NOT NULL REFERENCES admins(id),
    event_date TEXT NOT NULL,
    event_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT events_event_title_key UNIQUE (event_title),
    CONSTRAINT events_event_slug_key UNIQUE (event_slug)
);

CREATE INDEX IF NOT EXISTS idx_events_event_at ON events(event_at DESC);

CREATE TABLE IF NOT EXISTS photos (
    id BIGSERIAL PRIMARY KEY,
    event_id BIGINT NOT NULL REFERENCES events(id),
    blob_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_photos_event_id ON photos(event_id);
`
