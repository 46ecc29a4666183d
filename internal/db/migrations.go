package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS channels (
			id          TEXT PRIMARY KEY,
			display_id  TEXT NOT NULL DEFAULT '',
			number      TEXT NOT NULL DEFAULT '',
			type        TEXT NOT NULL CHECK(type IN ('GR', 'BS', 'CS', 'BS4K', 'SKY')),
			name        TEXT NOT NULL,
			logo_url    TEXT NOT NULL DEFAULT '',
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_channels_type ON channels(type, number);

		CREATE TABLE IF NOT EXISTS programs (
			id          TEXT PRIMARY KEY,
			channel_id  TEXT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			detail      TEXT NOT NULL DEFAULT '{}',
			genres      TEXT NOT NULL DEFAULT '[]',
			start_time  TEXT NOT NULL,
			end_time    TEXT NOT NULL,
			duration    INTEGER NOT NULL DEFAULT 0,
			start_unix  INTEGER NOT NULL,
			end_unix    INTEGER NOT NULL CHECK(end_unix > start_unix)
		);

		CREATE INDEX IF NOT EXISTS idx_programs_channel_time ON programs(channel_id, start_unix);
		CREATE INDEX IF NOT EXISTS idx_programs_end ON programs(end_unix);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating guide tables: %w", err)
	}
	return nil
}
