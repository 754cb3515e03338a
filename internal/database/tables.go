package database

import (
	"database/sql"
	"fmt"
)

// initHistoryTable initializes the download history table.
func initHistoryTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL UNIQUE,
        url TEXT NOT NULL,
        content_type TEXT NOT NULL,
        format TEXT NOT NULL,
        quality TEXT,
        status TEXT NOT NULL,
        error TEXT,
        started_at TIMESTAMP NOT NULL,
        finished_at TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_history_url ON history(url);
    CREATE INDEX IF NOT EXISTS idx_history_started_at ON history(started_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	return nil
}
