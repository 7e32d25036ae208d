package persist

import "fmt"

// number of previous values kept per key
const historyLimit = 20

// migrate runs all database migrations
func (b *SQLiteBackend) migrate() error {
	migrations := []string{
		migrationCreateKV,
		migrationCreateHistory,
	}

	for i, m := range migrations {
		if _, err := b.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateKV = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);
`

const migrationCreateHistory = `
CREATE TABLE IF NOT EXISTS kv_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    key TEXT NOT NULL,
    value BLOB NOT NULL,
    saved_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_kv_history_key ON kv_history(key, id);
`
