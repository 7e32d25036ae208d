package server

import "context"

// migrate runs database migrations
func (s *PostgresStore) migrate(ctx context.Context) error {
	migrations := []string{
		migrationSnapshotRevisions,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return err
		}
	}

	return nil
}

const migrationSnapshotRevisions = `
CREATE TABLE IF NOT EXISTS snapshot_revisions (
    seq BIGSERIAL,
    id UUID PRIMARY KEY,
    key TEXT NOT NULL,
    data BYTEA NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_snapshot_revisions_key ON snapshot_revisions(key, created_at DESC);
`
