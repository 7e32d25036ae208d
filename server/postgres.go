package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresStore keeps revisions in a postgres table
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects and runs migrations
func OpenPostgres(ctx context.Context, dbURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Latest(ctx context.Context, key string) (Revision, error) {
	rev := Revision{Key: key}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, data, created_at
		FROM snapshot_revisions
		WHERE key = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT 1`, key,
	).Scan(&rev.ID, &rev.Data, &rev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Revision{}, ErrNotFound
	}
	if err != nil {
		return Revision{}, err
	}
	rev.Size = len(rev.Data)
	return rev, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) (Revision, error) {
	rev := Revision{
		ID:        uuid.New(),
		Key:       key,
		Size:      len(data),
		CreatedAt: time.Now().UTC(),
		Data:      data,
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshot_revisions (id, key, data, created_at)
		VALUES ($1, $2, $3, $4)`,
		rev.ID, rev.Key, rev.Data, rev.CreatedAt,
	)
	if err != nil {
		return Revision{}, err
	}
	return rev, nil
}

func (s *PostgresStore) Revisions(ctx context.Context, key string, limit int) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, octet_length(data), created_at
		FROM snapshot_revisions
		WHERE key = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2`, key, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		rev := Revision{Key: key}
		if err := rows.Scan(&rev.ID, &rev.Size, &rev.CreatedAt); err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	return revs, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
