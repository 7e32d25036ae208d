package server

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a key has no revisions
var ErrNotFound = errors.New("snapshot not found")

// Revision is one stored version of a snapshot
type Revision struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	Data      []byte    `json:"-"`
}

// SnapshotStore keeps snapshot revisions per key
type SnapshotStore interface {
	Latest(ctx context.Context, key string) (Revision, error)
	Put(ctx context.Context, key string, data []byte) (Revision, error)
	Revisions(ctx context.Context, key string, limit int) ([]Revision, error)
	Ping(ctx context.Context) error
	Close() error
}
