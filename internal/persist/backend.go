package persist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/existflow/irongantt/internal/config"
)

// ErrNotExist is returned by Backend.Get when nothing is stored under a key
var ErrNotExist = errors.New("key does not exist")

// Backend is a key/value blob store
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

// Open builds the backend selected in the config
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileBackend(cfg.DataDir)
	case config.BackendSQLite:
		return OpenSQLite(filepath.Join(cfg.DataDir, "gantt.db"))
	case config.BackendS3:
		return NewS3Backend(ctx, S3Options{
			Bucket:  cfg.S3Bucket,
			Region:  cfg.S3Region,
			Profile: cfg.S3Profile,
			Prefix:  cfg.S3Prefix,
		})
	case config.BackendRemote:
		return NewRemoteBackend(cfg.RemoteURL, cfg.RemoteToken, cfg.RemotePassphrase), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
