package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/existflow/irongantt/internal/config"
	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/persist"
)

// workspace is an open chart: the configured backend, a store loaded
// from it, and the writer that saves the store's changes
type workspace struct {
	cfg     *config.Config
	backend persist.Backend
	writer  *persist.Writer
	store   *gantt.Store
	board   *gantt.Board
}

// openWorkspace loads the chart. With lenient set, a failed load starts
// an empty chart instead of returning the error.
func openWorkspace(ctx context.Context, lenient bool) (*workspace, error) {
	cfg := currentConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	backend, err := persist.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open backend", logger.F("backend", cfg.Backend), logger.F("error", err))
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}

	repo := persist.NewRepository(backend)
	snap, err := repo.Load(ctx)
	if err != nil {
		if !lenient {
			backend.Close()
			return nil, err
		}
		logger.Warn("Starting with an empty chart", logger.F("error", err))
	}

	writer := persist.NewWriter(repo)
	store := gantt.NewStore(writer)
	store.Load(snap)

	zoom, err := gantt.ParseZoom(cfg.Zoom)
	if err != nil {
		logger.Warn("Invalid zoom in config", logger.F("error", err))
	}
	throttle := time.Duration(cfg.ThrottleMS) * time.Millisecond

	logger.Debug("Workspace opened",
		logger.F("backend", cfg.Backend),
		logger.F("tasks", store.Len()))

	return &workspace{
		cfg:     cfg,
		backend: backend,
		writer:  writer,
		store:   store,
		board:   gantt.NewBoard(store, zoom.PixelsPerDay(), throttle),
	}, nil
}

// Close waits for pending saves and closes the backend
func (w *workspace) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := w.writer.Close(ctx)
	if cerr := w.backend.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Error("Failed to close workspace", logger.F("error", err))
	}
	return err
}

// parseID parses a task id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// withWorkspace runs fn against the strictly loaded chart and reports a
// failed final save
func withWorkspace(ctx context.Context, fn func(ws *workspace) error) error {
	ws, err := openWorkspace(ctx, false)
	if err != nil {
		return err
	}
	ferr := fn(ws)
	cerr := ws.Close()
	if ferr != nil {
		return ferr
	}
	if cerr != nil {
		return fmt.Errorf("failed to save: %w", cerr)
	}
	return nil
}
