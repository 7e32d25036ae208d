package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/model"
)

// TasksKey is the key the chart is stored under
const TasksKey = "tasks"

// Repository saves and loads the chart snapshot through a Backend
type Repository struct {
	backend Backend
	key     string
}

// NewRepository uses TasksKey on backend
func NewRepository(backend Backend) *Repository {
	return &Repository{backend: backend, key: TasksKey}
}

// Save writes the full snapshot
func (r *Repository) Save(ctx context.Context, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return &gantt.PersistenceError{Op: "save", Err: err}
	}
	if err := r.backend.Put(ctx, r.key, data); err != nil {
		return &gantt.PersistenceError{Op: "save", Err: err}
	}
	logger.Debug("Snapshot saved", logger.F("tasks", len(snap.Tasks)), logger.F("bytes", len(data)))
	return nil
}

// Load reads the snapshot. A missing key yields an empty snapshot.
func (r *Repository) Load(ctx context.Context) (model.Snapshot, error) {
	data, err := r.backend.Get(ctx, r.key)
	if errors.Is(err, ErrNotExist) {
		logger.Info("No saved snapshot, starting empty")
		return model.Snapshot{Tasks: []model.Task{}}, nil
	}
	if err != nil {
		return model.Snapshot{}, &gantt.PersistenceError{Op: "load", Err: err}
	}
	snap, err := Decode(data)
	if err != nil {
		return model.Snapshot{}, &gantt.PersistenceError{Op: "load", Err: err}
	}
	return snap, nil
}

// Encode serializes a snapshot as indented JSON
func Encode(snap model.Snapshot) ([]byte, error) {
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot document or a bare task array.
// Tasks with inverted dates or duplicate ids are dropped, but their ids
// still count toward LastID so they are never handed out again.
func Decode(data []byte) (model.Snapshot, error) {
	var snap model.Snapshot
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &snap.Tasks); err != nil {
			return model.Snapshot{}, fmt.Errorf("failed to parse task list: %w", err)
		}
	default:
		if err := json.Unmarshal(trimmed, &snap); err != nil {
			return model.Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
		}
	}

	seen := make(map[int64]bool, len(snap.Tasks))
	tasks := make([]model.Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if t.ID > snap.LastID {
			snap.LastID = t.ID
		}
		if err := t.Validate(); err != nil {
			logger.Warn("Dropping invalid task", logger.F("id", t.ID), logger.F("error", err))
			continue
		}
		if seen[t.ID] {
			logger.Warn("Dropping duplicate task id", logger.F("id", t.ID))
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}
	snap.Tasks = tasks
	return snap, nil
}
