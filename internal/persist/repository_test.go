package persist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend is an in-memory Backend
type memBackend struct {
	data   map[string][]byte
	getErr error
	putErr error
}

func newMemBackend() *memBackend {
	return &memBackend{data: make(map[string][]byte)}
}

func (m *memBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	d, ok := m.data[key]
	if !ok {
		return nil, ErrNotExist
	}
	return d, nil
}

func (m *memBackend) Put(ctx context.Context, key string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBackend) Close() error { return nil }

func base() time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newMemBackend())

	store := gantt.NewStore(nil)
	store.Load(model.Snapshot{Tasks: model.SeedTasks(base())})
	_, err := store.Add("Launch", base().AddDate(0, 0, 20), base().AddDate(0, 0, 21), "#123456")
	require.NoError(t, err)
	require.NoError(t, store.Remove(2))

	require.NoError(t, repo.Save(ctx, store.Document()))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), loaded.LastID)
	require.Len(t, loaded.Tasks, len(store.Snapshot()))
	for i, want := range store.Snapshot() {
		got := loaded.Tasks[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Color, got.Color)
		assert.True(t, want.StartDate.Equal(got.StartDate))
		assert.True(t, want.EndDate.Equal(got.EndDate))
	}
}

func TestRepository_DragFieldsNotPersisted(t *testing.T) {
	task := model.SeedTasks(base())[0]
	task.IsDragging = true
	task.DragOffsetDays = 4

	data, err := Encode(model.Snapshot{LastID: 1, Tasks: []model.Task{task}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "drag")

	snap, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, snap.Tasks[0].IsDragging)
	assert.Zero(t, snap.Tasks[0].DragOffsetDays)
}

func TestRepository_LoadMissingIsEmpty(t *testing.T) {
	snap, err := NewRepository(newMemBackend()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
	assert.Zero(t, snap.LastID)
}

func TestRepository_ErrorsArePersistenceErrors(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	repo := NewRepository(backend)

	backend.getErr = errors.New("disk gone")
	_, err := repo.Load(ctx)
	assert.True(t, gantt.IsPersistence(err))

	backend.getErr = nil
	backend.data[TasksKey] = []byte("{not json")
	_, err = repo.Load(ctx)
	assert.True(t, gantt.IsPersistence(err))

	backend.putErr = errors.New("read-only")
	err = repo.Save(ctx, model.Snapshot{})
	assert.True(t, gantt.IsPersistence(err))
	assert.ErrorContains(t, err, "read-only")
}

func TestDecode_LegacyArrayAndCleanup(t *testing.T) {
	data := []byte(`[
		{"id": 1, "name": "a", "start_date": "2025-03-01T00:00:00Z", "end_date": "2025-03-04T00:00:00Z", "color": "#fff"},
		{"id": 1, "name": "dup", "start_date": "2025-03-01T00:00:00Z", "end_date": "2025-03-02T00:00:00Z", "color": "#fff"},
		{"id": 2, "name": "bad", "start_date": "2025-03-05T00:00:00Z", "end_date": "2025-03-02T00:00:00Z", "color": "#fff"}
	]`)
	snap, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "a", snap.Tasks[0].Name)
	assert.Equal(t, int64(2), snap.LastID, "a dropped task's id is not reused")

	store := gantt.NewStore(nil)
	store.Load(snap)
	added, err := store.Add("next", snap.Tasks[0].StartDate, snap.Tasks[0].EndDate, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), added.ID)

	snap, err = Decode([]byte("  "))
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
}
