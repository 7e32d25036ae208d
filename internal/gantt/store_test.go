package gantt_test

import (
	"testing"
	"time"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every snapshot handed to the persister
type recorder struct {
	snaps []model.Snapshot
}

func (r *recorder) Persist(snap model.Snapshot) {
	r.snaps = append(r.snaps, snap)
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_AddAssignsIncreasingIDs(t *testing.T) {
	rec := &recorder{}
	s := gantt.NewStore(rec)

	var prev int64
	for i := 0; i < 5; i++ {
		task, err := s.Add("task", day(1), day(1+i), "")
		require.NoError(t, err)
		assert.Greater(t, task.ID, prev)
		prev = task.ID
	}
	assert.Equal(t, int64(1), s.Snapshot()[0].ID)
	assert.Len(t, rec.snaps, 5)
	assert.Len(t, rec.snaps[4].Tasks, 5)
}

func TestStore_AddRejectsInvertedRange(t *testing.T) {
	rec := &recorder{}
	s := gantt.NewStore(rec)
	_, err := s.Add("ok", day(1), day(2), "")
	require.NoError(t, err)

	_, err = s.Add("bad", day(5), day(2), "")
	require.Error(t, err)
	assert.True(t, gantt.IsValidation(err))
	assert.Equal(t, 1, s.Len())
	assert.Len(t, rec.snaps, 1)
}

func TestStore_AddAllowsSameStartAndEnd(t *testing.T) {
	s := gantt.NewStore(nil)
	task, err := s.Add("milestone", day(3), day(3), "#fff")
	require.NoError(t, err)
	assert.Equal(t, "#fff", task.Color)
}

func TestStore_IDsNotReusedAfterDelete(t *testing.T) {
	s := gantt.NewStore(nil)
	_, _ = s.Add("a", day(1), day(2), "")
	b, _ := s.Add("b", day(1), day(2), "")
	require.NoError(t, s.Remove(b.ID))

	c, err := s.Add("c", day(1), day(2), "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
}

func TestStore_LoadKeepsHighWaterMark(t *testing.T) {
	s := gantt.NewStore(nil)
	s.Load(model.Snapshot{LastID: 7, Tasks: model.SeedTasks(day(1))})

	task, err := s.Add("next", day(1), day(2), "")
	require.NoError(t, err)
	assert.Equal(t, int64(8), task.ID)

	// a legacy snapshot without last_id falls back to the max id
	s.Load(model.Snapshot{Tasks: model.SeedTasks(day(1))})
	task, err = s.Add("next", day(1), day(2), "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), task.ID)
}

func TestStore_Rename(t *testing.T) {
	rec := &recorder{}
	s := gantt.NewStore(rec)
	task, _ := s.Add("old", day(1), day(2), "")

	require.NoError(t, s.Rename(task.ID, "new"))
	got, err := s.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	err = s.Rename(42, "x")
	assert.True(t, gantt.IsNotFound(err))

	err = s.Rename(99, "")
	assert.True(t, gantt.IsNotFound(err))

	// names are free text, kept as given
	require.NoError(t, s.Rename(task.ID, "  "))
	got, _ = s.Get(task.ID)
	assert.Equal(t, "  ", got.Name)
	assert.Len(t, rec.snaps, 3)
}

func TestStore_AddKeepsNameAsGiven(t *testing.T) {
	s := gantt.NewStore(nil)

	blank, err := s.Add("", day(1), day(2), "")
	require.NoError(t, err)
	assert.Equal(t, "", blank.Name)

	padded, err := s.Add("  padded  ", day(1), day(2), "")
	require.NoError(t, err)
	assert.Equal(t, "  padded  ", padded.Name)
	assert.Equal(t, 2, s.Len())
}

func TestStore_RemoveUnknownLeavesStoreUnchanged(t *testing.T) {
	s := gantt.NewStore(nil)
	s.Load(model.Snapshot{Tasks: model.SeedTasks(day(1))[:1]})

	err := s.Remove(99)
	require.Error(t, err)
	assert.True(t, gantt.IsNotFound(err))
	assert.Len(t, s.Snapshot(), 1)
}

func TestStore_RemoveDoesNotRenumber(t *testing.T) {
	s := gantt.NewStore(nil)
	s.Load(model.Snapshot{Tasks: model.SeedTasks(day(1))})

	require.NoError(t, s.Remove(2))
	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, int64(1), snap[0].ID)
	assert.Equal(t, int64(3), snap[1].ID)
}

func TestStore_Reschedule(t *testing.T) {
	s := gantt.NewStore(nil)
	s.Load(model.Snapshot{Tasks: []model.Task{
		model.NewTask(1, "Task 1", day(1), day(6), model.ColorGreen),
	}})

	require.NoError(t, s.Reschedule(1, day(3), day(8)))
	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(1), snap[0].ID)
	assert.Equal(t, "Task 1", snap[0].Name)
	assert.Equal(t, model.ColorGreen, snap[0].Color)
	assert.True(t, snap[0].StartDate.Equal(day(3)))
	assert.True(t, snap[0].EndDate.Equal(day(8)))
}

func TestStore_RescheduleIsAtomic(t *testing.T) {
	rec := &recorder{}
	s := gantt.NewStore(rec)
	task, _ := s.Add("t", day(1), day(6), "")

	err := s.Reschedule(task.ID, day(9), day(4))
	require.Error(t, err)
	assert.True(t, gantt.IsValidation(err))

	got, _ := s.Get(task.ID)
	assert.True(t, got.StartDate.Equal(day(1)))
	assert.True(t, got.EndDate.Equal(day(6)))
	assert.Len(t, rec.snaps, 1)

	err = s.Reschedule(77, day(1), day(2))
	assert.True(t, gantt.IsNotFound(err))
}

func TestStore_ShiftAndResize(t *testing.T) {
	s := gantt.NewStore(nil)
	task, _ := s.Add("t", day(1), day(6), "")

	require.NoError(t, s.Shift(task.ID, 2))
	got, _ := s.Get(task.ID)
	assert.True(t, got.StartDate.Equal(day(3)))
	assert.True(t, got.EndDate.Equal(day(8)))

	require.NoError(t, s.Resize(task.ID, -3))
	got, _ = s.Get(task.ID)
	assert.True(t, got.EndDate.Equal(day(5)))

	err := s.Resize(task.ID, -10)
	assert.True(t, gantt.IsValidation(err))
	got, _ = s.Get(task.ID)
	assert.True(t, got.EndDate.Equal(day(5)))

	assert.True(t, gantt.IsNotFound(s.Shift(99, 1)))
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	s := gantt.NewStore(nil)
	task, _ := s.Add("t", day(1), day(6), "")

	snap := s.Snapshot()
	snap[0].Name = "mutated"
	require.NoError(t, s.Rename(task.ID, "renamed"))
	require.NoError(t, s.Reschedule(task.ID, day(2), day(7)))

	assert.Equal(t, "mutated", snap[0].Name)
	assert.True(t, snap[0].StartDate.Equal(day(1)))
	got, _ := s.Get(task.ID)
	assert.Equal(t, "renamed", got.Name)
}
