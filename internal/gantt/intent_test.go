package gantt_test

import (
	"testing"
	"time"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T) (*gantt.Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	store := gantt.NewStore(rec)
	store.Load(model.Snapshot{Tasks: model.SeedTasks(day(1))})
	b := gantt.NewBoard(store, 10, 0)
	b.Now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return b, rec
}

func TestBoard_AddParsesDates(t *testing.T) {
	b, rec := newBoard(t)

	err := b.Dispatch(gantt.AddTask{Name: "Review", Start: "2025-03-20", End: "+14d", Color: "#123456"})
	require.NoError(t, err)

	snap := b.Store.Snapshot()
	require.Len(t, snap, 4)
	added := snap[3]
	assert.Equal(t, int64(4), added.ID)
	assert.True(t, added.StartDate.Equal(day(20)))
	assert.True(t, added.EndDate.Equal(day(24)))
	assert.Len(t, rec.snaps, 1)
}

func TestBoard_AddRejectsBadText(t *testing.T) {
	b, rec := newBoard(t)

	err := b.Dispatch(gantt.AddTask{Name: "x", Start: "someday", End: "2025-03-02"})
	require.Error(t, err)
	var verr *gantt.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start", verr.Field)

	err = b.Dispatch(gantt.AddTask{Name: "x", Start: "2025-03-05", End: "2025-03-02"})
	assert.True(t, gantt.IsValidation(err))
	assert.Equal(t, 3, b.Store.Len())
	assert.Empty(t, rec.snaps)
}

func TestBoard_EditIntents(t *testing.T) {
	b, _ := newBoard(t)

	require.NoError(t, b.Dispatch(gantt.RenameTask{ID: 2, Name: "Design"}))
	require.NoError(t, b.Dispatch(gantt.RescheduleTask{ID: 2, Start: "2025-03-08", End: "2025-03-12"}))
	require.NoError(t, b.Dispatch(gantt.ShiftTask{ID: 3, Days: -1}))
	require.NoError(t, b.Dispatch(gantt.ResizeTask{ID: 3, Days: 2}))

	got, _ := b.Store.Get(2)
	assert.Equal(t, "Design", got.Name)
	assert.True(t, got.StartDate.Equal(day(8)))

	got, _ = b.Store.Get(3)
	assert.True(t, got.StartDate.Equal(day(10)))
	assert.True(t, got.EndDate.Equal(day(16)))

	require.NoError(t, b.Dispatch(gantt.DeleteTask{ID: 1}))
	assert.True(t, gantt.IsNotFound(b.Dispatch(gantt.DeleteTask{ID: 1})))
	assert.Equal(t, 2, b.Store.Len())
}

func TestBoard_DragFlow(t *testing.T) {
	b, rec := newBoard(t)

	require.NoError(t, b.Dispatch(gantt.DragStart{ID: 1, X: 100}))
	require.NoError(t, b.Dispatch(gantt.DragMove{X: 150}))
	require.NoError(t, b.Dispatch(gantt.DragMove{X: 120}))

	tasks := b.Tasks()
	assert.True(t, tasks[0].IsDragging)
	assert.Equal(t, 2, tasks[0].DragOffsetDays)
	assert.False(t, tasks[1].IsDragging)
	assert.Empty(t, rec.snaps)

	require.NoError(t, b.Dispatch(gantt.DragEnd{}))
	require.Len(t, rec.snaps, 1)
	got, _ := b.Store.Get(1)
	assert.True(t, got.StartDate.Equal(day(3)))
	assert.False(t, b.Tasks()[0].IsDragging)
}

func TestBoard_DeleteDraggedTaskCancelsDrag(t *testing.T) {
	b, _ := newBoard(t)

	require.NoError(t, b.Dispatch(gantt.DragStart{ID: 2, X: 0}))
	require.NoError(t, b.Dispatch(gantt.DeleteTask{ID: 2}))
	assert.Equal(t, gantt.DragIdle, b.Drag.State())
	assert.NoError(t, b.Dispatch(gantt.DragEnd{}))
}

func TestBoard_DragCancel(t *testing.T) {
	b, rec := newBoard(t)

	require.NoError(t, b.Dispatch(gantt.DragStart{ID: 1, X: 0}))
	require.NoError(t, b.Dispatch(gantt.DragMove{X: 40}))
	require.NoError(t, b.Dispatch(gantt.DragCancel{}))
	require.NoError(t, b.Dispatch(gantt.DragEnd{}))
	assert.Empty(t, rec.snaps)
}
