package gantt_test

import (
	"testing"
	"time"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockScheduler records Reschedule calls
type mockScheduler struct {
	mock.Mock
	tasks map[int64]model.Task
}

func newMockScheduler(tasks ...model.Task) *mockScheduler {
	m := &mockScheduler{tasks: make(map[int64]model.Task)}
	for _, t := range tasks {
		m.tasks[t.ID] = t
	}
	return m
}

func (m *mockScheduler) Get(id int64) (model.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return model.Task{}, &gantt.NotFoundError{ID: id}
	}
	return t, nil
}

func (m *mockScheduler) Reschedule(id int64, start, end time.Time) error {
	args := m.Called(id, start, end)
	return args.Error(0)
}

func seedTask() model.Task {
	return model.NewTask(1, "Task 1", day(1), day(6), model.ColorGreen)
}

func TestDrag_CommitsLastMoveOnly(t *testing.T) {
	sched := newMockScheduler(seedTask())
	sched.On("Reschedule", int64(1), day(3), day(8)).Return(nil).Once()

	d := gantt.NewDragController(sched, 10, 0)
	require.NoError(t, d.PointerDown(1, 100))
	d.PointerMove(150)
	d.PointerMove(120)
	require.NoError(t, d.PointerUp())

	sched.AssertExpectations(t)
	sched.AssertNumberOfCalls(t, "Reschedule", 1)
	assert.Equal(t, gantt.DragIdle, d.State())
}

func TestDrag_ReleaseWithoutMoveDiscards(t *testing.T) {
	sched := newMockScheduler(seedTask())
	d := gantt.NewDragController(sched, 10, 0)

	require.NoError(t, d.PointerDown(1, 100))
	require.NoError(t, d.PointerUp())

	sched.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, gantt.DragIdle, d.State())
}

func TestDrag_SmallMoveRoundsToZero(t *testing.T) {
	sched := newMockScheduler(seedTask())
	d := gantt.NewDragController(sched, 10, 0)

	require.NoError(t, d.PointerDown(1, 100))
	d.PointerMove(104)
	require.NoError(t, d.PointerUp())

	sched.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrag_NegativeOffset(t *testing.T) {
	sched := newMockScheduler(seedTask())
	sched.On("Reschedule", int64(1), day(1).AddDate(0, 0, -3), day(3)).Return(nil).Once()

	d := gantt.NewDragController(sched, 10, 0)
	require.NoError(t, d.PointerDown(1, 100))
	d.PointerMove(72)
	require.NoError(t, d.PointerUp())

	sched.AssertExpectations(t)
}

func TestDrag_IdleEventsIgnored(t *testing.T) {
	sched := newMockScheduler(seedTask())
	d := gantt.NewDragController(sched, 10, 0)

	assert.False(t, d.PointerMove(500))
	assert.NoError(t, d.PointerUp())
	assert.Equal(t, gantt.DragIdle, d.State())
	sched.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrag_PreviewDoesNotTouchStore(t *testing.T) {
	sched := newMockScheduler(seedTask())
	d := gantt.NewDragController(sched, 10, 0)

	require.NoError(t, d.PointerDown(1, 100))
	assert.True(t, d.PointerMove(130))

	id, offset, ok := d.Active()
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 3, offset)

	decorated := d.Decorate([]model.Task{seedTask()})
	assert.True(t, decorated[0].IsDragging)
	assert.Equal(t, 3, decorated[0].DragOffsetDays)
	assert.True(t, decorated[0].StartDate.Equal(day(1)))
	sched.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrag_NewPressForceCompletesPrevious(t *testing.T) {
	second := model.NewTask(2, "Task 2", day(7), day(10), model.ColorOrange)
	sched := newMockScheduler(seedTask(), second)
	sched.On("Reschedule", int64(1), day(2), day(7)).Return(nil).Once()

	d := gantt.NewDragController(sched, 10, 0)
	require.NoError(t, d.PointerDown(1, 100))
	d.PointerMove(110)
	require.NoError(t, d.PointerDown(2, 300))

	id, offset, ok := d.Active()
	require.True(t, ok)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, 0, offset)
	sched.AssertExpectations(t)
}

func TestDrag_ThrottledMovesStillCommitLatest(t *testing.T) {
	sched := newMockScheduler(seedTask())
	sched.On("Reschedule", int64(1), day(5), day(10)).Return(nil).Once()

	d := gantt.NewDragController(sched, 10, time.Hour)
	require.NoError(t, d.PointerDown(1, 100))
	assert.True(t, d.PointerMove(120))  // first move passes the limiter
	assert.False(t, d.PointerMove(140)) // throttled: preview stays at 2
	_, offset, _ := d.Active()
	assert.Equal(t, 2, offset)

	require.NoError(t, d.PointerUp())
	sched.AssertExpectations(t)
}

func TestDrag_TaskDeletedMidDrag(t *testing.T) {
	sched := newMockScheduler(seedTask())
	d := gantt.NewDragController(sched, 10, 0)

	require.NoError(t, d.PointerDown(1, 100))
	d.PointerMove(150)
	delete(sched.tasks, 1)

	err := d.PointerUp()
	assert.True(t, gantt.IsNotFound(err))
	assert.Equal(t, gantt.DragIdle, d.State())
}

func TestDrag_PressOnUnknownTaskStaysIdle(t *testing.T) {
	d := gantt.NewDragController(newMockScheduler(), 10, 0)
	err := d.PointerDown(5, 0)
	assert.True(t, gantt.IsNotFound(err))
	assert.Equal(t, gantt.DragIdle, d.State())
}

func TestDrag_CancelAndZoomChange(t *testing.T) {
	sched := newMockScheduler(seedTask())
	d := gantt.NewDragController(sched, 10, 0)

	require.NoError(t, d.PointerDown(1, 100))
	d.SetPixelsPerDay(2)
	assert.Equal(t, 10.0, d.PixelsPerDay())

	d.PointerMove(200)
	d.Cancel()
	require.NoError(t, d.PointerUp())
	sched.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything)

	d.SetPixelsPerDay(2)
	assert.Equal(t, 2.0, d.PixelsPerDay())
}
