package gantt

import (
	"fmt"
	"time"

	"github.com/existflow/irongantt/internal/model"
)

// Intent is a user action against the chart. The set is closed:
// only the types in this file implement it.
type Intent interface {
	intent()
}

// AddTask creates a task from form text
type AddTask struct {
	Name  string
	Start string
	End   string
	Color string
}

// RenameTask changes a task's name
type RenameTask struct {
	ID   int64
	Name string
}

// DeleteTask removes a task
type DeleteTask struct {
	ID int64
}

// RescheduleTask sets both dates from form text
type RescheduleTask struct {
	ID    int64
	Start string
	End   string
}

// ShiftTask moves a task by whole days
type ShiftTask struct {
	ID   int64
	Days int
}

// ResizeTask moves a task's end date by whole days
type ResizeTask struct {
	ID   int64
	Days int
}

// DragStart is a press on a task bar
type DragStart struct {
	ID int64
	X  float64
}

// DragMove is pointer motion during a drag
type DragMove struct {
	X float64
}

// DragEnd is the pointer release
type DragEnd struct{}

// DragCancel abandons the drag in progress
type DragCancel struct{}

func (AddTask) intent()        {}
func (RenameTask) intent()     {}
func (DeleteTask) intent()     {}
func (RescheduleTask) intent() {}
func (ShiftTask) intent()      {}
func (ResizeTask) intent()     {}
func (DragStart) intent()      {}
func (DragMove) intent()       {}
func (DragEnd) intent()        {}
func (DragCancel) intent()     {}

// Board owns the chart state and applies intents to it
type Board struct {
	Store *Store
	Drag  *DragController
	Now   func() time.Time
}

// NewBoard wires a drag controller to the store
func NewBoard(store *Store, pixelsPerDay float64, throttle time.Duration) *Board {
	return &Board{
		Store: store,
		Drag:  NewDragController(store, pixelsPerDay, throttle),
		Now:   time.Now,
	}
}

// Dispatch applies one intent. Errors are ValidationError, NotFoundError
// or nil; callers decide how to surface them.
func (b *Board) Dispatch(in Intent) error {
	switch in := in.(type) {
	case AddTask:
		start, end, err := b.parseRange(in.Start, in.End)
		if err != nil {
			return err
		}
		_, err = b.Store.Add(in.Name, start, end, in.Color)
		return err
	case RenameTask:
		return b.Store.Rename(in.ID, in.Name)
	case DeleteTask:
		if id, _, ok := b.Drag.Active(); ok && id == in.ID {
			b.Drag.Cancel()
		}
		return b.Store.Remove(in.ID)
	case RescheduleTask:
		start, end, err := b.parseRange(in.Start, in.End)
		if err != nil {
			return err
		}
		return b.Store.Reschedule(in.ID, start, end)
	case ShiftTask:
		return b.Store.Shift(in.ID, in.Days)
	case ResizeTask:
		return b.Store.Resize(in.ID, in.Days)
	case DragStart:
		return b.Drag.PointerDown(in.ID, in.X)
	case DragMove:
		b.Drag.PointerMove(in.X)
		return nil
	case DragEnd:
		return b.Drag.PointerUp()
	case DragCancel:
		b.Drag.Cancel()
		return nil
	default:
		return fmt.Errorf("unknown intent %T", in)
	}
}

// Tasks returns the renderer view of the store, with drag preview applied
func (b *Board) Tasks() []model.Task {
	return b.Drag.Decorate(b.Store.Snapshot())
}

func (b *Board) parseRange(startText, endText string) (time.Time, time.Time, error) {
	now := b.Now()
	start, err := model.ParseDate(startText, now)
	if err != nil {
		return time.Time{}, time.Time{}, newValidation("start", err.Error())
	}
	end, err := model.ParseDate(endText, now)
	if err != nil {
		return time.Time{}, time.Time{}, newValidation("end", err.Error())
	}
	return start, end, nil
}
