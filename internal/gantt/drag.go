package gantt

import (
	"errors"
	"math"
	"time"

	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/model"
	"golang.org/x/time/rate"
)

// DragState is the controller's state
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

// String returns the state name
func (s DragState) String() string {
	if s == DragDragging {
		return "dragging"
	}
	return "idle"
}

// Scheduler is the part of Store the drag controller commits through
type Scheduler interface {
	Get(id int64) (model.Task, error)
	Reschedule(id int64, start, end time.Time) error
}

// DragController turns press / move / release into a single date shift.
// Moves only update a preview; the store sees one Reschedule on release.
type DragController struct {
	store        Scheduler
	pixelsPerDay float64
	limiter      *rate.Limiter

	state      DragState
	taskID     int64
	anchorX    float64
	latestX    float64
	offsetDays int
}

// NewDragController creates an idle controller.
// A zero throttle recomputes the preview on every move.
func NewDragController(store Scheduler, pixelsPerDay float64, throttle time.Duration) *DragController {
	limit := rate.Inf
	if throttle > 0 {
		limit = rate.Every(throttle)
	}
	if pixelsPerDay <= 0 {
		pixelsPerDay = 1
	}
	return &DragController{
		store:        store,
		pixelsPerDay: pixelsPerDay,
		limiter:      rate.NewLimiter(limit, 1),
	}
}

// State returns the current state
func (d *DragController) State() DragState {
	return d.state
}

// Active returns the dragged task id and the previewed offset
func (d *DragController) Active() (id int64, offsetDays int, ok bool) {
	if d.state != DragDragging {
		return 0, 0, false
	}
	return d.taskID, d.offsetDays, true
}

// PixelsPerDay returns the current scale
func (d *DragController) PixelsPerDay() float64 {
	return d.pixelsPerDay
}

// SetPixelsPerDay changes the scale. Ignored while dragging.
func (d *DragController) SetPixelsPerDay(ppd float64) {
	if d.state == DragDragging || ppd <= 0 {
		return
	}
	d.pixelsPerDay = ppd
}

// PointerDown starts a drag on taskID. A drag already in progress is
// completed first; its commit error, if any, is returned.
func (d *DragController) PointerDown(taskID int64, x float64) error {
	var prevErr error
	if d.state == DragDragging {
		logger.Debug("Drag force-completed by new press", logger.F("task_id", d.taskID))
		prevErr = d.PointerUp()
	}

	if _, err := d.store.Get(taskID); err != nil {
		return errors.Join(prevErr, err)
	}

	d.state = DragDragging
	d.taskID = taskID
	d.anchorX = x
	d.latestX = x
	d.offsetDays = 0
	logger.Debug("Drag started", logger.F("task_id", taskID), logger.F("x", x))
	return prevErr
}

// PointerMove records the latest position and refreshes the preview
// when the throttle allows. It reports whether the preview changed.
func (d *DragController) PointerMove(x float64) bool {
	if d.state != DragDragging {
		return false
	}
	d.latestX = x
	if !d.limiter.Allow() {
		return false
	}
	return d.recompute()
}

// PointerUp commits the latest offset, or discards a zero offset
func (d *DragController) PointerUp() error {
	if d.state != DragDragging {
		return nil
	}
	d.recompute()
	id, offset := d.taskID, d.offsetDays
	d.reset()

	if offset == 0 {
		logger.Debug("Drag discarded", logger.F("task_id", id))
		return nil
	}

	t, err := d.store.Get(id)
	if err != nil {
		return err
	}
	moved := t.Shifted(offset)
	if err := d.store.Reschedule(id, moved.StartDate, moved.EndDate); err != nil {
		return err
	}
	logger.Info("Drag committed", logger.F("task_id", id), logger.F("days", offset))
	return nil
}

// Cancel drops the drag without touching the store
func (d *DragController) Cancel() {
	if d.state == DragDragging {
		logger.Debug("Drag cancelled", logger.F("task_id", d.taskID))
	}
	d.reset()
}

// Decorate copies the transient drag fields onto a snapshot for rendering
func (d *DragController) Decorate(tasks []model.Task) []model.Task {
	out := model.CloneTasks(tasks)
	for i := range out {
		out[i] = out[i].Neutral()
		if d.state == DragDragging && out[i].ID == d.taskID {
			out[i].IsDragging = true
			out[i].DragOffsetDays = d.offsetDays
		}
	}
	return out
}

func (d *DragController) recompute() bool {
	offset := int(math.Round((d.latestX - d.anchorX) / d.pixelsPerDay))
	if offset == d.offsetDays {
		return false
	}
	d.offsetDays = offset
	return true
}

func (d *DragController) reset() {
	d.state = DragIdle
	d.taskID = 0
	d.anchorX = 0
	d.latestX = 0
	d.offsetDays = 0
}
