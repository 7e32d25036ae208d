package gantt

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/existflow/irongantt/internal/model"
)

// Zoom is a named horizontal scale
type Zoom int

const (
	ZoomQuarter Zoom = iota
	ZoomMonth
	ZoomWeek
	ZoomDay
)

var zoomNames = []string{"quarter", "month", "week", "day"}

// pixels (terminal cells) per day at each zoom level
var zoomScales = []float64{1, 2, 4, 6}

// String returns the zoom name
func (z Zoom) String() string {
	if z < ZoomQuarter || z > ZoomDay {
		return "unknown"
	}
	return zoomNames[z]
}

// PixelsPerDay returns the scale for this zoom level
func (z Zoom) PixelsPerDay() float64 {
	if z < ZoomQuarter || z > ZoomDay {
		return zoomScales[ZoomMonth]
	}
	return zoomScales[z]
}

// In returns the next closer zoom level
func (z Zoom) In() Zoom {
	if z >= ZoomDay {
		return ZoomDay
	}
	return z + 1
}

// Out returns the next wider zoom level
func (z Zoom) Out() Zoom {
	if z <= ZoomQuarter {
		return ZoomQuarter
	}
	return z - 1
}

// ParseZoom converts a zoom name
func ParseZoom(s string) (Zoom, error) {
	for i, name := range zoomNames {
		if strings.EqualFold(s, name) {
			return Zoom(i), nil
		}
	}
	return ZoomMonth, fmt.Errorf("unknown zoom %q (want one of %s)", s, strings.Join(zoomNames, ", "))
}

// Days returns the fractional number of days from a to b. Whole days are
// counted on the calendar, so a DST change does not shift a date by an hour.
func Days(a, b time.Time) float64 {
	return float64(dayNumber(b)-dayNumber(a)) + clockFraction(b) - clockFraction(a)
}

// dayNumber counts calendar days since the Unix epoch for t's wall date
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// clockFraction is t's wall-clock time as a fraction of a day
func clockFraction(t time.Time) float64 {
	h, m, s := t.Clock()
	wall := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
	return wall.Hours() / 24
}

// Bar is a task's horizontal geometry in pixels from the epoch
type Bar struct {
	TaskID  int64
	Offset  float64
	Width   float64
	Preview float64 // drag preview shift, zero when not dragging
}

// Left is the rendered left edge including the preview shift
func (b Bar) Left() float64 {
	return b.Offset + b.Preview
}

// Right is the rendered right edge
func (b Bar) Right() float64 {
	return b.Left() + b.Width
}

// BarFor computes a task's geometry
func BarFor(t model.Task, epoch time.Time, pixelsPerDay float64) Bar {
	return Bar{
		TaskID:  t.ID,
		Offset:  Days(epoch, t.StartDate) * pixelsPerDay,
		Width:   Days(t.StartDate, t.EndDate) * pixelsPerDay,
		Preview: float64(t.DragOffsetDays) * pixelsPerDay,
	}
}

// EpochFor picks the chart origin: the earliest start at midnight, or today
func EpochFor(tasks []model.Task, today time.Time) time.Time {
	if len(tasks) == 0 {
		return model.StartOfDay(today)
	}
	earliest := tasks[0].StartDate
	for _, t := range tasks[1:] {
		if t.StartDate.Before(earliest) {
			earliest = t.StartDate
		}
	}
	return model.StartOfDay(earliest)
}

// Viewport is the visible window onto the chart
type Viewport struct {
	Epoch        time.Time
	PixelsPerDay float64
	ScrollX      float64 // pixels from the epoch to the left edge
	Width        float64 // visible pixels
	FirstRow     int
	Rows         int
}

// VisibleBar is a task row inside the viewport, with its bar clipped to
// viewport columns. Start is inclusive, End exclusive.
type VisibleBar struct {
	Task         model.Task
	Row          int
	Start        int
	End          int
	Visible      bool
	ClippedLeft  bool
	ClippedRight bool
}

// VisibleDays returns the first and last day index (from the epoch) in view
func (v Viewport) VisibleDays() (first, last int) {
	if v.PixelsPerDay <= 0 {
		return 0, -1
	}
	first = int(math.Floor(v.ScrollX / v.PixelsPerDay))
	last = int(math.Ceil((v.ScrollX+v.Width)/v.PixelsPerDay)) - 1
	if last < first {
		last = first
	}
	return first, last
}

// DayAt returns the date of a day index
func (v Viewport) DayAt(index int) time.Time {
	return v.Epoch.AddDate(0, 0, index)
}

// ColumnOf returns the viewport column where a day begins
func (v Viewport) ColumnOf(index int) int {
	return int(math.Floor(float64(index)*v.PixelsPerDay - v.ScrollX))
}

// VisibleTasks returns the rows in vertical range, each with its clipped span
func (v Viewport) VisibleTasks(tasks []model.Task) []VisibleBar {
	var out []VisibleBar
	for i, t := range tasks {
		if i < v.FirstRow || i >= v.FirstRow+v.Rows {
			continue
		}
		out = append(out, v.clip(t, i-v.FirstRow))
	}
	return out
}

// HitTest returns the task whose bar covers column x on viewport row row
func (v Viewport) HitTest(tasks []model.Task, x float64, row int) (int64, bool) {
	idx := v.FirstRow + row
	if row < 0 || row >= v.Rows || idx < 0 || idx >= len(tasks) {
		return 0, false
	}
	vb := v.clip(tasks[idx], row)
	if !vb.Visible || x < float64(vb.Start) || x >= float64(vb.End) {
		return 0, false
	}
	return vb.Task.ID, true
}

func (v Viewport) clip(t model.Task, row int) VisibleBar {
	bar := BarFor(t, v.Epoch, v.PixelsPerDay)
	left := bar.Left() - v.ScrollX
	right := left + math.Max(bar.Width, 1)

	start := int(math.Floor(left))
	end := int(math.Ceil(right))
	vb := VisibleBar{Task: t, Row: row}
	if end <= 0 || start >= int(v.Width) {
		return vb
	}
	vb.Visible = true
	if start < 0 {
		start = 0
		vb.ClippedLeft = true
	}
	if end > int(v.Width) {
		end = int(v.Width)
		vb.ClippedRight = true
	}
	vb.Start, vb.End = start, end
	return vb
}
