package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/model"
)

// NameWidth is the width of the task name column, cursor included
const NameWidth = 24

// Chart renders task bars for a viewport. The TUI and the static
// chart command share it.
type Chart struct {
	Viewport gantt.Viewport
	Today    time.Time
	Cursor   int // Selected task index, -1 for none
}

// Render returns the day header followed by one line per visible task
func (c Chart) Render(tasks []model.Task) string {
	lines := []string{c.Header()}
	lines = append(lines, c.Rows(tasks)...)
	return strings.Join(lines, "\n")
}

// Header is the day label line, aligned with the bars
func (c Chart) Header() string {
	vp := c.Viewport
	width := int(vp.Width)
	line := []rune(strings.Repeat(" ", width))

	first, last := vp.VisibleDays()
	next := 0
	for d := first; d <= last; d++ {
		label := []rune(dayLabel(vp.DayAt(d), vp.PixelsPerDay))
		col := vp.ColumnOf(d)
		if len(label) == 0 || col < next || col < 0 || col+len(label) > width {
			continue
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return strings.Repeat(" ", NameWidth) + DayLabelStyle.Render(string(line))
}

// Rows renders the name column and bar of each task in vertical range
func (c Chart) Rows(tasks []model.Task) []string {
	grid, todayCol := c.grid()
	visible := c.Viewport.VisibleTasks(tasks)
	rows := make([]string, 0, len(visible))
	for _, vb := range visible {
		rows = append(rows, c.name(vb)+c.row(vb, grid, todayCol))
	}
	return rows
}

func dayLabel(day time.Time, pixelsPerDay float64) string {
	switch {
	case pixelsPerDay >= 6:
		return day.Format("Mon")[:2] + " " + day.Format("2")
	case pixelsPerDay >= 4:
		if day.Day() == 1 {
			return day.Format("Jan")
		}
		return day.Format("2")
	case pixelsPerDay >= 2:
		if day.Weekday() == time.Monday {
			return day.Format("Jan 2")
		}
	default:
		if day.Day() == 1 {
			if day.Month() == time.January {
				return day.Format("2006")
			}
			return day.Format("Jan")
		}
	}
	return ""
}

// grid returns the background runes of an empty row and the column of
// today, or -1 when today is out of view
func (c Chart) grid() ([]rune, int) {
	vp := c.Viewport
	width := int(vp.Width)
	grid := []rune(strings.Repeat(" ", width))
	todayCol := -1
	today := model.StartOfDay(c.Today)

	first, last := vp.VisibleDays()
	for d := first; d <= last; d++ {
		col := vp.ColumnOf(d)
		if col < 0 || col >= width {
			continue
		}
		day := vp.DayAt(d)
		switch {
		case !c.Today.IsZero() && day.Equal(today):
			grid[col] = '┃'
			todayCol = col
		case vp.PixelsPerDay >= 2 && day.Weekday() == time.Monday:
			grid[col] = '┆'
		case vp.PixelsPerDay < 2 && day.Day() == 1:
			grid[col] = '┆'
		}
	}
	return grid, todayCol
}

func (c Chart) name(vb gantt.VisibleBar) string {
	index := c.Viewport.FirstRow + vb.Row
	cursor := "  "
	style := NameStyle
	if index == c.Cursor {
		cursor = "❯ "
		style = NameSelectedStyle
	}
	label := fmt.Sprintf("#%d %s", vb.Task.ID, vb.Task.Name)
	return style.Render(cursor+fit(label, NameWidth-3)) + " "
}

func (c Chart) row(vb gantt.VisibleBar, grid []rune, todayCol int) string {
	width := len(grid)
	if !vb.Visible {
		return gridSpan(grid, 0, width, todayCol)
	}
	return gridSpan(grid, 0, vb.Start, todayCol) + bar(vb) + gridSpan(grid, vb.End, width, todayCol)
}

// gridSpan renders grid[from:to] with today's column highlighted
func gridSpan(grid []rune, from, to, todayCol int) string {
	if from >= to {
		return ""
	}
	if todayCol < from || todayCol >= to {
		return GridStyle.Render(string(grid[from:to]))
	}
	return GridStyle.Render(string(grid[from:todayCol])) +
		TodayStyle.Render(string(grid[todayCol])) +
		GridStyle.Render(string(grid[todayCol+1:to]))
}

func bar(vb gantt.VisibleBar) string {
	t := vb.Task
	width := vb.End - vb.Start
	label := t.Name
	if t.IsDragging && t.DragOffsetDays != 0 {
		label = fmt.Sprintf("%s %+dd", t.Name, t.DragOffsetDays)
	}

	cells := []rune(fit(" "+label, width))
	if vb.ClippedLeft {
		cells[0] = '◀'
	}
	if vb.ClippedRight {
		cells[len(cells)-1] = '▶'
	}

	color := t.Color
	if color == "" {
		color = model.ColorGreen
	}
	return BarStyle(color, t.IsDragging).Render(string(cells))
}

// Static renders a chart of tasks sized to width, for non-interactive output
func Static(tasks []model.Task, width int, zoom gantt.Zoom, today time.Time) string {
	ppd := zoom.PixelsPerDay()
	vp := gantt.Viewport{
		Epoch:        gantt.EpochFor(tasks, today),
		PixelsPerDay: ppd,
		ScrollX:      -ppd,
		Width:        float64(max(width-NameWidth, 10)),
		Rows:         len(tasks),
	}
	chart := Chart{Viewport: vp, Today: today, Cursor: -1}
	return chart.Render(tasks)
}
