package model

import (
	"fmt"
	"time"
)

// Default bar colors, in the order the demo tasks use them
const (
	ColorGreen  = "#4CAF50"
	ColorOrange = "#FF9800"
	ColorPurple = "#673AB7"
)

// Task is a scheduled bar on the chart
type Task struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Color     string    `json:"color"`

	// Drag state, only set on renderer copies while a drag is in progress
	IsDragging     bool `json:"-"`
	DragOffsetDays int  `json:"-"`
}

// Snapshot is the persisted form of the chart
type Snapshot struct {
	LastID int64  `json:"last_id"`
	Tasks  []Task `json:"tasks"`
}

// NewTask creates a task with the default color when none is given
func NewTask(id int64, name string, start, end time.Time, color string) Task {
	if color == "" {
		color = ColorGreen
	}
	return Task{
		ID:        id,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Color:     color,
	}
}

// Validate checks the start <= end invariant
func (t Task) Validate() error {
	if t.StartDate.After(t.EndDate) {
		return fmt.Errorf("start %s is after end %s",
			t.StartDate.Format(DateLayout), t.EndDate.Format(DateLayout))
	}
	return nil
}

// Duration returns the length of the bar
func (t Task) Duration() time.Duration {
	return t.EndDate.Sub(t.StartDate)
}

// Shifted returns a copy moved by the given number of days
func (t Task) Shifted(days int) Task {
	t.StartDate = t.StartDate.AddDate(0, 0, days)
	t.EndDate = t.EndDate.AddDate(0, 0, days)
	return t
}

// Neutral returns a copy with drag state cleared
func (t Task) Neutral() Task {
	t.IsDragging = false
	t.DragOffsetDays = 0
	return t
}

// CloneTasks copies a task slice
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// SeedTasks returns the three demo tasks starting at base
func SeedTasks(base time.Time) []Task {
	return []Task{
		NewTask(1, "Task 1", base, base.AddDate(0, 0, 5), ColorGreen),
		NewTask(2, "Task 2", base.AddDate(0, 0, 6), base.AddDate(0, 0, 9), ColorOrange),
		NewTask(3, "Task 3", base.AddDate(0, 0, 10), base.AddDate(0, 0, 14), ColorPurple),
	}
}
