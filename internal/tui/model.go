package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/model"
	"github.com/existflow/irongantt/internal/persist"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeRename
	ModeHelp
)

// Screen rows above the first task row and below the last
const (
	headerHeight = 3 // Title, day labels, divider
	statusHeight = 2
)

// Add form fields
const (
	fieldName = iota
	fieldStart
	fieldEnd
	fieldColor
	fieldCount
)

// SaveTracker reports background save progress
type SaveTracker interface {
	Status() persist.WriterStatus
	Flush(ctx context.Context) error
}

// Options configures a Model
type Options struct {
	Zoom         gantt.Zoom
	Throttle     time.Duration
	DefaultColor string
	Saves        SaveTracker      // Optional
	Now          func() time.Time // Defaults to time.Now
}

// Model is the main TUI model
type Model struct {
	board     *gantt.Board
	saves     SaveTracker
	savedChan chan error // Signals a finished background save
	now       func() time.Time

	// Chart position
	zoom     gantt.Zoom
	epoch    time.Time
	scrollX  float64
	firstRow int
	cursor   int

	// UI state
	width  int
	height int
	mode   Mode

	// Input
	form         []textinput.Model
	formFocus    int
	formErr      string
	renameInput  textinput.Model
	renameID     int64
	defaultColor string

	message string
	isError bool
}

// NewModel creates a TUI over store
func NewModel(store *gantt.Store, opts Options) Model {
	logger.Info("Initializing TUI model")

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.DefaultColor == "" {
		opts.DefaultColor = model.ColorGreen
	}

	board := gantt.NewBoard(store, opts.Zoom.PixelsPerDay(), opts.Throttle)
	board.Now = now

	ri := textinput.New()
	ri.Placeholder = "Task name"
	ri.CharLimit = 256
	ri.Width = 40

	m := Model{
		board:        board,
		saves:        opts.Saves,
		savedChan:    make(chan error, 1),
		now:          now,
		zoom:         opts.Zoom,
		epoch:        gantt.EpochFor(store.Snapshot(), now()),
		mode:         ModeNormal,
		form:         newForm(),
		renameInput:  ri,
		defaultColor: opts.DefaultColor,
	}
	m.scrollX = -2 * m.pixelsPerDay()

	logger.Debug("TUI model initialized",
		logger.F("tasks", store.Len()),
		logger.F("zoom", opts.Zoom.String()))
	return m
}

func newForm() []textinput.Model {
	placeholders := [fieldCount]string{"Task name", "today", "+7d", model.ColorGreen}
	form := make([]textinput.Model, fieldCount)
	for i := range form {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 30
		form[i] = ti
	}
	return form
}

// NotifySaved is the writer's save callback. It may be called from any
// goroutine; notifications are coalesced while the UI is busy.
func (m Model) NotifySaved(err error) {
	select {
	case m.savedChan <- err:
	default:
	}
}

// Board exposes the chart state
func (m Model) Board() *gantt.Board {
	return m.board
}

func (m Model) pixelsPerDay() float64 {
	return m.zoom.PixelsPerDay()
}

func (m Model) chartWidth() int {
	return max(m.width-NameWidth, 10)
}

func (m Model) chartRows() int {
	return max(m.height-headerHeight-statusHeight, 1)
}

func (m Model) viewport() gantt.Viewport {
	return gantt.Viewport{
		Epoch:        m.epoch,
		PixelsPerDay: m.pixelsPerDay(),
		ScrollX:      m.scrollX,
		Width:        float64(m.chartWidth()),
		FirstRow:     m.firstRow,
		Rows:         m.chartRows(),
	}
}

func (m Model) currentTask() (model.Task, bool) {
	tasks := m.board.Store.Snapshot()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.cursor], true
}

// clampCursor keeps the selection on a task and inside the visible rows
func (m *Model) clampCursor() {
	n := m.board.Store.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.chartRows()
	if m.cursor < m.firstRow {
		m.firstRow = m.cursor
	}
	if m.cursor >= m.firstRow+rows {
		m.firstRow = m.cursor - rows + 1
	}
	if m.firstRow < 0 {
		m.firstRow = 0
	}
}
