package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/model"
)

// tickMsg is sent every second so relative save times stay current
type tickMsg time.Time

// savedMsg is sent when a background save finishes
type savedMsg struct {
	err error
}

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForSaved())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForSaved listens for save notifications
func (m Model) waitForSaved() tea.Cmd {
	if m.savedChan == nil {
		return nil
	}
	return func() tea.Msg {
		return savedMsg{err: <-m.savedChan}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tickCmd()

	case savedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		}
		return m, m.waitForSaved()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil

	case tea.MouseMsg:
		if m.mode != ModeNormal {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask:
			return m.updateForm(msg)
		case ModeRename:
			return m.updateRename(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// apply dispatches an intent and reports failures in the status bar
func (m *Model) apply(in gantt.Intent) error {
	err := m.board.Dispatch(in)
	if err != nil {
		m.setError(err)
	}
	return err
}

func (m *Model) setError(err error) {
	switch {
	case gantt.IsValidation(err):
		logger.Debug("Edit rejected", logger.F("error", err))
	case gantt.IsNotFound(err):
		logger.Warn("Edit on missing task", logger.F("error", err))
	default:
		logger.Error("TUI error", logger.F("error", err))
	}
	m.message = err.Error()
	m.isError = true
}

func (m *Model) setMessage(format string, args ...any) {
	m.message = fmt.Sprintf(format, args...)
	m.isError = false
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		m.scrollDays(-1)
		return m, nil
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		m.scrollDays(1)
		return m, nil
	}

	col := msg.X - NameWidth
	row := msg.Y - headerHeight
	x := float64(col) + m.scrollX

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if row >= 0 && row < m.chartRows() && m.firstRow+row < m.board.Store.Len() {
			m.cursor = m.firstRow + row
		}
		if col < 0 {
			return m, nil
		}
		id, ok := m.viewport().HitTest(m.board.Tasks(), float64(col), row)
		if !ok {
			return m, nil
		}
		_ = m.apply(gantt.DragStart{ID: id, X: x})

	case tea.MouseActionMotion:
		if _, _, ok := m.board.Drag.Active(); ok {
			_ = m.apply(gantt.DragMove{X: x})
		}

	case tea.MouseActionRelease:
		id, _, ok := m.board.Drag.Active()
		if !ok {
			return m, nil
		}
		before, _ := m.board.Store.Get(id)
		if err := m.apply(gantt.DragEnd{}); err != nil {
			return m, nil
		}
		if after, err := m.board.Store.Get(id); err == nil && !after.StartDate.Equal(before.StartDate) {
			m.setMessage("Moved #%d to %s", id, after.StartDate.Format(model.DateLayout))
		}
	}
	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, m.quit()

	case key.Matches(msg, keys.Up):
		m.cursor--
		m.clampCursor()

	case key.Matches(msg, keys.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, keys.ShiftLeft):
		m.editSelected(func(id int64) gantt.Intent { return gantt.ShiftTask{ID: id, Days: -1} })

	case key.Matches(msg, keys.ShiftRight):
		m.editSelected(func(id int64) gantt.Intent { return gantt.ShiftTask{ID: id, Days: 1} })

	case key.Matches(msg, keys.Shrink):
		m.editSelected(func(id int64) gantt.Intent { return gantt.ResizeTask{ID: id, Days: -1} })

	case key.Matches(msg, keys.Grow):
		m.editSelected(func(id int64) gantt.Intent { return gantt.ResizeTask{ID: id, Days: 1} })

	case key.Matches(msg, keys.ZoomIn):
		m.setZoom(m.zoom.In())

	case key.Matches(msg, keys.ZoomOut):
		m.setZoom(m.zoom.Out())

	case key.Matches(msg, keys.ScrollLeft):
		m.scrollDays(-7)

	case key.Matches(msg, keys.ScrollRight):
		m.scrollDays(7)

	case key.Matches(msg, keys.Today):
		m.scrollX = (gantt.Days(m.epoch, model.StartOfDay(m.now())) - 2) * m.pixelsPerDay()

	case key.Matches(msg, keys.Add):
		return m.startAddTask()

	case key.Matches(msg, keys.Rename):
		return m.startRename()

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.Escape):
		if _, _, ok := m.board.Drag.Active(); ok {
			_ = m.apply(gantt.DragCancel{})
			m.setMessage("Drag cancelled")
		} else {
			m.message = ""
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// quit abandons any drag, waits for pending saves, then exits
func (m Model) quit() tea.Cmd {
	if _, _, ok := m.board.Drag.Active(); ok {
		_ = m.board.Dispatch(gantt.DragCancel{})
	}
	saves := m.saves
	return func() tea.Msg {
		if saves != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := saves.Flush(ctx); err != nil {
				logger.Error("Final save failed", logger.F("error", err))
			}
		}
		return tea.QuitMsg{}
	}
}

func (m *Model) editSelected(intent func(id int64) gantt.Intent) {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	if m.apply(intent(task.ID)) == nil {
		updated, _ := m.board.Store.Get(task.ID)
		m.setMessage("#%d %s → %s", updated.ID,
			updated.StartDate.Format(model.DateLayout),
			updated.EndDate.Format(model.DateLayout))
	}
}

func (m *Model) handleDelete() {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	if m.apply(gantt.DeleteTask{ID: task.ID}) == nil {
		m.clampCursor()
		m.setMessage("Deleted: %s", task.Name)
	}
}

func (m *Model) setZoom(z gantt.Zoom) {
	if _, _, ok := m.board.Drag.Active(); ok {
		m.setMessage("Finish the drag before zooming")
		return
	}
	if z == m.zoom {
		return
	}
	// Keep the same day at the left edge
	day := m.scrollX / m.pixelsPerDay()
	m.zoom = z
	m.board.Drag.SetPixelsPerDay(z.PixelsPerDay())
	m.scrollX = day * z.PixelsPerDay()
	m.setMessage("Zoom: %s", z)
}

func (m *Model) scrollDays(days int) {
	m.scrollX += float64(days) * m.pixelsPerDay()
}

func (m Model) startAddTask() (tea.Model, tea.Cmd) {
	m.mode = ModeAddTask
	m.formErr = ""
	m.form = newForm()
	m.form[fieldStart].SetValue("today")
	m.form[fieldEnd].SetValue("+7d")
	m.form[fieldColor].SetValue(m.defaultColor)
	m.formFocus = fieldName
	m.form[fieldName].Focus()
	return m, textinput.Blink
}

func (m Model) startRename() (tea.Model, tea.Cmd) {
	task, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	m.mode = ModeRename
	m.formErr = ""
	m.renameID = task.ID
	m.renameInput.SetValue(task.Name)
	m.renameInput.Focus()
	m.renameInput.CursorEnd()
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Tab):
		m.focusField((m.formFocus + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, keys.ShiftTab):
		m.focusField((m.formFocus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.submitAddTask()
		return m, nil
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(field int) {
	m.form[m.formFocus].Blur()
	m.formFocus = field
	m.form[field].Focus()
}

// submitAddTask keeps the form open on validation errors so the
// input can be corrected
func (m *Model) submitAddTask() {
	if strings.TrimSpace(m.form[fieldName].Value()) == "" {
		m.formErr = "name must not be empty"
		m.focusField(fieldName)
		return
	}
	color := m.form[fieldColor].Value()
	if color == "" {
		color = m.defaultColor
	}
	err := m.board.Dispatch(gantt.AddTask{
		Name:  m.form[fieldName].Value(),
		Start: m.form[fieldStart].Value(),
		End:   m.form[fieldEnd].Value(),
		Color: color,
	})
	if err != nil {
		m.formErr = err.Error()
		field := fieldEnd
		if isFieldError(err, "start") {
			field = fieldStart
		}
		m.focusField(field)
		return
	}

	m.mode = ModeNormal
	m.cursor = m.board.Store.Len() - 1
	m.clampCursor()
	added, _ := m.currentTask()
	m.setMessage("Added #%d: %s", added.ID, added.Name)
}

func (m Model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		name := m.renameInput.Value()
		if strings.TrimSpace(name) == "" {
			m.formErr = "name must not be empty"
			return m, nil
		}
		if err := m.board.Dispatch(gantt.RenameTask{ID: m.renameID, Name: name}); err != nil {
			if gantt.IsValidation(err) {
				m.formErr = err.Error()
				return m, nil
			}
			m.mode = ModeNormal
			m.setError(err)
			return m, nil
		}
		m.mode = ModeNormal
		m.setMessage("Renamed #%d: %s", m.renameID, name)
		return m, nil
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}
