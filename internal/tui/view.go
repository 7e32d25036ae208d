package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/existflow/irongantt/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var mainContent string
	switch m.mode {
	case ModeAddTask, ModeRename:
		mainContent = lipgloss.Place(
			m.width, m.height-statusHeight,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		mainContent = m.renderHelp()
	default:
		mainContent = m.renderChart()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, m.renderStatusBar())
}

func (m Model) renderChart() string {
	vp := m.viewport()
	first, last := vp.VisibleDays()

	title := HeaderStyle.Render("IronGantt") + "  " +
		HelpStyle.Render(fmt.Sprintf("%s  %s – %s",
			m.zoom,
			vp.DayAt(first).Format("Jan 2 2006"),
			vp.DayAt(last).Format("Jan 2 2006")))

	chart := Chart{Viewport: vp, Today: m.now(), Cursor: m.cursor}
	tasks := m.board.Tasks()

	lines := []string{
		title,
		chart.Header(),
		GridStyle.Render(strings.Repeat("─", m.width)),
	}
	rows := chart.Rows(tasks)
	if len(tasks) == 0 {
		rows = []string{HelpStyle.Render("  No tasks. Press 'a' to add one.")}
	}
	lines = append(lines, rows...)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - statusHeight).
		MaxHeight(m.height - statusHeight).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	left := "a:add  e:rename  d:del  h/l:move  H/L:resize  +/-:zoom  ?:help  q:quit"
	if id, offset, ok := m.board.Drag.Active(); ok {
		left = fmt.Sprintf("Dragging #%d %+d days  (esc to cancel)", id, offset)
	} else if m.message != "" {
		left = m.message
		if m.isError {
			left = ErrorStyle.Render(left)
		}
	}

	right := fmt.Sprintf("%d tasks", m.board.Store.Len())
	if save := m.saveStatus(); save != "" {
		right += "  " + save
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) saveStatus() string {
	if m.saves == nil {
		return ""
	}
	status := m.saves.Status()
	switch {
	case status.Pending:
		return lipgloss.NewStyle().Foreground(SavePending).Render("saving…")
	case status.LastError != nil:
		return lipgloss.NewStyle().Foreground(SaveError).Render("save failed")
	case !status.LastSaved.IsZero():
		return lipgloss.NewStyle().Foreground(SaveOK).Render("saved " + humanize.Time(status.LastSaved))
	}
	return ""
}

func (m Model) renderModal() string {
	var content string
	if m.mode == ModeRename {
		content = lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Rename #%d", m.renameID)) + "\n\n"
		content += m.renameInput.View() + "\n"
	} else {
		content = lipgloss.NewStyle().Bold(true).Render("Add Task") + "\n\n"
		labels := [fieldCount]string{"Name", "Start", "End", "Color"}
		for i, input := range m.form {
			content += LabelStyle.Render(labels[i]) + input.View() + "\n"
		}
		content += HelpStyle.Render("Dates: "+model.DateLayout+", today, +3d, -1d") + "\n"
	}

	if m.formErr != "" {
		content += "\n" + ErrorStyle.Render(m.formErr) + "\n"
	}
	content += "\n" + HelpStyle.Render("Enter:save  Tab:next field  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard & Mouse ─────────────╮
│                                  │
│  Navigation                      │
│  ──────────                      │
│  j/↓     Next task               │
│  k/↑     Previous task           │
│  [ ]     Scroll a week           │
│  wheel   Scroll a day            │
│  t       Jump to today           │
│  + -     Zoom in / out           │
│                                  │
│  Editing                         │
│  ───────                         │
│  a       Add task                │
│  e       Rename                  │
│  d       Delete                  │
│  h/l     Move a day              │
│  H/L     Shorten / lengthen      │
│  drag    Move with the mouse     │
│  esc     Cancel drag             │
│                                  │
│  Other                           │
│  ─────                           │
│  ?       Toggle help             │
│  q       Save and quit           │
│                                  │
╰──────────────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-statusHeight, lipgloss.Center, lipgloss.Center, help)
}
