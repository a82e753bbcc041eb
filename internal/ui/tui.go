// Package ui provides an interactive terminal front-end for a task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/chores/internal/output"
	"github.com/abatilo/chores/internal/storage"
	"github.com/abatilo/chores/internal/task"
)

// ErrNotTTY is returned by Run when stdout is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

//nolint:gochecknoglobals // immutable render styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Run starts the interactive list over store and blocks until the user quits.
func Run(ctx context.Context, store *storage.Store) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	program := tea.NewProgram(newModel(store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
	modeDate
	modeInterval
)

type model struct {
	store    *storage.Store
	tasks    []task.Task
	cursor   int
	loadErr  error
	lastErr  error
	status   string
	showHelp bool
	mode     inputMode
	input    []rune
}

func newModel(store *storage.Store) *model {
	m := &model{store: store}
	m.reload()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.mode != modeBrowse {
		m.updateInput(key)
		return m, nil
	}

	m.lastErr = nil
	m.status = ""

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "h", "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ", "space", "x":
		if m.hasSelection() {
			_, err := m.store.ToggleDone(m.cursor)
			m.afterMutation(err)
		}
	case "d":
		if m.hasSelection() {
			m.afterMutation(m.store.Delete(m.cursor))
		}
	case "K", "shift+up":
		if m.hasSelection() && m.cursor > 0 {
			if err := m.store.Swap(m.cursor, m.cursor-1); err == nil {
				m.cursor--
			} else {
				m.lastErr = err
			}
			m.reload()
		}
	case "J", "shift+down":
		if m.hasSelection() && m.cursor < len(m.tasks)-1 {
			if err := m.store.Swap(m.cursor, m.cursor+1); err == nil {
				m.cursor++
			} else {
				m.lastErr = err
			}
			m.reload()
		}
	case "a":
		m.mode = modeAdd
		m.input = nil
	case "e":
		if m.hasSelection() {
			m.mode = modeEdit
			m.input = []rune(m.tasks[m.cursor].Text)
		}
	case "t":
		if m.hasSelection() {
			m.mode = modeDate
			m.input = []rune(m.tasks[m.cursor].Date.String())
		}
	case "i":
		if m.hasSelection() {
			m.mode = modeInterval
			m.input = []rune(m.tasks[m.cursor].Interval.String())
		}
	case "r", "f5":
		n, err := m.store.CatchUp()
		m.afterMutation(err)
		if err == nil {
			m.status = fmt.Sprintf("%d recurring task(s) advanced", n)
		}
	}
	return m, nil
}

func (m *model) updateInput(key tea.KeyMsg) {
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.mode = modeBrowse
		m.input = nil
	case tea.KeyEnter:
		m.commitInput()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
}

func (m *model) commitInput() {
	text := strings.TrimSpace(string(m.input))
	mode := m.mode
	m.mode = modeBrowse
	m.input = nil

	switch mode {
	case modeAdd:
		if text == "" {
			return
		}
		index, err := m.store.Add(task.Task{Text: text})
		if err == nil {
			m.cursor = index
		}
		m.afterMutation(err)
	case modeEdit:
		if text == "" {
			return
		}
		m.afterMutation(m.store.Edit(m.cursor, task.Patch{Text: &text}))
	case modeDate:
		var due task.Date
		if text != "" {
			d, err := task.ParseDate(text)
			if err != nil {
				m.lastErr = err
				return
			}
			due = d
		}
		m.afterMutation(m.store.Edit(m.cursor, task.Patch{Date: &due}))
	case modeInterval:
		iv, err := task.ParseInterval(text)
		if err != nil {
			m.lastErr = err
			return
		}
		m.afterMutation(m.store.Edit(m.cursor, task.Patch{Interval: &iv}))
	case modeBrowse:
	}
}

func (m *model) hasSelection() bool {
	return m.loadErr == nil && m.cursor >= 0 && m.cursor < len(m.tasks)
}

// afterMutation records err and re-reads the list, since any write may
// have shifted indices.
func (m *model) afterMutation(err error) {
	m.lastErr = err
	m.reload()
}

func (m *model) reload() {
	tasks, err := m.store.List()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.cursor = 0
		return
	}
	m.loadErr = nil
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder
	writeTitle(&b, m.store.Path())

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	writeTasks(&b, m.tasks, m.cursor)

	switch m.mode {
	case modeAdd:
		b.WriteString("New task: " + string(m.input) + "_\n\n")
	case modeEdit:
		fmt.Fprintf(&b, "Edit task %d: %s_\n\n", m.cursor+1, string(m.input))
	case modeDate:
		fmt.Fprintf(&b, "Due date for task %d (dd.mm.yy, empty clears): %s_\n\n", m.cursor+1, string(m.input))
	case modeInterval:
		fmt.Fprintf(&b, "Repeat task %d (days, month, year, empty clears): %s_\n\n", m.cursor+1, string(m.input))
	case modeBrowse:
	}

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: "+m.lastErr.Error()) + "\n\n")
	} else if m.status != "" {
		b.WriteString(m.status + "\n\n")
	}

	writeFooter(&b)
	return b.String()
}

func writeTitle(b *strings.Builder, path string) {
	b.WriteString(titleStyle.Render("chores") + "  " + path + "\n\n")
}

func writeTasks(b *strings.Builder, tasks []task.Task, cursor int) {
	if len(tasks) == 0 {
		b.WriteString("  No tasks. Press a to add one.\n\n")
		return
	}
	for i, t := range tasks {
		b.WriteString(formatRow(i, t, i == cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func formatRow(i int, t task.Task, selected bool) string {
	pointer := "  "
	if selected {
		pointer = cursorStyle.Render(">") + " "
	}
	check := "[ ]"
	if t.Done {
		check = "[x]"
	}

	text := t.Text
	if t.Done {
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s%d. %s %s", pointer, i+1, check, text)
	if !t.Date.IsZero() {
		line += "  " + t.Date.String()
	}
	if rec := output.Recurrence(t.Interval); rec != "" {
		line += "  (" + rec + ")"
	}
	return line
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c      Quit\n")
	b.WriteString("  j/k, arrows    Move the cursor\n")
	b.WriteString("  space, x       Toggle done\n")
	b.WriteString("  a              Add a task\n")
	b.WriteString("  e              Edit the task text\n")
	b.WriteString("  t              Set or clear the due date\n")
	b.WriteString("  i              Set or clear the repeat rule\n")
	b.WriteString("  d              Delete the task\n")
	b.WriteString("  K/J            Move the task up or down\n")
	b.WriteString("  r, F5          Reload and advance recurring tasks\n")
	b.WriteString("  h, ?           Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | q to quit\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
