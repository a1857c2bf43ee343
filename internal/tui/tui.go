// Package tui is the interactive view. One bubbletea model projects the
// whole state tree into the screen on every update; there is no diffing and
// no incremental state in the view itself beyond cursor and editor position.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/store/jsonstore"
)

// editField names the single inline editor that may be open. fieldNone means
// no editor; opening another closes the current one implicitly because the
// model holds exactly one.
type editField int

const (
	fieldNone editField = iota
	fieldAdd
	fieldTitle
	fieldNotes
	fieldAssignee
	fieldDate
	fieldStatus
	fieldStage
	fieldCategory
)

type pickOption struct {
	value string
	label string
	color string // hex, empty for plain options
}

// Model implements tea.Model over the shared state tree.
type Model struct {
	state *model.State
	store *jsonstore.Store
	log   *logrus.Logger
	sort  model.SortMode

	width  int
	height int

	filter string // category id, "" = all
	cursor int

	// Inline editor. Enter commits, esc cancels; there is no blur-timer
	// race because commit is a single explicit transition.
	field   editField
	editID  string // task being edited
	ti      textinput.Model
	options []pickOption
	pick    int
	editErr string

	// Single-level undo for deletes.
	undoTask  *model.Task
	undoIndex int
	canUndo   bool

	notice string
}

// New builds the interactive model around an already-loaded state tree.
func New(st *model.State, store *jsonstore.Store, sort model.SortMode, log *logrus.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	return Model{state: st, store: store, sort: sort, log: log, ti: ti}
}

// Run starts the program and blocks until the user quits.
func Run(st *model.State, store *jsonstore.Store, sort model.SortMode, log *logrus.Logger) error {
	p := tea.NewProgram(New(st, store, sort, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// visible is the projection the table renders: filtered, completion-gated,
// stably sorted.
func (m Model) visible() []model.Task {
	return m.state.Visible(m.filter, m.sort)
}

// filterIDs returns the cycle order of the filter bar: all, then categories.
func (m Model) filterIDs() []string {
	ids := []string{""}
	for _, c := range m.state.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// persist saves the whole tree after a mutation. Failures are logged and
// reduced to a generic notice; in-memory state stays authoritative for the
// rest of the session.
func (m *Model) persist() {
	if err := m.store.Save(m.state); err != nil {
		m.log.WithError(err).Error("save state")
		m.notice = "save failed"
		return
	}
	m.notice = ""
}

func (m *Model) closeEditor() {
	m.field = fieldNone
	m.editID = ""
	m.options = nil
	m.pick = 0
	m.editErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m *Model) openText(field editField, id, current, placeholder string) {
	m.closeEditor()
	m.field = field
	m.editID = id
	m.ti.SetValue(current)
	m.ti.Placeholder = placeholder
	m.ti.CursorEnd()
	m.ti.Focus()
}

func (m *Model) openPicker(field editField, id string, opts []pickOption, current string) {
	m.closeEditor()
	m.field = field
	m.editID = id
	m.options = opts
	for i, o := range opts {
		if o.value == current {
			m.pick = i
			break
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.field != fieldNone {
			return m.updateEditor(msg)
		}
		return m.updateList(msg)
	}
	// Non-key messages (cursor blink and the like) belong to the open
	// text editor, if any.
	if m.field != fieldNone && len(m.options) == 0 {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Close without side effects beyond removal.
		m.closeEditor()
		return m, nil
	case "enter":
		return m.commitEditor()
	}
	if len(m.options) > 0 {
		switch msg.String() {
		case "up", "k":
			if m.pick > 0 {
				m.pick--
			}
		case "down", "j":
			if m.pick < len(m.options)-1 {
				m.pick++
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// commitEditor applies the open editor's value to the state tree, then
// saves and lets the next View regenerate everything.
func (m Model) commitEditor() (tea.Model, tea.Cmd) {
	switch m.field {
	case fieldAdd:
		title := strings.TrimSpace(m.ti.Value())
		if title == "" {
			m.editErr = "Title cannot be empty"
			return m, nil
		}
		m.state.AddTask(title, m.filter, "", "")
		m.persist()
		m.closeEditor()
		return m, nil
	case fieldTitle, fieldNotes, fieldAssignee, fieldDate:
		t := m.state.FindTask(m.editID)
		if t == nil {
			m.closeEditor()
			return m, nil
		}
		val := m.ti.Value()
		switch m.field {
		case fieldTitle:
			title := strings.TrimSpace(val)
			if title == "" {
				m.editErr = "Title cannot be empty"
				return m, nil
			}
			t.Title = title
		case fieldNotes:
			t.Notes = val
		case fieldAssignee:
			t.Assignee = val
		case fieldDate:
			formatted, err := formatDate(val)
			if err != nil {
				m.editErr = "Use yyyy-mm-dd or dd.mm.yyyy"
				return m, nil
			}
			t.StartDate = formatted
		}
		m.persist()
		m.closeEditor()
		return m, nil
	case fieldStatus, fieldStage, fieldCategory:
		if len(m.options) == 0 {
			m.closeEditor()
			return m, nil
		}
		t := m.state.FindTask(m.editID)
		if t == nil {
			m.closeEditor()
			return m, nil
		}
		v := m.options[m.pick].value
		switch m.field {
		case fieldStatus:
			t.Status = v
		case fieldStage:
			t.Stage = v
		case fieldCategory:
			t.Category = v
		}
		m.persist()
		m.closeEditor()
		return m, nil
	}
	m.closeEditor()
	return m, nil
}

// formatDate normalizes editor input to the dd.mm.yyyy display form. Empty
// input clears the date.
func formatDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.Format("02.01.2006"), nil
	}
	if d, err := time.Parse("02.01.2006", s); err == nil {
		return d.Format("02.01.2006"), nil
	}
	return "", fmt.Errorf("bad date: %q", s)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.visible()
	clamp := func(m *Model, n int) {
		if m.cursor >= n {
			m.cursor = n - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "left", "h", "right", "l":
		ids := m.filterIDs()
		cur := 0
		for i, id := range ids {
			if id == m.filter {
				cur = i
			}
		}
		if msg.String() == "left" || msg.String() == "h" {
			cur = (cur + len(ids) - 1) % len(ids)
		} else {
			cur = (cur + 1) % len(ids)
		}
		m.filter = ids[cur]
		m.cursor = 0
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
		return m, nil

	case " ":
		if m.cursor < len(tasks) {
			m.state.ToggleTask(tasks[m.cursor].ID)
			m.persist()
			// Toggling can hide the task when completed tasks are hidden.
			clamp(&m, len(m.visible()))
		}
		return m, nil

	case "d":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			for i := range m.state.Tasks {
				if m.state.Tasks[i].ID == t.ID {
					tmp := m.state.Tasks[i]
					m.undoTask = &tmp
					m.undoIndex = i
					m.canUndo = true
					break
				}
			}
			m.state.RemoveTask(t.ID)
			m.persist()
			clamp(&m, len(m.visible()))
		}
		return m, nil

	case "u":
		if m.canUndo && m.undoTask != nil {
			idx := m.undoIndex
			if idx < 0 {
				idx = 0
			}
			if idx > len(m.state.Tasks) {
				idx = len(m.state.Tasks)
			}
			m.state.Tasks = append(m.state.Tasks[:idx],
				append([]model.Task{*m.undoTask}, m.state.Tasks[idx:]...)...)
			m.persist()
			m.canUndo = false
			m.undoTask = nil
		}
		return m, nil

	case "v":
		m.state.Settings.ShowCompleted = !m.state.Settings.ShowCompleted
		m.persist()
		clamp(&m, len(m.visible()))
		return m, nil

	case "a":
		m.openText(fieldAdd, "", "", "New task title...")
		return m, nil

	case "e":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			m.openText(fieldTitle, t.ID, t.Title, "Task title...")
		}
		return m, nil
	case "n":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			m.openText(fieldNotes, t.ID, t.Notes, "Notes...")
		}
		return m, nil
	case "o":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			m.openText(fieldAssignee, t.ID, t.Assignee, "Assignee...")
		}
		return m, nil
	case "t":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			m.openText(fieldDate, t.ID, t.StartDate, "yyyy-mm-dd")
		}
		return m, nil

	case "s":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			opts := make([]pickOption, 0, len(m.state.Statuses))
			for _, st := range m.state.Statuses {
				opts = append(opts, pickOption{value: st.ID, label: st.Name, color: st.Color})
			}
			m.openPicker(fieldStatus, t.ID, opts, t.Status)
		}
		return m, nil
	case "g":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			opts := make([]pickOption, 0, len(m.state.Stages))
			for _, sg := range m.state.Stages {
				opts = append(opts, pickOption{value: sg, label: sg})
			}
			m.openPicker(fieldStage, t.ID, opts, t.Stage)
		}
		return m, nil
	case "c":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			opts := make([]pickOption, 0, len(m.state.Categories))
			for _, c := range m.state.Categories {
				opts = append(opts, pickOption{value: c.ID, label: c.Name, color: c.Color})
			}
			m.openPicker(fieldCategory, t.ID, opts, t.Category)
		}
		return m, nil
	}
	return m, nil
}
