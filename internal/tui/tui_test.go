package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/store/jsonstore"
)

func newTestModel(t *testing.T) (Model, *jsonstore.Store) {
	t.Helper()
	store := jsonstore.New(t.TempDir())
	st := model.Default()
	log, err := logging.New("", logrus.InfoLevel.String())
	if err != nil {
		t.Fatal(err)
	}
	return New(st, store, model.SortByStatus, log), store
}

func key(s string) tea.KeyMsg {
	if s == "space" {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestAddTaskCommitsAndPersists(t *testing.T) {
	m, store := newTestModel(t)
	m = press(m, "a")
	if m.field != fieldAdd {
		t.Fatal("add editor did not open")
	}
	m = typeText(m, "Buy milk")
	m = press(m, "enter")

	if m.field != fieldNone {
		t.Fatal("editor still open after commit")
	}
	if len(m.state.Tasks) != 1 || m.state.Tasks[0].Title != "Buy milk" {
		t.Fatalf("tasks: %+v", m.state.Tasks)
	}
	// mutation persisted before the next render
	st, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Tasks) != 1 || st.Tasks[0].Title != "Buy milk" {
		t.Fatalf("persisted tasks: %+v", st.Tasks)
	}
}

func TestAddEmptyTitleBlocked(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "a", "enter")
	if m.field != fieldAdd {
		t.Fatal("editor closed despite empty title")
	}
	if m.editErr == "" {
		t.Fatal("no validation message")
	}
	if len(m.state.Tasks) != 0 {
		t.Fatal("empty task was added")
	}
}

func TestEscClosesEditorWithoutSideEffects(t *testing.T) {
	m, _ := newTestModel(t)
	m.state.AddTask("Buy milk", "shopping", "", "")
	m = press(m, "e")
	m = typeText(m, " changed")
	m = press(m, "esc")
	if m.field != fieldNone {
		t.Fatal("editor still open")
	}
	if m.state.Tasks[0].Title != "Buy milk" {
		t.Fatalf("esc committed an edit: %q", m.state.Tasks[0].Title)
	}
}

func TestOnlyOneEditorOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m.state.AddTask("Buy milk", "shopping", "", "")
	m = press(m, "n") // notes editor
	if m.field != fieldNotes {
		t.Fatal("notes editor did not open")
	}
	m = press(m, "esc", "s") // then status picker
	if m.field != fieldStatus {
		t.Fatal("status picker did not open")
	}
	if len(m.options) != len(m.state.Statuses) {
		t.Fatalf("options: got %d, want %d", len(m.options), len(m.state.Statuses))
	}
}

func TestStatusPickerCommits(t *testing.T) {
	m, _ := newTestModel(t)
	task := m.state.AddTask("Buy milk", "shopping", "in-progress", "")
	m = press(m, "s", "down", "enter")
	got := m.state.FindTask(task.ID).Status
	if got != m.state.Statuses[1].ID {
		t.Fatalf("status: got %q, want %q", got, m.state.Statuses[1].ID)
	}
}

func TestDateEditorReformatsISO(t *testing.T) {
	m, _ := newTestModel(t)
	task := m.state.AddTask("Buy milk", "shopping", "", "")
	m = press(m, "t")
	m = typeText(m, "2026-08-30")
	m = press(m, "enter")
	if got := m.state.FindTask(task.ID).StartDate; got != "30.08.2026" {
		t.Fatalf("StartDate: got %q, want 30.08.2026", got)
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, want string
		ok       bool
	}{
		{"2026-08-30", "30.08.2026", true},
		{"30.08.2026", "30.08.2026", true},
		{"", "", true},
		{"tomorrow", "", false},
	}
	for _, c := range cases {
		got, err := formatDate(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("formatDate(%q): got %q/%v", c.in, got, err)
		}
		if !c.ok && err == nil {
			t.Errorf("formatDate(%q): expected error", c.in)
		}
	}
}

func TestFilterCycling(t *testing.T) {
	m, _ := newTestModel(t)
	m.state.AddTask("milk", "shopping", "", "")
	m.state.AddTask("report", "work", "", "")

	m = press(m, "right")
	if m.filter != m.state.Categories[0].ID {
		t.Fatalf("filter after right: %q", m.filter)
	}
	// wraps back to "all"
	for range m.state.Categories {
		m = press(m, "right")
	}
	if m.filter != "" {
		t.Fatalf("filter after full cycle: %q", m.filter)
	}
	m = press(m, "left")
	if m.filter != m.state.Categories[len(m.state.Categories)-1].ID {
		t.Fatalf("filter after left: %q", m.filter)
	}
}

func TestViewShowsCountsAndTask(t *testing.T) {
	m, _ := newTestModel(t)
	m.state.AddTask("Buy milk", "shopping", "", "")
	view := m.View()
	if !strings.Contains(view, "Buy milk") {
		t.Error("task title missing from view")
	}
	if !strings.Contains(view, "All 1") {
		t.Error("all-count missing from view")
	}
	if !strings.Contains(view, "Shopping 1") {
		t.Error("category count missing from view")
	}
}

func TestViewIdempotent(t *testing.T) {
	m, _ := newTestModel(t)
	m.state.AddTask("Buy milk", "shopping", "", "")
	if m.View() != m.View() {
		t.Fatal("two renders of the same state differ")
	}
}

func TestDeleteThenUndo(t *testing.T) {
	m, store := newTestModel(t)
	m.state.AddTask("Buy milk", "shopping", "", "")
	m = press(m, "d")
	if len(m.state.Tasks) != 0 {
		t.Fatal("task not deleted")
	}
	m = press(m, "u")
	if len(m.state.Tasks) != 1 || m.state.Tasks[0].Title != "Buy milk" {
		t.Fatalf("undo: %+v", m.state.Tasks)
	}
	st, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Tasks) != 1 {
		t.Fatal("undo not persisted")
	}
}

func TestToggleClampsCursor(t *testing.T) {
	m, _ := newTestModel(t)
	m.state.Settings.ShowCompleted = false
	m.state.AddTask("first", "work", "", "")
	m.state.AddTask("second", "work", "", "")

	m = press(m, "down", "space")
	if got := len(m.visible()); got != 1 {
		t.Fatalf("visible: got %d, want 1", got)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor past end after toggle: %d", m.cursor)
	}
}

func TestToggleHidesWhenCompletedHidden(t *testing.T) {
	m, _ := newTestModel(t)
	m.state.Settings.ShowCompleted = false
	m.state.AddTask("Buy milk", "shopping", "", "")
	m = press(m, "space")
	if got := len(m.visible()); got != 0 {
		t.Fatalf("visible: got %d, want 0", got)
	}
	if len(m.state.Tasks) != 1 {
		t.Fatal("toggle deleted the task")
	}
}
