package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// View regenerates the whole screen from current state. Same state, same
// markup; nothing is kept between calls.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewFilterBar())
	b.WriteString("\n\n")
	b.WriteString(m.viewTable())
	b.WriteString("\n")
	b.WriteString(m.viewStatLine())
	if m.field != fieldNone {
		b.WriteString("\n")
		b.WriteString(m.viewEditor())
	}
	b.WriteString("\n")
	b.WriteString(m.viewHelp())
	return panelString(b.String())
}

func (m Model) viewHeader() string {
	done, total := m.state.Stats()
	s := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Tasks"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), total-done,
		accentStyle.Render("Total"), total,
	)
	if m.notice != "" {
		s += "  " + errorStyle.Render(m.notice)
	}
	return s
}

// viewFilterBar renders "all" plus one button per category, each with its
// live count of not-done tasks.
func (m Model) viewFilterBar() string {
	counts := m.state.PendingCounts()
	parts := make([]string, 0, len(m.state.Categories)+1)

	style := func(active bool) lipgloss.Style {
		if active {
			return activeFilterStyle
		}
		return filterStyle
	}
	parts = append(parts, style(m.filter == "").Render(
		fmt.Sprintf("All %d", m.state.PendingTotal())))
	for _, c := range m.state.Categories {
		label := fmt.Sprintf("%s %s %d", swatch(c.Color), ui.Sanitize(c.Name), counts[c.ID])
		parts = append(parts, style(m.filter == c.ID).Render(label))
	}
	return strings.Join(parts, " ")
}

const (
	colTitle    = 28
	colStatus   = 14
	colStage    = 14
	colDate     = 10
	colNotes    = 20
	colAssignee = 12
)

func (m Model) viewTable() string {
	tasks := m.visible()
	if len(tasks) == 0 {
		return mutedStyle.Render("No tasks. Press a to add one.")
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-2s %-*s %-*s %-*s %-*s %-*s %-*s",
		"", colTitle, "Task", colStatus, "Status", colStage, "Stage",
		colDate, "Start", colNotes, "Notes", colAssignee, "Assignee")
	b.WriteString(mutedStyle.Render(header))
	b.WriteString("\n")

	for i, t := range tasks {
		b.WriteString(m.viewRow(t, i == m.cursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewRow(t model.Task, selected bool) string {
	st := m.state.StatusInfo(t.Status)

	box := boxUnchecked
	if t.Done() {
		box = boxChecked
	}

	title := pad(ui.Sanitize(t.Title), colTitle)
	if t.Done() {
		title = doneStyle.Render(title)
	}
	date := t.StartDate
	if date == "" {
		date = "dd.mm.yyyy"
	}
	notes := ui.Sanitize(t.Notes)
	if notes == "" {
		notes = "-"
	}
	assignee := ui.Sanitize(t.Assignee)
	if assignee == "" {
		assignee = "-"
	}

	// The badge carries escapes, so pad on the visible name before styling.
	name := st.Name
	if len([]rune(name)) > colStatus-2 {
		name = string([]rune(name)[:colStatus-3]) + "…"
	}
	statusCell := badge(model.StatusOption{ID: st.ID, Name: ui.Sanitize(name), Color: st.Color})
	if vis := len([]rune(name)) + 2; vis < colStatus {
		statusCell += strings.Repeat(" ", colStatus-vis)
	}

	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s %s %s %s %s %s",
		prefix,
		box,
		title,
		statusCell,
		pad(ui.Sanitize(t.Stage), colStage),
		mutedStyle.Render(pad(date, colDate)),
		mutedStyle.Render(pad(notes, colNotes)),
		pad(assignee, colAssignee),
	)
}

func (m Model) viewStatLine() string {
	done, total := m.state.Stats()
	return mutedStyle.Render(fmt.Sprintf("%d/%d done  ", done, total)) +
		ui.ProgressBar(done, total, 28)
}

func (m Model) viewEditor() string {
	if len(m.options) > 0 {
		var b strings.Builder
		title := map[editField]string{
			fieldStatus:   "Status",
			fieldStage:    "Stage",
			fieldCategory: "Category",
		}[m.field]
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
		for i, o := range m.options {
			cursor := "  "
			if i == m.pick {
				cursor = selectedStyle.Render("> ")
			}
			label := ui.Sanitize(o.label)
			if o.color != "" {
				label = swatch(o.color) + " " + label
			}
			b.WriteString(cursor + label + "\n")
		}
		return pickerStyle.Render(strings.TrimRight(b.String(), "\n"))
	}

	title := map[editField]string{
		fieldAdd:      "Add task",
		fieldTitle:    "Edit title",
		fieldNotes:    "Edit notes",
		fieldAssignee: "Edit assignee",
		fieldDate:     "Edit start date",
	}[m.field]
	if m.editErr != "" {
		title += " " + errorStyle.Render(m.editErr)
	}
	return pickerStyle.Render(title + "\n" + m.ti.View())
}

func (m Model) viewHelp() string {
	if m.field != fieldNone {
		return helpStyle.Render("enter commit • esc cancel")
	}
	return helpStyle.Render(
		"←/→ filter • ↑/↓ move • space done • a add • e title • s status • g stage • t date • n notes • o assignee • c category • d delete • u undo • v completed • q quit")
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

// pad truncates or right-pads to a fixed visible width. Styled strings are
// already sized before styling, so plain rune counting is enough here.
func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}
