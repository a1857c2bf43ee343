package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasklist/internal/model"
)

// ------- styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	filterStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeFilterStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)

	pickerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// badge renders a status name on its configured hex color.
func badge(st model.StatusOption) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(st.Color)).
		Foreground(lipgloss.Color("15")).
		Padding(0, 1).
		Render(st.Name)
}

// swatch renders a colored block for a taxonomy color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}
