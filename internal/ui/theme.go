package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	Dark                                          bool
}

var current = themeLight

// SetTheme selects the palette. "dark" and "light" follow the state's
// darkMode setting; "mono" disables color entirely for dumb terminals.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "dark":
		current = themeDark
	case "mono":
		disableColor = true
		current = themeMono
	default:
		current = themeLight
	}
}

// SetDark picks between the dark and light palettes, unless mono is active.
func SetDark(dark bool) {
	if disableColor {
		return
	}
	if dark {
		current = themeDark
	} else {
		current = themeLight
	}
}

var themeLight = Theme{
	Title: bold, Muted: fgGray, Accent: fgBlue,
	Success: fgGreen, Error: fgRed, Pending: fgYellow,
	BoxUnchecked: "☐", BoxChecked: "☑",
	CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
	H: "─", V: "│",
}

var themeDark = Theme{
	Title: bold + "\033[97m", Muted: fgGray, Accent: "\033[96m",
	Success: "\033[92m", Error: "\033[91m", Pending: "\033[93m",
	BoxUnchecked: "◻", BoxChecked: "◼",
	CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
	H: "─", V: "│",
	Dark: true,
}

var themeMono = Theme{
	BoxUnchecked: "[ ]", BoxChecked: "[x]",
	CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
	H: "-", V: "|",
}

// Current exposes what renderers need.
func Current() Theme { return current }
