package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/tasklist/internal/ui"
)

// Taxonomy management. Deleting a category or status never touches tasks
// that reference it; they keep the dangling id and render with a fallback
// label.

func (a *app) doCategory(args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: tasklist cat <list|add <name> <#color>|rm <id>>")
		return 2
	}
	switch args[0] {
	case "list":
		var lines []string
		for _, c := range a.state.Categories {
			lines = append(lines, fmt.Sprintf("%s %s  %s", ui.Swatch(c.Color),
				ui.Sanitize(c.Name), ui.C(ui.Current().Muted, c.ID)))
		}
		if len(lines) == 0 {
			lines = append(lines, ui.C(ui.Current().Muted, "no categories"))
		}
		ui.Panel(lines)
		return 0
	case "add":
		if len(args) < 3 {
			ui.Fail("usage: tasklist cat add <name> <#color>")
			return 2
		}
		name := strings.Join(args[1:len(args)-1], " ")
		color := args[len(args)-1]
		if strings.TrimSpace(name) == "" {
			ui.Fail("cat add: empty name")
			return 2
		}
		c := a.state.AddCategory(name, color)
		if err := a.save(); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
		ui.OK("added category " + c.ID)
		return 0
	case "rm":
		if len(args) != 2 {
			ui.Fail("usage: tasklist cat rm <id>")
			return 2
		}
		if !a.state.RemoveCategory(args[1]) {
			ui.Fail("cat rm: no such category: " + args[1])
			return 2
		}
		if err := a.save(); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
		ui.OK("removed")
		return 0
	}
	ui.Fail("usage: tasklist cat <list|add <name> <#color>|rm <id>>")
	return 2
}

func (a *app) doStatus(args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: tasklist status <list|add <name> <#color>|rm <id>>")
		return 2
	}
	switch args[0] {
	case "list":
		var lines []string
		for _, s := range a.state.Statuses {
			lines = append(lines, fmt.Sprintf("%s %s  %s", ui.Swatch(s.Color),
				ui.Sanitize(s.Name), ui.C(ui.Current().Muted, s.ID)))
		}
		ui.Panel(lines)
		return 0
	case "add":
		if len(args) < 3 {
			ui.Fail("usage: tasklist status add <name> <#color>")
			return 2
		}
		name := strings.Join(args[1:len(args)-1], " ")
		color := args[len(args)-1]
		if strings.TrimSpace(name) == "" {
			ui.Fail("status add: empty name")
			return 2
		}
		s := a.state.AddStatus(name, color)
		if err := a.save(); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
		ui.OK("added status " + s.ID)
		return 0
	case "rm":
		if len(args) != 2 {
			ui.Fail("usage: tasklist status rm <id>")
			return 2
		}
		if !a.state.RemoveStatus(args[1]) {
			ui.Fail("status rm: no such status: " + args[1])
			return 2
		}
		if err := a.save(); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
		ui.OK("removed")
		return 0
	}
	ui.Fail("usage: tasklist status <list|add <name> <#color>|rm <id>>")
	return 2
}

func (a *app) doStage(args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: tasklist stage <list|add <name...>|rm <index>>")
		return 2
	}
	switch args[0] {
	case "list":
		var lines []string
		for i, s := range a.state.Stages {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, ui.Sanitize(s)))
		}
		ui.Panel(lines)
		return 0
	case "add":
		name := strings.TrimSpace(strings.Join(args[1:], " "))
		if name == "" {
			ui.Fail("usage: tasklist stage add <name...>")
			return 2
		}
		a.state.AddStage(name)
		if err := a.save(); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
		ui.OK("added stage")
		return 0
	case "rm":
		if len(args) != 2 {
			ui.Fail("usage: tasklist stage rm <index>")
			return 2
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			ui.Fail("stage rm: not a number: " + args[1])
			return 2
		}
		if !a.state.RemoveStage(n - 1) {
			ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(a.state.Stages), n))
			return 2
		}
		if err := a.save(); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
		ui.OK("removed")
		return 0
	}
	ui.Fail("usage: tasklist stage <list|add <name...>|rm <index>>")
	return 2
}

func (a *app) doShowCompleted(args []string) int {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		ui.Fail("usage: tasklist show-completed <on|off>")
		return 2
	}
	a.state.Settings.ShowCompleted = args[0] == "on"
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("show-completed " + args[0])
	return 0
}

func (a *app) doTheme(args []string) int {
	if len(args) != 1 || (args[0] != "dark" && args[0] != "light") {
		ui.Fail("usage: tasklist theme <dark|light>")
		return 2
	}
	a.state.Settings.DarkMode = args[0] == "dark"
	ui.SetDark(a.state.Settings.DarkMode)
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("theme " + args[0])
	return 0
}
