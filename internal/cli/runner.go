// Package cli routes subcommands. Exit codes: 0 ok, 1 error, 2 usage.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/tasklist/internal/config"
	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/store/jsonstore"
	"github.com/idilsaglam/tasklist/internal/tui"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Group bool   // plain list grouped by pending/done
	Plain bool   // non-interactive ls
	Sort  string // overrides the configured sort mode
}

// app wires the pieces a command needs: config, logger, store, and the
// loaded state tree. No globals; each Run builds one.
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	store *jsonstore.Store
	state *model.State
	sort  model.SortMode
}

func newApp(opt Options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opt.Sort != "" {
		cfg.Sort = opt.Sort
		if _, ok := map[string]bool{
			string(model.SortByStatus):   true,
			string(model.SortByPriority): true,
		}[opt.Sort]; !ok {
			return nil, fmt.Errorf("-sort: want %q or %q", model.SortByStatus, model.SortByPriority)
		}
	}
	log, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	store := jsonstore.New(cfg.DataDir)
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	// Theme follows the persisted setting; load itself stays theme-free.
	ui.SetDark(state.Settings.DarkMode)
	return &app{cfg: cfg, log: log, store: store, state: state, sort: cfg.SortMode()}, nil
}

// save persists the whole tree after a mutation.
func (a *app) save() error {
	if err := a.store.Save(a.state); err != nil {
		a.log.WithError(err).Error("save state")
		return err
	}
	return nil
}

// Run dispatches subcommands and returns an exit code.
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		PrintHelp()
		return 0
	}

	ap, err := newApp(opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	switch cmd {
	case "ls":
		return ap.doList(a, opt)

	case "add":
		return ap.doAdd(a)

	case "done":
		if len(a) != 1 {
			ui.Fail("usage: tasklist done <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("done: not a number: " + a[0])
			return 2
		}
		return ap.doToggle(n)

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: tasklist rm <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("rm: not a number: " + a[0])
			return 2
		}
		return ap.doRemove(n)

	case "cat":
		return ap.doCategory(a)
	case "status":
		return ap.doStatus(a)
	case "stage":
		return ap.doStage(a)

	case "show-completed":
		return ap.doShowCompleted(a)
	case "theme":
		return ap.doTheme(a)

	case "sync":
		return ap.doSync(a)
	case "auth":
		return ap.doAuth(a)

	case "export":
		if len(a) != 1 {
			ui.Fail("usage: tasklist export <file>")
			return 2
		}
		return ap.doExport(a[0])
	case "import":
		if len(a) != 1 {
			ui.Fail("usage: tasklist import <file>")
			return 2
		}
		return ap.doImport(a[0])
	case "clear":
		return ap.doClear()
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`tasklist - personal tasks with categories, statuses and gist sync

Usage:
  tasklist <subcommand> [args]

Subcommands:
  add [-cat id] [-status id] [-prio low|medium|high] <title...>
  ls                 Interactive view (use -plain for a printed table)
  done <index>       Toggle completion for item at 1-based index
  rm <index>         Remove item at 1-based index
  cat    <list|add <name> <#color>|rm <id>>      Manage categories
  status <list|add <name> <#color>|rm <id>>      Manage statuses
  stage  <list|add <name...>|rm <index>>         Manage stages
  show-completed <on|off>                        Show or hide done tasks
  theme <dark|light>                             Switch the color theme
  sync <set|up|down|status>                      Gist sync
  auth <login|logout|status|whoami>              Sync token handling
  export <file>      Write a full JSON backup
  import <file>      Merge a JSON backup over current state
  clear              Delete all tasks

Examples:
  tasklist add -cat shopping "Buy milk"
  tasklist ls
  tasklist sync up
`)
}

// ---------------------------------------------------
// Core subcommands
// ---------------------------------------------------

func (a *app) doAdd(args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	cat := fs.String("cat", "", "category id")
	status := fs.String("status", "", "status id")
	prio := fs.String("prio", "", "priority: low|medium|high")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	switch model.Priority(*prio) {
	case "", model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
	default:
		ui.Fail("add: bad priority: " + *prio)
		return 2
	}
	a.state.AddTask(title, *cat, *status, model.Priority(*prio))
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("added")
	return 0
}

func (a *app) doList(args []string, opt Options) int {
	// Trailing flags work too: `tasklist ls -plain` means the same as
	// `tasklist -plain ls`.
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	plain := fs.Bool("plain", false, "print a table instead of the interactive view")
	group := fs.Bool("group", false, "group the plain table by pending/done")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !opt.Plain && !*plain {
		if err := tui.Run(a.state, a.store, a.sort, a.log); err != nil {
			ui.Fail("tui: " + err.Error())
			return 1
		}
		return 0
	}
	a.printPlain(opt.Group || *group)
	return 0
}

func (a *app) printPlain(group bool) {
	t := ui.Current()
	tasks := a.state.Visible("", a.sort)

	line := func(tk model.Task) string {
		box := t.BoxUnchecked
		if tk.Done() {
			box = t.BoxChecked
		}
		st := a.state.StatusInfo(tk.Status)
		cat := a.state.CategoryName(tk.Category)
		s := fmt.Sprintf("%s %s  %s", box, ui.Sanitize(tk.Title),
			ui.C(ui.Hex(st.Color), ui.Sanitize(st.Name)))
		if cat != "" {
			s += ui.C(t.Muted, "  ["+ui.Sanitize(cat)+"]")
		}
		if tk.StartDate != "" {
			s += ui.C(t.Muted, "  "+tk.StartDate)
		}
		return s
	}

	var lines []string
	if group {
		lines = append(lines, ui.C(t.Title, "Pending"))
		for _, tk := range tasks {
			if !tk.Done() {
				lines = append(lines, line(tk))
			}
		}
		lines = append(lines, "", ui.C(t.Title, "Done"))
		for _, tk := range tasks {
			if tk.Done() {
				lines = append(lines, line(tk))
			}
		}
	} else {
		for _, tk := range tasks {
			lines = append(lines, line(tk))
		}
	}
	if len(tasks) == 0 {
		lines = append(lines, ui.C(t.Muted, "no tasks"))
	}
	done, total := a.state.Stats()
	lines = append(lines, "", fmt.Sprintf("%d/%d done  %s", done, total, ui.ProgressBar(done, total, 28)))
	ui.Panel(lines)
}

// taskAt resolves a 1-based user index against the same projection the plain
// listing prints, so `done 2` always means line 2 of `tasklist ls -plain`.
func (a *app) taskAt(userIndex int) (model.Task, bool) {
	listed := a.state.Visible("", a.sort)
	if userIndex < 1 || userIndex > len(listed) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(listed), userIndex))
		fmt.Fprintln(os.Stderr, ui.C(ui.Current().Muted, "Hint: run `tasklist ls -plain` to see valid indexes"))
		return model.Task{}, false
	}
	return listed[userIndex-1], true
}

func (a *app) doToggle(userIndex int) int {
	t, ok := a.taskAt(userIndex)
	if !ok {
		return 2
	}
	a.state.ToggleTask(t.ID)
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("toggled")
	return 0
}

func (a *app) doRemove(userIndex int) int {
	t, ok := a.taskAt(userIndex)
	if !ok {
		return 2
	}
	a.state.RemoveTask(t.ID)
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("removed")
	return 0
}
