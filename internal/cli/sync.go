package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/idilsaglam/tasklist/internal/auth"
	"github.com/idilsaglam/tasklist/internal/gist"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// Sync against the gist slot. Last writer wins, no retry; any failure
// collapses into one generic notice with the detail in the log.

func (a *app) doSync(args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: tasklist sync <set|up|down|status>")
		return 2
	}
	switch args[0] {
	case "set":
		return a.doSyncSet()
	case "up":
		return a.doSyncUp()
	case "down":
		return a.doSyncDown()
	case "status":
		return a.doSyncStatus()
	}
	ui.Fail("usage: tasklist sync <set|up|down|status>")
	return 2
}

func (a *app) doSyncSet() int {
	in := bufio.NewScanner(os.Stdin)
	fmt.Print("Token (empty keeps current): ")
	if in.Scan() {
		if t := strings.TrimSpace(in.Text()); t != "" {
			a.state.Token = auth.StripBearer(t)
		}
	}
	fmt.Print("Gist id (empty keeps current): ")
	if in.Scan() {
		if g := strings.TrimSpace(in.Text()); g != "" {
			a.state.GistID = g
		}
	}
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("sync settings saved")
	return 0
}

func (a *app) doSyncUp() int {
	token, _ := auth.Resolve(a.state)
	if token == "" {
		ui.Fail("no token configured. Run `tasklist auth login` or set " + auth.EnvToken)
		return 2
	}
	client := gist.New(token)
	id, err := client.Upload(context.Background(), gist.DocumentFromState(a.state), a.state.GistID)
	if err != nil {
		a.log.WithError(err).Error("sync upload")
		ui.Fail("sync failed")
		return 1
	}
	if id != a.state.GistID {
		// First upload created the gist; remember the id for updates.
		a.state.GistID = id
		if err := a.save(); err != nil {
			ui.Fail("save: " + err.Error())
			return 1
		}
	}
	ui.OK("uploaded")
	return 0
}

func (a *app) doSyncDown() int {
	token, _ := auth.Resolve(a.state)
	if token == "" || a.state.GistID == "" {
		// Rejected before any network call; local state is untouched.
		ui.Fail("configure sync first: run `tasklist sync set`")
		return 2
	}
	client := gist.New(token)
	doc, err := client.Download(context.Background(), a.state.GistID)
	if err != nil {
		a.log.WithError(err).Error("sync download")
		ui.Fail("sync failed")
		return 1
	}
	doc.Apply(a.state)
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("downloaded")
	return 0
}

func (a *app) doSyncStatus() int {
	token, source := auth.Resolve(a.state)
	t := ui.Current()
	lines := []string{}
	if token == "" {
		lines = append(lines, ui.C(t.Muted, "token: not configured"))
	} else {
		lines = append(lines, "token: configured ("+source+")")
	}
	if a.state.GistID == "" {
		lines = append(lines, ui.C(t.Muted, "gist:  not configured"))
	} else {
		lines = append(lines, "gist:  "+a.state.GistID)
	}
	ui.Panel(lines)
	return 0
}

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func (a *app) doAuth(args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: tasklist auth <login|logout|status|whoami>")
		return 2
	}
	switch args[0] {
	case "login":
		return a.doAuthLogin()
	case "logout":
		return a.doAuthLogout()
	case "status":
		return a.doAuthStatus()
	case "whoami":
		return a.doAuthWhoAmI()
	}
	ui.Fail("usage: tasklist auth <login|logout|status|whoami>")
	return 2
}

func (a *app) doAuthLogin() int {
	fmt.Print("Paste your token: ")
	in := bufio.NewScanner(os.Stdin)
	if !in.Scan() {
		ui.Fail("read token: " + fmt.Sprint(in.Err()))
		return 1
	}
	token := auth.StripBearer(strings.TrimSpace(in.Text()))
	if token == "" {
		ui.Fail("empty token")
		return 2
	}
	a.state.Token = token
	if err := a.save(); err != nil {
		ui.Fail("save token: " + err.Error())
		return 1
	}
	ui.OK("logged in")
	return 0
}

func (a *app) doAuthLogout() int {
	if _, source := auth.Resolve(a.state); source == "env" {
		ui.OK("token is provided by " + auth.EnvToken + " env var (nothing to delete)")
		return 0
	}
	a.state.Token = ""
	if err := a.save(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func (a *app) doAuthStatus() int {
	token, source := auth.Resolve(a.state)
	if token == "" {
		fmt.Println(ui.C(ui.Current().Muted, "not logged in"))
		fmt.Println("Run: tasklist auth login")
		return 0
	}
	fmt.Printf("source: %s\n", source)
	fmt.Println("env override: " + auth.EnvToken)
	return 0
}

func (a *app) doAuthWhoAmI() int {
	token, source := auth.Resolve(a.state)
	if token == "" {
		ui.Fail("not logged in. Run: tasklist auth login")
		return 2
	}
	fmt.Println(auth.Describe(token))
	fmt.Println("source:", source)
	return 0
}
