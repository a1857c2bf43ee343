package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// Whole-tree backup. Export writes the entire state; import shallow-merges a
// backup over current state. The only hard gate on import is a parse check;
// schema validation is advisory and prints warnings without blocking.

func (a *app) doExport(path string) int {
	b, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	ui.OK("exported to " + path)
	return 0
}

func (a *app) doImport(path string) int {
	b, err := os.ReadFile(path)
	if err != nil {
		ui.Fail("import: " + err.Error())
		return 1
	}
	for _, w := range model.ValidateBackup(b) {
		ui.Warn(w)
	}
	// Merge into a deep copy first so a document that fails half-way
	// through decoding leaves the live tree untouched.
	cur, err := json.Marshal(a.state)
	if err != nil {
		ui.Fail("import: " + err.Error())
		return 1
	}
	merged := &model.State{}
	if err := json.Unmarshal(cur, merged); err != nil {
		ui.Fail("import: " + err.Error())
		return 1
	}
	// Fields present in the file replace, absent ones survive. That is
	// the merge contract.
	if err := json.Unmarshal(b, merged); err != nil {
		a.log.WithError(err).Error("import backup")
		ui.Fail("import failed")
		return 1
	}
	*a.state = *merged
	a.state.Normalize()
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("imported")
	return 0
}

func (a *app) doClear() int {
	fmt.Printf("Delete all %d tasks? [y/N] ", len(a.state.Tasks))
	in := bufio.NewScanner(os.Stdin)
	if !in.Scan() || strings.ToLower(strings.TrimSpace(in.Text())) != "y" {
		ui.OK("aborted")
		return 0
	}
	a.state.Tasks = []model.Task{}
	if err := a.save(); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("cleared")
	return 0
}
