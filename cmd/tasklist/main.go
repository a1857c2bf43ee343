package main

import (
	"flag"
	"os"

	"github.com/idilsaglam/tasklist/internal/cli"
	"github.com/idilsaglam/tasklist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	plain := flag.Bool("plain", false, "print the list instead of the interactive view")
	groupPending := flag.Bool("group", false, "group plain output by pending/done")
	sortMode := flag.String("sort", "", "list ordering: status or priority")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	ui.SetColorForcing(false, *noColor)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	os.Exit(cli.Run(args, cli.Options{
		Plain: *plain,
		Group: *groupPending,
		Sort:  *sortMode,
	}))
}
