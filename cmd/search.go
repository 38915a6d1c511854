package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/farcastto/costoflife/renderer"
	"github.com/google/subcommands"
)

type searchCmd struct {
	reportFlags
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search expenses by name or tag" }
func (*searchCmd) Usage() string {
	return `col search [-d <date>] [-json] [-path <jsonpath>] <pattern>

  Lists every expense, active or not, whose name or tags contain every word
  of the pattern, ignoring case. The progress is computed on the date.

Usage Examples:
$ col search internet
$ col search '#home' rent
`
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pattern := strings.TrimSpace(strings.Join(f.Args(), " "))
	if pattern == "" {
		fmt.Fprintln(os.Stderr, "Tell me what to search, eg: internet")
		return subcommands.ExitUsageError
	}
	l, report, status := c.report()
	if status != subcommands.ExitSuccess {
		return status
	}
	report.Search = l.Search(pattern, report.On)
	return c.print(report, renderer.Search)
}
