package cmd

import (
	"context"
	"flag"

	"github.com/farcastto/costoflife/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	reportFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the active expenses and their progress" }
func (*summaryCmd) Usage() string {
	return `col summary [-d <date>] [-json] [-path <jsonpath>]

  Displays the expenses active on the date, the closest to their end first,
  with their total price, their per diem and their progress.
`
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, report, status := c.report()
	if status != subcommands.ExitSuccess {
		return status
	}
	report.Summary = l.Summary(report.On)
	return c.print(report, renderer.Summary)
}
