package cmd

import (
	"context"
	"flag"

	"github.com/farcastto/costoflife/renderer"
	"github.com/google/subcommands"
)

type tagsCmd struct {
	reportFlags
}

func (*tagsCmd) Name() string     { return "tags" }
func (*tagsCmd) Synopsis() string { return "display the per diem of every tag" }
func (*tagsCmd) Usage() string {
	return `col tags [-d <date>] [-json] [-path <jsonpath>]

  Displays, for every tag of the expenses active on the date, the number of
  expenses and the sum of their per diem, the most expensive first.
`
}

func (c *tagsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, report, status := c.report()
	if status != subcommands.ExitSuccess {
		return status
	}
	report.Tags = l.Tags(report.On)
	return c.print(report, renderer.Tags)
}
