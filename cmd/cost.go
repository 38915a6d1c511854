package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/farcastto/costoflife/date"
	"github.com/farcastto/costoflife/renderer"
	"github.com/google/subcommands"
)

type costCmd struct {
	reportFlags
	period string
}

func (*costCmd) Name() string     { return "cost" }
func (*costCmd) Synopsis() string { return "display the cost of life" }
func (*costCmd) Usage() string {
	return `col cost [-d <date>] [-period <period>] [-json] [-path <jsonpath>]

  Displays the sum of the per diem of the expenses active on the date.
  With -period, also displays the cost of life of the calendar period
  containing the date: daily, weekly, monthly, quarterly or yearly.
`
}

func (c *costCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.StringVar(&c.period, "period", "", "Calendar period to sum the cost of life over: daily, weekly, monthly, quarterly or yearly.")
}

func (c *costCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var period date.Period
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
		period = p
	}
	l, report, status := c.report()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.period != "" {
		pc := l.CostOver(period.Range(report.On))
		report.Period = &pc
	}
	return c.print(report, renderer.CostOfLife)
}
