package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/farcastto/costoflife"
	"github.com/farcastto/costoflife/date"
	"github.com/farcastto/costoflife/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	yes bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an expense to the ledger" }
func (*addCmd) Usage() string {
	return `col add [-y] <expense>

  Parses the expense, shows it and asks for confirmation before adding it
  to the ledger. See 'col topic grammar' for how to write an expense.

Usage Examples:
$ col add Car 2000€ .transport 5y
$ col add -y Rent 1729€ 1m12x 010118 #home
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Add the expense without asking for confirmation.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Tell me what to add, eg: Car 2000€ .transport 5y")
		return subcommands.ExitUsageError
	}
	e, err := costoflife.Parse(strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing expense: %v\n", err)
		return subcommands.ExitUsageError
	}

	l, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.yes {
		printMarkdown(renderer.Expense(e, renderOptions()))
		if !confirm("Do you want to add it?", true) {
			fmt.Fprintln(os.Stderr, "ok, another time")
			return subcommands.ExitSuccess
		}
	}

	if err := ensureLedgerDir(c.yes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if previous, replaced := l.Insert(e); replaced {
		fmt.Fprintf(os.Stderr, "Replaced %q recorded at %s.\n", previous.Name(), previous.RecordedAt().Format(costoflife.DatetimeFormat))
	}
	if err := SaveLedger(l); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(os.Stderr, "done!")

	printMarkdown(renderer.CostOfLife(costoflife.NewReport(l, date.Today()), renderOptions()))
	return subcommands.ExitSuccess
}
