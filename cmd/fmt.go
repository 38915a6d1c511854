package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/farcastto/costoflife"
	"github.com/farcastto/costoflife/date"
	"github.com/farcastto/costoflife/renderer"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `col fmt

  Validates and formats the ledger file. This command reads every expense,
  drops the lines that cannot be read, merges duplicated expenses, sorts them
  by recording time and writes them back in place.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, err := LedgerPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	l := costoflife.NewLedger()
	skipped, err := l.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: no ledger to format at %q.\n", path)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := l.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted ledger %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted ledger %q: %d expenses written, %d lines dropped.\n", path, l.Len(), skipped)

	printMarkdown(renderer.CostOfLife(costoflife.NewReport(l, date.Today()), renderOptions()))
	return subcommands.ExitSuccess
}
