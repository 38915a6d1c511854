// Command col computes the CostOf.Life: the daily cost of your expenses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/farcastto/costoflife/cmd"
	"github.com/farcastto/costoflife/date"
	"github.com/farcastto/costoflife/docs"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A missing .env file is fine, the environment is used as is.
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range cmd.Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		if c.Name() == "topic" {
			if topics, err := docs.All(); err == nil {
				sub.Args = predict.Set(topics)
			}
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

// flagPredictors predicts the values of the flags of f.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	predictors := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		switch fl.Name {
		case "ledger-file":
			predictors[fl.Name] = predict.Files("*.txt")
		case "currency":
			predictors[fl.Name] = predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"}
		case "d":
			predictors[fl.Name] = predict.Set{"0d", "-1d", "-1w", "-1m", "-1y"}
		case "period":
			var periods predict.Set
			for _, p := range date.Periods {
				periods = append(periods, p.String())
			}
			predictors[fl.Name] = periods
		default:
			if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				predictors[fl.Name] = predict.Nothing
			} else {
				predictors[fl.Name] = predict.Something
			}
		}
	})
	return predictors
}
