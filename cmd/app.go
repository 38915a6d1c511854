// Package cmd implements the col command line application.
package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/farcastto/costoflife"
	"github.com/farcastto/costoflife/date"
	"github.com/farcastto/costoflife/renderer"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

// Commands lists the col subcommands.
var Commands = []subcommands.Command{
	&addCmd{},
	&summaryCmd{},
	&tagsCmd{},
	&searchCmd{},
	&costCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		group := "reports"
		switch cmd.Name() {
		case "add", "fmt":
			group = "ledger"
		case "topic":
			group = "help"
		}
		c.Register(cmd, group)
	}
}

// Environment variables used as flag defaults.
const (
	LedgerEnv   = "COSTOFLIFE_LEDGER"
	CurrencyEnv = "COSTOFLIFE_CURRENCY"
)

// ledgerFilename is the default ledger file name in the user config folder.
const ledgerFilename = "costoflife.data.txt"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile   = flag.String("ledger-file", "", "Path to the ledger file. Defaults to $"+LedgerEnv+" or costoflife/"+ledgerFilename+" in the user config folder.")
	currencyCode = flag.String("currency", "", "ISO 4217 code of the currency used to display amounts. Defaults to $"+CurrencyEnv+" or EUR.")
	verbose      = flag.Bool("v", false, "Verbose logging.")
	rawMarkdown  = flag.Bool("markdown", false, "Print raw markdown instead of rendering it for the terminal.")
)

// I/O of the commands.
var (
	stdout     io.Writer = os.Stdout
	stdin      io.Reader = os.Stdin
	isTerminal           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// Setup configures logging and validates the global flags. It must be called after the flags are parsed.
func Setup() error {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if money.GetCurrency(Currency()) == nil {
		return fmt.Errorf("unknown currency %q", Currency())
	}
	return nil
}

// LedgerPath returns the path of the ledger file.
func LedgerPath() (string, error) {
	if *ledgerFile != "" {
		return *ledgerFile, nil
	}
	if p := os.Getenv(LedgerEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot retrieve the config folder, use -ledger-file: %w", err)
	}
	return filepath.Join(dir, "costoflife", ledgerFilename), nil
}

// Currency returns the ISO code of the display currency.
func Currency() string {
	if *currencyCode != "" {
		return strings.ToUpper(*currencyCode)
	}
	if c := os.Getenv(CurrencyEnv); c != "" {
		return strings.ToUpper(c)
	}
	return renderer.DefaultCurrency
}

func renderOptions() renderer.Options {
	return renderer.Options{Currency: Currency()}
}

// LoadLedger loads the app ledger. A missing ledger file is an empty ledger.
func LoadLedger() (*costoflife.Ledger, error) {
	path, err := LedgerPath()
	if err != nil {
		return nil, err
	}
	l := costoflife.NewLedger()
	skipped, err := l.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("ledger does not exist, starting with an empty ledger", "file", path)
		return l, nil
	}
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d unreadable lines skipped in %q, run 'col fmt' to remove them.\n", skipped, path)
	}
	return l, nil
}

// SaveLedger saves the ledger into the app ledger file.
func SaveLedger(l *costoflife.Ledger) error {
	path, err := LedgerPath()
	if err != nil {
		return err
	}
	return l.Save(path)
}

// ensureLedgerDir creates the ledger folder when it is missing, after confirmation unless yes is set.
func ensureLedgerDir(yes bool) error {
	path, err := LedgerPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if !yes && !confirm("The CostOf.Life data folder does not exist, can I create it?", true) {
		return fmt.Errorf("data folder %q does not exist", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating folder %q: %w", dir, err)
	}
	fmt.Fprintf(os.Stderr, "data folder created at %q\n", dir)
	return nil
}

// confirm asks a yes/no question on the terminal. When stdin is not a
// terminal the answer is no.
func confirm(question string, def bool) bool {
	if !isTerminal() {
		fmt.Fprintf(os.Stderr, "%s stdin is not a terminal, use -y to answer yes.\n", question)
		return false
	}
	choices := "[Y/n]"
	if !def {
		choices = "[y/N]"
	}
	fmt.Fprintf(os.Stderr, "%s %s ", question, choices)
	answer, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// parseDate parses the -d flag of a command.
func parseDate(s string) (date.Date, error) {
	on, err := date.ParseUser(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("%w: %w", costoflife.ErrInvalidDateFormat, err)
	}
	return on, nil
}

// printMarkdown renders markdown for the terminal, or prints it raw when rendering is not possible.
func printMarkdown(md string) {
	if !*rawMarkdown {
		out, err := renderMarkdown(md)
		if err == nil {
			fmt.Fprint(stdout, out)
			return
		}
		slog.Debug("cannot render markdown", "error", err)
	}
	fmt.Fprint(stdout, md)
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// printJSON prints v as indented JSON. A non empty path is a JSONPath
// expression selecting the part of v to print.
func printJSON(v any, path string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any = json.RawMessage(b)
	if path != "" {
		var obj any
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			return err
		}
		doc, err = jsonpath.Get(path, obj)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", path, err)
		}
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}

// reportFlags are the flags shared by the report commands.
type reportFlags struct {
	date string
	json bool
	path string
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.date, "d", "0d", "Date of the report. See 'col topic commands' for supported date formats.")
	f.BoolVar(&r.json, "json", false, "Print the report as JSON.")
	f.StringVar(&r.path, "path", "", "JSONPath expression selecting a part of the JSON report, implies -json.")
}

// report loads the ledger and prepares a report for the date flag.
func (r *reportFlags) report() (*costoflife.Ledger, *costoflife.Report, subcommands.ExitStatus) {
	on, err := parseDate(r.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return nil, nil, subcommands.ExitUsageError
	}
	l, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	return l, costoflife.NewReport(l, on), subcommands.ExitSuccess
}

// print prints the report as JSON when requested, as markdown otherwise.
func (r *reportFlags) print(report *costoflife.Report, md func(*costoflife.Report, renderer.Options) string) subcommands.ExitStatus {
	if r.json || r.path != "" {
		if err := printJSON(report, r.path); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing JSON: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(md(report, renderOptions()))
	return subcommands.ExitSuccess
}
