package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/farcastto/costoflife"
	"github.com/google/subcommands"
)

const testLedgerContent = `2021-01-03T19:36:43Z::2021-04-21::Mobile internet 9.99€ 210421 1w4x #internet
2021-01-02T08:00:00Z::2021-01-01::Rent 1729€ 1m12x 010121 #home
`

// Helper function to create a temporary ledger file
func createTempLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "costoflife.data.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp ledger: %v", err)
	}
	return path
}

// testApp overrides the app globals for the duration of the test and
// returns the buffer receiving the standard output.
func testApp(t *testing.T, ledger string) *bytes.Buffer {
	t.Helper()
	oldLedger, oldCurrency, oldRaw := *ledgerFile, *currencyCode, *rawMarkdown
	oldStdout, oldStdin, oldIsTerminal := stdout, stdin, isTerminal
	t.Cleanup(func() {
		*ledgerFile, *currencyCode, *rawMarkdown = oldLedger, oldCurrency, oldRaw
		stdout, stdin, isTerminal = oldStdout, oldStdin, oldIsTerminal
	})

	var out bytes.Buffer
	*ledgerFile = ledger
	*currencyCode = ""
	*rawMarkdown = true
	stdout = &out
	stdin = strings.NewReader("")
	isTerminal = func() bool { return false }
	return &out
}

// run parses args and executes the command.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("failed to parse %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func readLedger(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read ledger: %v", err)
	}
	return string(b)
}

func TestAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "costoflife.data.txt")
	out := testApp(t, path)

	if status := run(t, &addCmd{}, "-y", "Rent", "1729€", "1m12x", "010118", "#home"); status != subcommands.ExitSuccess {
		t.Fatalf("add returned %v, want ExitSuccess", status)
	}
	got := readLedger(t, path)
	if !strings.HasSuffix(got, "::2018-01-01::Rent 1729€ 1m12x 010118 #home\n") || strings.Count(got, "\n") != 1 {
		t.Errorf("ledger = %q, want a single Rent line", got)
	}
	if !strings.Contains(out.String(), "Today CostOf.Life is:") {
		t.Errorf("add output = %q, want the cost of life", out.String())
	}

	// adding the same expense again replaces it.
	if status := run(t, &addCmd{}, "-y", "Rent 1729.00€ 010118 1m12x #rent"); status != subcommands.ExitSuccess {
		t.Fatalf("add returned %v, want ExitSuccess", status)
	}
	got = readLedger(t, path)
	if strings.Count(got, "\n") != 1 || !strings.Contains(got, "#rent") {
		t.Errorf("ledger = %q, want the Rent line to be replaced", got)
	}
}

func TestAdd_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		terminal bool
		answer   string
		added    bool
	}{
		{"default yes", true, "\n", true},
		{"yes", true, "y\n", true},
		{"no", true, "n\n", false},
		{"not a terminal", false, "y\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempLedger(t, "")
			out := testApp(t, path)
			isTerminal = func() bool { return tt.terminal }
			stdin = strings.NewReader(tt.answer)

			if status := run(t, &addCmd{}, "Pizza", "14€", "#food"); status != subcommands.ExitSuccess {
				t.Fatalf("add returned %v, want ExitSuccess", status)
			}
			if !strings.Contains(out.String(), "| Name | Pizza |") {
				t.Errorf("add output = %q, want the expense details", out.String())
			}
			if added := strings.Contains(readLedger(t, path), "Pizza"); added != tt.added {
				t.Errorf("expense added = %v, want %v", added, tt.added)
			}
		})
	}
}

func TestAdd_Invalid(t *testing.T) {
	path := createTempLedger(t, "")
	testApp(t, path)
	for _, args := range [][]string{
		{},
		{"-y", "Coffee"},
		{"-y", "Coffee", "2€", "310221"},
	} {
		if status := run(t, &addCmd{}, args...); status != subcommands.ExitUsageError {
			t.Errorf("add %v returned %v, want ExitUsageError", args, status)
		}
	}
	if got := readLedger(t, path); got != "" {
		t.Errorf("ledger = %q, want empty", got)
	}
}

func TestSummary_JSON(t *testing.T) {
	out := testApp(t, createTempLedger(t, testLedgerContent))

	if status := run(t, &summaryCmd{}, "-d", "2021-05-05", "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("summary returned %v, want ExitSuccess", status)
	}
	var report struct {
		On         string  `json:"on"`
		CostOfLife float64 `json:"costOfLife"`
		Summary    []struct {
			Name string `json:"name"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("summary output is not JSON: %v\n%s", err, out.String())
	}
	if report.On != "2021-05-05" || report.CostOfLife != 58.27 {
		t.Errorf("summary = %+v, want cost of life 58.27 on 2021-05-05", report)
	}
	if len(report.Summary) != 2 || report.Summary[0].Name != "Mobile internet" || report.Summary[1].Name != "Rent" {
		t.Errorf("summary items = %+v, want Mobile internet then Rent", report.Summary)
	}
}

func TestSummary_Path(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"$.costOfLife", "58.27"},
		{"$.summary[0].name", `"Mobile internet"`},
		{"$.summary[1].total", "20748"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out := testApp(t, createTempLedger(t, testLedgerContent))
			if status := run(t, &summaryCmd{}, "-d", "05.05.21", "-path", tt.path); status != subcommands.ExitSuccess {
				t.Fatalf("summary returned %v, want ExitSuccess", status)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("summary -path %s = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestSummary_InvalidDate(t *testing.T) {
	testApp(t, createTempLedger(t, testLedgerContent))
	if status := run(t, &summaryCmd{}, "-d", "yesterday"); status != subcommands.ExitUsageError {
		t.Errorf("summary returned %v, want ExitUsageError", status)
	}
	if _, err := parseDate("31.02.21"); !errors.Is(err, costoflife.ErrInvalidDateFormat) {
		t.Errorf("parseDate() error = %v, want %v", err, costoflife.ErrInvalidDateFormat)
	}
}

func TestTags(t *testing.T) {
	out := testApp(t, createTempLedger(t, testLedgerContent))
	if status := run(t, &tagsCmd{}, "-d", "050521"); status != subcommands.ExitSuccess {
		t.Fatalf("tags returned %v, want ExitSuccess", status)
	}
	got := out.String()
	home := strings.Index(got, "| home | 1 | €56.84 |")
	internet := strings.Index(got, "| internet | 1 | €1.43 |")
	if home < 0 || internet < 0 || home > internet {
		t.Errorf("tags output =\n%s\nwant home before internet", got)
	}
	if !strings.Contains(got, "On 2021-05-05 CostOf.Life is: **€58.27**") {
		t.Errorf("tags output =\n%s\nwant the cost of life", got)
	}
}

func TestSearch(t *testing.T) {
	out := testApp(t, createTempLedger(t, testLedgerContent))
	if status := run(t, &searchCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("search without pattern returned %v, want ExitUsageError", status)
	}
	if status := run(t, &searchCmd{}, "-path", "$.search[*].name", "#HOME"); status != subcommands.ExitSuccess {
		t.Fatalf("search returned %v, want ExitSuccess", status)
	}
	var names []string
	if err := json.Unmarshal(out.Bytes(), &names); err != nil {
		t.Fatalf("search output is not a JSON list: %v\n%s", err, out.String())
	}
	if len(names) != 1 || names[0] != "Rent" {
		t.Errorf("search = %v, want [Rent]", names)
	}
}

func TestCost(t *testing.T) {
	out := testApp(t, createTempLedger(t, testLedgerContent))
	*currencyCode = "usd"
	if status := run(t, &costCmd{}, "-d", "2021-05-05"); status != subcommands.ExitSuccess {
		t.Fatalf("cost returned %v, want ExitSuccess", status)
	}
	if got, want := strings.TrimSpace(out.String()), "On 2021-05-05 CostOf.Life is: **$58.27**"; got != want {
		t.Errorf("cost = %q, want %q", got, want)
	}
}

func TestFmt(t *testing.T) {
	content := `2021-01-03T19:36:43Z::2021-04-21::Mobile internet 9.99€ 210421 1w4x #internet
not an expense
2021-01-02T08:00:00Z::2021-01-01::Rent 1729€ 1m12x 010121 #home
2021-02-03T00:00:00Z::2021-04-21::Mobile internet 9.99€ 210421 1w4x #mobile
`
	want := `2021-01-02T08:00:00Z::2021-01-01::Rent 1729€ 1m12x 010121 #home
2021-02-03T00:00:00Z::2021-04-21::Mobile internet 9.99€ 210421 1w4x #mobile
`
	path := createTempLedger(t, content)
	testApp(t, path)

	if status := run(t, &fmtCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("fmt returned %v, want ExitSuccess", status)
	}
	if got := readLedger(t, path); got != want {
		t.Errorf("fmt ledger =\n%s\nwant\n%s", got, want)
	}

	// a missing ledger is not an error.
	*ledgerFile = filepath.Join(t.TempDir(), "missing.txt")
	if status := run(t, &fmtCmd{}); status != subcommands.ExitSuccess {
		t.Errorf("fmt of a missing ledger returned %v, want ExitSuccess", status)
	}
}

func TestTopic(t *testing.T) {
	out := testApp(t, "")
	if status := run(t, &topicCmd{}, "grammar"); status != subcommands.ExitSuccess {
		t.Fatalf("topic returned %v, want ExitSuccess", status)
	}
	if !strings.Contains(out.String(), "# Writing an expense") {
		t.Errorf("topic output = %q, want the grammar topic", out.String())
	}
	if status := run(t, &topicCmd{}, "missing"); status != subcommands.ExitFailure {
		t.Errorf("topic missing returned %v, want ExitFailure", status)
	}
}

func TestLedgerPath(t *testing.T) {
	testApp(t, "")
	t.Setenv(LedgerEnv, "/tmp/from-env.txt")
	if got, err := LedgerPath(); err != nil || got != "/tmp/from-env.txt" {
		t.Errorf("LedgerPath() = %q, %v, want the environment value", got, err)
	}
	*ledgerFile = "/tmp/from-flag.txt"
	if got, err := LedgerPath(); err != nil || got != "/tmp/from-flag.txt" {
		t.Errorf("LedgerPath() = %q, %v, want the flag value", got, err)
	}
}

func TestSetup(t *testing.T) {
	testApp(t, "")
	t.Setenv(CurrencyEnv, "gbp")
	if err := Setup(); err != nil || Currency() != "GBP" {
		t.Errorf("Setup() = %v with currency %q, want GBP", err, Currency())
	}
	*currencyCode = "XYZ"
	if err := Setup(); err == nil {
		t.Errorf("Setup() with an unknown currency succeeded, want an error")
	}
}

func TestCost_Period(t *testing.T) {
	out := testApp(t, createTempLedger(t, testLedgerContent))
	if status := run(t, &costCmd{}, "-d", "2021-05-05", "-period", "month", "-path", "$.period.total"); status != subcommands.ExitSuccess {
		t.Fatalf("cost returned %v, want ExitSuccess", status)
	}
	if got := strings.TrimSpace(out.String()); got != "1787.85" {
		t.Errorf("cost -period month = %s, want 1787.85", got)
	}
	if status := run(t, &costCmd{}, "-period", "decade"); status != subcommands.ExitUsageError {
		t.Errorf("cost -period decade returned %v, want ExitUsageError", status)
	}
}
