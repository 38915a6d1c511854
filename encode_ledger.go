package costoflife

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/farcastto/costoflife/date"
)

// DatetimeFormat is the format of the recording time in the ledger file.
const DatetimeFormat = time.RFC3339Nano

// lineSeparator separates the fields of a ledger line.
const lineSeparator = "::"

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Line returns the ledger line of the expense, terminated by a newline:
//
//	2021-01-03T19:36:43.976697738Z::2021-04-21::Mobile internet 9.99€ 210421 1w4x #internet
func (e *Expense) Line() string {
	var b strings.Builder
	b.WriteString(e.recordedAt.Format(DatetimeFormat))
	b.WriteString(lineSeparator)
	b.WriteString(e.startsOn.String())
	b.WriteString(lineSeparator)
	b.WriteString(newlines.Replace(e.Text()))
	b.WriteByte('\n')
	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the ledger line format.
func (e *Expense) MarshalText() ([]byte, error) {
	return []byte(strings.TrimSuffix(e.Line(), "\n")), nil
}

// ParseLine parses a ledger line as written by Line.
//
// The expense text is parsed again, then the start date and the recording
// time stored in the line replace the parsed ones.
func ParseLine(line string) (*Expense, error) {
	fields := strings.SplitN(strings.TrimSpace(line), lineSeparator, 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: want <recorded at>::<starts on>::<expense>, got %q", ErrGeneric, line)
	}
	e, err := Parse(fields[2])
	if err != nil {
		return nil, err
	}
	startsOn, err := date.Parse(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDateFormat, err)
	}
	recordedAt, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recording time: %w", ErrInvalidDateFormat, err)
	}
	e.startsOn = startsOn
	e.recordedAt = recordedAt
	return e, nil
}

// DecodeLedger reads a ledger from a stream of ledger lines.
//
// Lines that cannot be parsed are skipped, their count is returned. Only read
// errors are reported.
func DecodeLedger(r io.Reader) (l *Ledger, skipped int, err error) {
	l = NewLedger()
	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		line, rerr := reader.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, skipped, fmt.Errorf("error reading from input: %w", rerr)
		}
		if line != "" {
			lineNo++
		}
		if strings.TrimSpace(line) != "" {
			if e, err := ParseLine(line); err != nil {
				skipped++
				slog.Debug("skipping ledger line", "line", lineNo, "error", err)
			} else {
				l.Insert(e)
			}
		}
		if rerr == io.EOF {
			return l, skipped, nil
		}
	}
}

// EncodeLedger writes every expense of the ledger as a ledger line.
//
// Lines are ordered by recording time so that the output is reproducible.
func EncodeLedger(w io.Writer, l *Ledger) error {
	expenses := slices.SortedFunc(l.All(), func(a, b *Expense) int {
		if c := a.recordedAt.Compare(b.recordedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Line(), b.Line())
	})
	bw := bufio.NewWriter(w)
	var werr error
	for _, e := range expenses {
		if _, err := bw.WriteString(e.Line()); err != nil && werr == nil {
			werr = fmt.Errorf("failed to write expense %q: %w", e.Name(), err)
		}
	}
	if err := bw.Flush(); err != nil && werr == nil {
		werr = fmt.Errorf("failed to flush ledger: %w", err)
	}
	return werr
}
