package costoflife

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	"github.com/farcastto/costoflife/date"
	"github.com/shopspring/decimal"
	"lukechampine.com/blake3"
)

// Hash identifies an expense by its name, amount, lifetime and start date.
type Hash [32]byte

func (h Hash) String() string { return fmt.Sprintf("%x", h[:8]) }

// HashOf computes the content hash of an expense.
//
// Tags, source text and recording time are not part of the hash: two
// expenses that differ only by those are the same expense.
func HashOf(e *Expense) Hash {
	fields := fmt.Sprintf("%s:%s:%s:%s", e.Name(), FormatAmount(e.Amount()), e.Lifetime(), e.StartsOn())
	return blake3.Sum256([]byte(fields))
}

// Ledger is a content-addressed set of expenses.
//
// Inserting an expense with the same hash as an existing one replaces it.
type Ledger struct {
	expenses map[Hash]*Expense
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{expenses: make(map[Hash]*Expense)}
}

// Insert adds the expense to the ledger and returns the expense it replaced, if any.
func (l *Ledger) Insert(e *Expense) (previous *Expense, replaced bool) {
	h := HashOf(e)
	previous, replaced = l.expenses[h]
	if replaced {
		slog.Debug("replacing expense", "hash", h, "name", e.Name())
	}
	l.expenses[h] = e
	return previous, replaced
}

// Remove removes the expense from the ledger and reports whether it was present.
func (l *Ledger) Remove(e *Expense) bool {
	h := HashOf(e)
	_, ok := l.expenses[h]
	delete(l.expenses, h)
	return ok
}

// Get returns the expense with this hash.
func (l *Ledger) Get(h Hash) (*Expense, bool) {
	e, ok := l.expenses[h]
	return e, ok
}

// Len returns the number of expenses in the ledger.
func (l *Ledger) Len() int { return len(l.expenses) }

// All iterates over all the expenses in an unspecified order.
func (l *Ledger) All() iter.Seq[*Expense] { return maps.Values(l.expenses) }

// Active iterates over the expenses active on a date, in an unspecified order.
func (l *Ledger) Active(on date.Date) iter.Seq[*Expense] {
	return func(yield func(*Expense) bool) {
		for _, e := range l.expenses {
			if e.IsActiveOn(on) && !yield(e) {
				return
			}
		}
	}
}

// ActiveCount returns the number of expenses active on a date.
func (l *Ledger) ActiveCount(on date.Date) int {
	n := 0
	for range l.Active(on) {
		n++
	}
	return n
}

// CostOfLife returns the sum of the per diems of the expenses active on a date.
//
// The raw per diems are summed, and only the sum is rounded.
func (l *Ledger) CostOfLife(on date.Date) decimal.Decimal {
	total := decimal.Zero
	for e := range l.Active(on) {
		total = total.Add(e.PerDiemRaw())
	}
	return round2(total)
}

// Load inserts the expenses read from a ledger file.
//
// Lines that cannot be parsed are skipped and counted, errors opening or
// reading the file are returned.
func (l *Ledger) Load(path string) (skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	loaded, skipped, err := DecodeLedger(f)
	if err != nil {
		return skipped, fmt.Errorf("could not read ledger %q: %w", path, err)
	}
	for e := range loaded.All() {
		l.Insert(e)
	}
	if skipped > 0 {
		slog.Info("skipped invalid ledger lines", "file", path, "skipped", skipped)
	}
	return skipped, nil
}

// Save writes the ledger to path, replacing the whole file.
//
// The ledger is written to a temporary file in the same folder which is then
// renamed to path.
func (l *Ledger) Save(path string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not create ledger file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	werr := EncodeLedger(f, l)
	if cerr := f.Close(); cerr != nil {
		werr = errors.Join(werr, fmt.Errorf("could not close ledger file: %w", cerr))
	}
	if werr != nil {
		return fmt.Errorf("could not write ledger %q: %w", path, werr)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return fmt.Errorf("could not write ledger %q: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not replace ledger %q: %w", path, err)
	}
	return nil
}
