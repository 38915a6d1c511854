package costoflife

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/farcastto/costoflife/date"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// Expense is a single expense and its lifetime.
//
// An Expense is immutable, it is built by Parse, ParseLine, NewExpense or
// NewExpenseToday.
type Expense struct {
	name       string
	tags       map[string]string // display label indexed by slug
	amount     decimal.Decimal   // base amount for one period
	startsOn   date.Date
	lifetime   Lifetime
	recordedAt time.Time
	src        string // original text, empty when built from fields
}

// NewExpense builds an expense from its fields.
//
// amount is the amount for one period of the lifetime and must be a positive
// decimal. src is the text the expense was parsed from, or "" when the
// expense is built programmatically.
func NewExpense(name string, tags []string, amount string, startsOn date.Date, lifetime Lifetime, recordedAt time.Time, src string) (*Expense, error) {
	a, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if !round2(a).IsPositive() {
		return nil, fmt.Errorf("%w: amount should be a positive number: %s", ErrInvalidAmount, amount)
	}
	e := &Expense{
		name:       strings.TrimSpace(name),
		tags:       make(map[string]string, len(tags)),
		amount:     a,
		startsOn:   startsOn,
		lifetime:   lifetime,
		recordedAt: recordedAt,
		src:        src,
	}
	for _, t := range tags {
		e.tags[slug.Make(t)] = t
	}
	return e, nil
}

// NewExpenseToday builds a single day expense starting today.
func NewExpenseToday(name, amount string) (*Expense, error) {
	return NewExpense(name, nil, amount, date.Today(), Lifetime{}, time.Now(), "")
}

// Name returns the expense name.
func (e *Expense) Name() string { return e.name }

// String returns the expense name.
func (e *Expense) String() string { return e.name }

// Tags returns the tags display labels, sorted alphabetically.
func (e *Expense) Tags() []string { return slices.Sorted(maps.Values(e.tags)) }

// HasTag reports whether the expense is tagged with label, compared by slug.
func (e *Expense) HasTag(label string) bool {
	_, ok := e.tags[slug.Make(label)]
	return ok
}

// Amount returns the amount for one period, rounded to Scale decimals.
func (e *Expense) Amount() decimal.Decimal { return round2(e.amount) }

// AmountTotal returns the amount for the whole lifetime.
func (e *Expense) AmountTotal() decimal.Decimal {
	return e.amount.Mul(decimal.NewFromInt(int64(e.lifetime.Repeats())))
}

// AmountIsTotal reports whether the amount is the total amount, that is when
// the lifetime is not repeated.
func (e *Expense) AmountIsTotal() bool { return e.lifetime.Repeats() == 1 }

// Lifetime returns the expense lifetime.
func (e *Expense) Lifetime() Lifetime { return e.lifetime }

// StartsOn returns the first active day.
func (e *Expense) StartsOn() date.Date { return e.startsOn }

// RecordedAt returns when the expense was recorded.
func (e *Expense) RecordedAt() time.Time { return e.recordedAt }

// Source returns the text the expense was parsed from, if any.
func (e *Expense) Source() (src string, ok bool) { return e.src, e.src != "" }

// DurationDays returns the number of days the expense is active, at least 1.
func (e *Expense) DurationDays() int { return e.lifetime.DaysSince(e.startsOn) }

// EndsOn returns the last active day, included.
func (e *Expense) EndsOn() date.Date { return e.startsOn.Add(e.DurationDays() - 1) }

// Period returns the range of active days.
func (e *Expense) Period() date.Range { return date.NewRange(e.startsOn, e.EndsOn()) }

// PerDiemRaw returns the total amount divided by the number of active days.
func (e *Expense) PerDiemRaw() decimal.Decimal {
	return e.AmountTotal().Div(decimal.NewFromInt(int64(e.DurationDays())))
}

// PerDiem returns the per diem rounded to Scale decimals.
func (e *Expense) PerDiem() decimal.Decimal { return round2(e.PerDiemRaw()) }

// IsActiveOn reports whether on is between the first and the last active day.
func (e *Expense) IsActiveOn(on date.Date) bool { return e.Period().Contains(on) }

// Progress returns the elapsed fraction of the expense lifetime on a date,
// in [0,1]. A zero date means today.
func (e *Expense) Progress(on date.Date) float64 {
	if on.IsZero() {
		on = date.Today()
	}
	return e.Period().Elapsed(on)
}

// Equal reports whether both expenses have the same name, tags, displayed
// amount, start date and lifetime.
func (e *Expense) Equal(o *Expense) bool {
	return e.name == o.name &&
		maps.Equal(e.tags, o.tags) &&
		e.Amount().Equal(o.Amount()) &&
		e.startsOn == o.startsOn &&
		e.lifetime.Equal(o.lifetime)
}

// Text returns the expense text: the original text when the expense was
// parsed, otherwise a canonical text built from its fields.
func (e *Expense) Text() string {
	if e.src != "" {
		return e.src
	}
	parts := make([]string, 0, 3+len(e.tags))
	if e.name != "" {
		parts = append(parts, e.name)
	}
	parts = append(parts, FormatAmount(e.Amount())+"€", e.lifetime.String())
	for _, t := range e.Tags() {
		parts = append(parts, "#"+t)
	}
	return strings.Join(parts, " ")
}
