package costoflife

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/farcastto/costoflife/date"
)

// Unit is the period unit of a Lifetime.
type Unit int

const (
	// SingleDay is a one day lifetime, the default when an expense has no duration.
	SingleDay Unit = iota
	Day
	Week
	Month
	Year
)

// Letter returns the letter used for the unit in expense texts.
func (u Unit) Letter() string {
	switch u {
	case Day, SingleDay:
		return "d"
	case Week:
		return "w"
	case Month:
		return "m"
	case Year:
		return "y"
	default:
		return "?"
	}
}

func (u Unit) String() string {
	switch u {
	case SingleDay:
		return "single day"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// parseUnit parses a unit letter.
func parseUnit(letter string) (Unit, error) {
	switch letter {
	case "d":
		return Day, nil
	case "w":
		return Week, nil
	case "m":
		return Month, nil
	case "y":
		return Year, nil
	default:
		return 0, fmt.Errorf("%w: unknown unit %q, want one of d, w, m, y", ErrInvalidLifetimeFormat, letter)
	}
}

var (
	lifetimeRE       = regexp.MustCompile(`([1-9][0-9]*)([dwmy])(?:([1-9][0-9]*)x)?`)
	lifetimeLetterRE = regexp.MustCompile(`([1-9][0-9]*)([a-zA-Z])`)
)

// MaxLifetimeYears bounds the length of a lifetime.
const MaxLifetimeYears = 1000

const (
	daysPerYear  = 365.25
	daysPerMonth = 30.44
)

// Lifetime is the recurrence of an expense: Amount units repeated Times.
//
// "1m12x" is one month repeated twelve times. The zero value is a SingleDay
// lifetime.
type Lifetime struct {
	unit   Unit
	amount int
	times  int
}

// NewLifetime returns a lifetime of amount units repeated times.
// Both amount and times must be at least 1.
func NewLifetime(unit Unit, amount, times int) (Lifetime, error) {
	if unit < SingleDay || unit > Year {
		return Lifetime{}, fmt.Errorf("%w: unknown unit %v", ErrInvalidLifetimeFormat, unit)
	}
	if unit == SingleDay {
		return Lifetime{}, nil
	}
	if amount < 1 || times < 1 {
		return Lifetime{}, fmt.Errorf("%w: amount and repetitions must be positive, got %d%sx%d", ErrInvalidLifetimeFormat, amount, unit.Letter(), times)
	}
	l := Lifetime{unit: unit, amount: amount, times: times}
	if l.ApproxDays() > MaxLifetimeYears*daysPerYear {
		return Lifetime{}, fmt.Errorf("%w: %v is longer than %d years", ErrInvalidLifetimeFormat, l, MaxLifetimeYears)
	}
	return l, nil
}

func mustLifetime(unit Unit, amount, times int) Lifetime {
	l, err := NewLifetime(unit, amount, times)
	if err != nil {
		panic(err.Error())
	}
	return l
}

// Days returns a lifetime of amount days repeated times. It panics on non positive values.
func Days(amount, times int) Lifetime { return mustLifetime(Day, amount, times) }

// Weeks returns a lifetime of amount weeks repeated times. It panics on non positive values.
func Weeks(amount, times int) Lifetime { return mustLifetime(Week, amount, times) }

// Months returns a lifetime of amount months repeated times. It panics on non positive values.
func Months(amount, times int) Lifetime { return mustLifetime(Month, amount, times) }

// Years returns a lifetime of amount years repeated times. It panics on non positive values.
func Years(amount, times int) Lifetime { return mustLifetime(Year, amount, times) }

// ParseLifetime parses a lifetime token like "1m12x", "3y" or "100d".
//
// A token without any lifetime marker is one day repeated once.
func ParseLifetime(token string) (Lifetime, error) {
	match := lifetimeRE.FindStringSubmatch(token)
	if match == nil {
		if bad := lifetimeLetterRE.FindStringSubmatch(token); bad != nil {
			return Lifetime{}, fmt.Errorf("%w: unknown unit %q in %q, want one of d, w, m, y", ErrInvalidLifetimeFormat, bad[2], token)
		}
		return Days(1, 1), nil
	}
	unit, err := parseUnit(match[2])
	if err != nil {
		return Lifetime{}, err
	}
	amount, err := strconv.Atoi(match[1])
	if err != nil {
		return Lifetime{}, fmt.Errorf("%w: %q: %w", ErrInvalidLifetimeFormat, token, err)
	}
	times := 1
	if match[3] != "" {
		if times, err = strconv.Atoi(match[3]); err != nil {
			return Lifetime{}, fmt.Errorf("%w: %q: %w", ErrInvalidLifetimeFormat, token, err)
		}
	}
	return NewLifetime(unit, amount, times)
}

// Unit returns the lifetime unit.
func (l Lifetime) Unit() Unit { return l.unit }

// Amount returns the number of units per period, 1 for SingleDay.
func (l Lifetime) Amount() int {
	if l.unit == SingleDay {
		return 1
	}
	return l.amount
}

// Repeats returns the number of repetitions of the period, 1 for SingleDay.
func (l Lifetime) Repeats() int {
	if l.unit == SingleDay {
		return 1
	}
	return l.times
}

// DaysSince returns the exact number of days spanned by the lifetime when it
// starts on since.
//
// Months and years are calendar accurate: the month (or year) field is
// advanced and the distance between the two dates is returned.
func (l Lifetime) DaysSince(since date.Date) int {
	n := l.amount * l.times
	switch l.unit {
	case Year:
		return since.AddYears(n).Sub(since)
	case Month:
		return since.AddMonths(n).Sub(since)
	case Week:
		return 7 * n
	case Day:
		return n
	default:
		return 1
	}
}

// ApproxDays approximates the size of the lifetime: a year is 365.25 days,
// a month 30.44 days.
func (l Lifetime) ApproxDays() float64 {
	n := float64(l.amount) * float64(l.times)
	switch l.unit {
	case Year:
		return daysPerYear * n
	case Month:
		return daysPerMonth * n
	case Week:
		return 7 * n
	case Day:
		return n
	default:
		return 1
	}
}

// Equal reports whether both lifetimes have the same approximate size.
//
// Lifetimes of different units may be equal, for instance "1w" and "7d".
func (l Lifetime) Equal(o Lifetime) bool { return l.ApproxDays() == o.ApproxDays() }

// String returns the canonical form "{amount}{unit}{times}x".
func (l Lifetime) String() string {
	if l.unit == SingleDay {
		return "1d1x"
	}
	return fmt.Sprintf("%d%s%dx", l.amount, l.unit.Letter(), l.times)
}
