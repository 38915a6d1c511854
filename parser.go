package costoflife

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/farcastto/costoflife/date"
)

// Token classifiers, tried in this order on every word of an expense text.
var (
	currencyRE = regexp.MustCompile(`^(\d+(?:\.\d{2})?)\p{Sc}$`)
	hashtagRE  = regexp.MustCompile(`^[#.]([a-zA-Z][0-9a-zA-Z_-]*)$`)
	durationRE = regexp.MustCompile(`^[1-9][0-9]*[dwmy](?:[1-9][0-9]*x)?$`)
	shortDayRE = regexp.MustCompile(`^[0-3][0-9][0-1][0-9][1-9][0-9]$`)
)

// Parse parses an expense text.
//
// The text is a list of words in any order:
//   - an amount followed by a currency symbol, "1729€"
//   - tags starting with '#' or '.', "#rent"
//   - a lifetime, "1m12x" for one month twelve times
//   - a start date formatted ddmmyy, "010118"
//
// Every other word is part of the name. When several amounts, lifetimes or
// dates are present, the last one wins. The start date defaults to today and
// the lifetime to a single day. A missing amount is an error.
func Parse(text string) (*Expense, error) {
	var (
		name     []string
		tags     []string
		amount   = "0"
		lifetime Lifetime
		startsOn = date.Today()
	)
	for _, word := range strings.Fields(text) {
		switch {
		case currencyRE.MatchString(word):
			amount = currencyRE.FindStringSubmatch(word)[1]
		case hashtagRE.MatchString(word):
			tags = append(tags, hashtagRE.FindStringSubmatch(word)[1])
		case durationRE.MatchString(word):
			l, err := ParseLifetime(word)
			if err != nil {
				return nil, err
			}
			lifetime = l
		case shortDayRE.MatchString(word):
			d, err := date.ParseShort(word)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidDateFormat, err)
			}
			startsOn = d
		default:
			name = append(name, word)
		}
	}
	return NewExpense(strings.Join(name, " "), tags, amount, startsOn, lifetime, time.Now(), text)
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Expense {
	e, err := Parse(text)
	if err != nil {
		panic(err.Error())
	}
	return e
}
