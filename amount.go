package costoflife

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimals amounts are displayed and rounded with.
const Scale = 2

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount parses a decimal amount like "1729" or "9.99".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	return d, nil
}

// round2 rounds d to Scale decimals.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(Scale) }

// FormatAmount returns d with exactly Scale decimals, as written in the ledger.
func FormatAmount(d decimal.Decimal) string { return d.StringFixed(Scale) }
