package date

import "fmt"

// Range represents a range of dates, both boundaries included.
type Range struct{ From, To Date }

// NewRange returns the range of days between from and to.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of days in the range, 0 for an inverted range.
func (r Range) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	return r.To.Sub(r.From) + 1
}

// Elapsed returns the fraction of the range elapsed on date, in [0,1].
//
// It is 0 on or before From and 1 on or after To.
func (r Range) Elapsed(on Date) float64 {
	switch {
	case !on.After(r.From):
		return 0
	case !on.Before(r.To):
		return 1
	}
	return float64(on.Sub(r.From)) / float64(r.To.Sub(r.From))
}

func (r Range) String() string { return fmt.Sprintf("%s_%s", r.From, r.To) }
