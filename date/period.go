package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar period.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("Period(%d)", int(p))
	}
}

// Periods lists the known periods, shortest first.
var Periods = []Period{Daily, Weekly, Monthly, Quarterly, Yearly}

// ParsePeriod parses a period name like "monthly" or "month".
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// Range returns the calendar period containing d. Weeks start on Monday.
func (p Period) Range(d Date) Range {
	switch p {
	case Weekly:
		offset := (int(d.time().Weekday()) + 6) % 7
		from := d.Add(-offset)
		return NewRange(from, from.Add(6))
	case Monthly:
		from := New(d.y, d.m, 1)
		return NewRange(from, from.AddMonths(1).Add(-1))
	case Quarterly:
		from := New(d.y, (d.m-1)/3*3+1, 1)
		return NewRange(from, from.AddMonths(3).Add(-1))
	case Yearly:
		from := New(d.y, time.January, 1)
		return NewRange(from, from.AddYears(1).Add(-1))
	default:
		return NewRange(d, d)
	}
}

// Period returns the calendar period matching exactly the range, if any.
func (r Range) Period() (p Period, ok bool) {
	for _, p := range Periods {
		if p.Range(r.From) == r {
			return p, true
		}
	}
	return Daily, false
}

// Identifier returns a short name of the range, like "2025-W37", "2025-09",
// "2025-Q3" or "2025" for calendar periods.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return r.String()
	}
	switch p {
	case Weekly:
		year, week := r.From.time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.y, (r.From.m-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		return r.From.String()
	}
}
