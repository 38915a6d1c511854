package costoflife

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/farcastto/costoflife/date"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// SummaryItem is one active expense in a Summary.
type SummaryItem struct {
	Name     string          `json:"name"`
	Total    decimal.Decimal `json:"total"`
	PerDiem  decimal.Decimal `json:"perDiem"`
	Progress float64         `json:"progress"`
}

// TagItem aggregates the active expenses sharing a tag.
type TagItem struct {
	Tag     string          `json:"tag"`
	Count   int             `json:"count"`
	PerDiem decimal.Decimal `json:"perDiem"`
}

// SearchItem is an expense matching a search pattern.
type SearchItem struct {
	Name     string          `json:"name"`
	Total    decimal.Decimal `json:"total"`
	PerDiem  decimal.Decimal `json:"perDiem"`
	StartsOn date.Date       `json:"startsOn"`
	EndsOn   date.Date       `json:"endsOn"`
	Tags     []string        `json:"tags"`
	Progress float64         `json:"progress"`
}

// Summary lists the expenses active on a date, the closest to completion first.
func (l *Ledger) Summary(on date.Date) []SummaryItem {
	var items []SummaryItem
	for e := range l.Active(on) {
		items = append(items, SummaryItem{
			Name:     e.Name(),
			Total:    e.AmountTotal(),
			PerDiem:  e.PerDiem(),
			Progress: e.Progress(on),
		})
	}
	slices.SortFunc(items, func(a, b SummaryItem) int {
		if c := cmp.Compare(b.Progress, a.Progress); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return items
}

// Tags aggregates the expenses active on a date by tag slug: how many
// expenses carry the tag and the sum of their per diems. The most expensive tag comes
// first.
func (l *Ledger) Tags(on date.Date) []TagItem {
	agg := make(map[string]*TagItem) // indexed by slug
	for e := range l.Active(on) {
		for key, label := range e.tags {
			item, ok := agg[key]
			if !ok {
				item = &TagItem{Tag: label, PerDiem: decimal.Zero}
				agg[key] = item
			}
			// labels of a slug may differ in case, the smallest one is displayed
			item.Tag = min(item.Tag, label)
			item.Count++
			item.PerDiem = item.PerDiem.Add(e.PerDiem())
		}
	}
	items := make([]TagItem, 0, len(agg))
	for _, item := range agg {
		items = append(items, *item)
	}
	slices.SortFunc(items, func(a, b TagItem) int {
		if c := b.PerDiem.Cmp(a.PerDiem); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	return items
}

// Search lists the expenses matching every word of pattern, in chronological
// order. A word matches when it is part of the name or of a tag, ignoring
// case. The progress is computed on the date on.
func (l *Ledger) Search(pattern string, on date.Date) []SearchItem {
	words := strings.FieldsFunc(strings.ToLower(pattern), func(r rune) bool {
		return unicode.IsSpace(r) || r == '#'
	})
	var items []SearchItem
	for e := range l.All() {
		if !matches(e, words) {
			continue
		}
		items = append(items, SearchItem{
			Name:     e.Name(),
			Total:    e.AmountTotal(),
			PerDiem:  e.PerDiem(),
			StartsOn: e.StartsOn(),
			EndsOn:   e.EndsOn(),
			Tags:     e.Tags(),
			Progress: e.Progress(on),
		})
	}
	slices.SortFunc(items, func(a, b SearchItem) int {
		if c := a.StartsOn.Sub(b.StartsOn); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return items
}

func matches(e *Expense, words []string) bool {
	name := strings.ToLower(e.Name())
	for _, w := range words {
		if strings.Contains(name, w) {
			continue
		}
		found := false
		for s := range e.tags {
			if strings.Contains(s, slug.Make(w)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PeriodCost is the cost of life over a range of days.
type PeriodCost struct {
	Name    string          `json:"name"`
	From    date.Date       `json:"from"`
	To      date.Date       `json:"to"`
	Total   decimal.Decimal `json:"total"`
	PerDiem decimal.Decimal `json:"perDiem"`
}

// CostOver sums the cost of life of every day of r. PerDiem is the average
// cost of life over r.
func (l *Ledger) CostOver(r date.Range) PeriodCost {
	total := decimal.Zero
	for e := range l.All() {
		p := e.Period()
		from, to := p.From, p.To
		if from.Before(r.From) {
			from = r.From
		}
		if to.After(r.To) {
			to = r.To
		}
		if days := date.NewRange(from, to).Days(); days > 0 {
			total = total.Add(e.PerDiemRaw().Mul(decimal.NewFromInt(int64(days))))
		}
	}
	pc := PeriodCost{Name: r.Identifier(), From: r.From, To: r.To, Total: round2(total), PerDiem: decimal.Zero}
	if days := r.Days(); days > 0 {
		pc.PerDiem = round2(total.Div(decimal.NewFromInt(int64(days))))
	}
	return pc
}

// Report gathers the reports of a ledger on a date.
type Report struct {
	On         date.Date       `json:"on"`
	CostOfLife decimal.Decimal `json:"costOfLife"`
	Period     *PeriodCost     `json:"period,omitempty"`
	Summary    []SummaryItem   `json:"summary,omitempty"`
	Tags       []TagItem       `json:"tags,omitempty"`
	Search     []SearchItem    `json:"search,omitempty"`
}

// NewReport returns a Report with only the cost of life filled.
func NewReport(l *Ledger, on date.Date) *Report {
	return &Report{On: on, CostOfLife: l.CostOfLife(on)}
}
