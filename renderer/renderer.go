// Package renderer renders costoflife reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/farcastto/costoflife"
	"github.com/shopspring/decimal"
)

//go:embed *.md
var templates embed.FS

// DefaultCurrency is used when Options.Currency is empty.
const DefaultCurrency = money.EUR

// Options configures the rendering of a report.
type Options struct {
	Currency string // ISO 4217 code used to display amounts.
}

func (o Options) currency() string {
	if o.Currency == "" {
		return DefaultCurrency
	}
	return o.Currency
}

// Summary renders the active expenses of the report and the cost of life.
func Summary(r *costoflife.Report, opts Options) string {
	partials := map[string]string{
		"cost_of_life": "cost_of_life.md",
	}
	return renderTemplate("summary", "summary.md", partials, opts, r)
}

// Tags renders the per tag aggregation of the report and the cost of life.
func Tags(r *costoflife.Report, opts Options) string {
	partials := map[string]string{
		"cost_of_life": "cost_of_life.md",
	}
	return renderTemplate("tags", "tags.md", partials, opts, r)
}

// searchView adds the totals row to a search report.
type searchView struct {
	*costoflife.Report
	Total   decimal.Decimal
	PerDiem decimal.Decimal
}

// Search renders the search results of the report, their totals and the cost of life.
func Search(r *costoflife.Report, opts Options) string {
	v := searchView{Report: r, Total: decimal.Zero, PerDiem: decimal.Zero}
	for _, item := range r.Search {
		v.Total = v.Total.Add(item.Total)
		v.PerDiem = v.PerDiem.Add(item.PerDiem)
	}
	partials := map[string]string{
		"cost_of_life": "cost_of_life.md",
	}
	return renderTemplate("search", "search.md", partials, opts, v)
}

// CostOfLife renders the closing line of every command.
func CostOfLife(r *costoflife.Report, opts Options) string {
	return renderTemplate("cost_of_life", "cost_of_life.md", nil, opts, r)
}

// Expense renders the details of a single expense, as shown before adding it.
func Expense(e *costoflife.Expense, opts Options) string {
	return renderTemplate("expense", "expense.md", nil, opts, e)
}

// FormatMoney formats an amount in the given currency, like "€1,729.00".
//
// Unknown currencies are displayed with two decimals followed by the code.
func FormatMoney(d decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return d.StringFixed(costoflife.Scale) + " " + code
	}
	return cur.Formatter().Format(d.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// Percent formats a ratio as a percentage with two decimals.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// barWidth is the number of cells of a complete progress bar.
const barWidth = 20

// Bar draws a progress bar for a ratio between 0 and 1, followed by the percentage.
func Bar(ratio float64) string {
	n := int(ratio * barWidth)
	n = max(0, min(n, barWidth))
	return strings.Repeat("▮", n) + strings.Repeat("▯", barWidth-n) + " " + Percent(ratio)
}

// share returns part over total, or 0 when total is zero.
func share(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).InexactFloat64()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// cell escapes a text to fit in a markdown table cell.
func cell(s string) string { return cellEscaper.Replace(s) }

func funcs(opts Options) template.FuncMap {
	code := opts.currency()
	return template.FuncMap{
		"money":   func(d decimal.Decimal) string { return FormatMoney(d, code) },
		"percent": Percent,
		"bar":     Bar,
		"share":   share,
		"cell":    cell,
		"join":    strings.Join,
	}
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, opts Options, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(opts)).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
