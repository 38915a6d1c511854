// Package costoflife computes the daily cost of recurring and one-off
// expenses.
//
// Expenses are written as free text, for instance
//
//	Rent 1729€ 1m12x 010118 #rent
//
// which reads "Rent, 1729€ per month for 12 months starting on 2018-01-01,
// tagged rent". The core functionalities include:
//   - Expense parsing: turning a free text into a validated [Expense] whose
//     [Lifetime] gives its calendar-accurate duration.
//   - Per diem: amortizing the total amount of an expense over the days it
//     is active.
//   - Ledger: a content-addressed store of expenses persisted to a plain text
//     log file, one self-describing line per expense.
//   - Reports: the cost of life on a date, a summary of the active expenses
//     and a rollup by tag.
//
// This package serves as the foundational logic for the `col` command-line
// tool.
package costoflife
