/*
resolve.go - Ratio-vs-absolute amount resolution

PURPOSE:
  Converts a priced item's nominal amount into an absolute currency
  amount for a given month. Absolute amounts pass through unchanged;
  salary-ratio amounts are multiplied by the month's resolved salary.
  Resolution is a one-way conversion performed fresh every month and is
  never cached: a raise changes every downstream ratio the month it
  lands.

SALARY LOOKUP:
  The month's salary is the amount of the single income item whose name
  contains "salary" (case-insensitive) in the current month's income
  catalogue. Zero or multiple matches is a configuration error.

SEE ALSO:
  - conditions.go: Ratio resolution against the taxable-income total
  - posting.go: Resolution of catalogue and scheduled items
*/
package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Resolve converts an item's nominal amount to an absolute currency
// amount. The caller must treat the result as Absolute thereafter.
func Resolve(item LedgerEntry, monthSalary decimal.Decimal) decimal.Decimal {
	if item.Kind == SalaryRatio {
		return item.Amount.Mul(monthSalary)
	}
	return item.Amount
}

// MonthSalary returns the absolute amount of the single income item
// whose name contains "salary". The salary item itself must carry an
// absolute amount; it is the base every ratio resolves against.
func MonthSalary(income []LedgerEntry) (decimal.Decimal, error) {
	var matches []string
	var salary decimal.Decimal
	for _, item := range income {
		if strings.Contains(strings.ToLower(item.Name), "salary") {
			matches = append(matches, item.Name)
			salary = item.Amount
		}
	}
	if len(matches) != 1 {
		return decimal.Zero, &SalaryLookupError{Matches: matches}
	}
	return salary, nil
}

// TaxableIncomeTotal sums the resolved amounts of all taxable items in
// the income catalogue for the month.
func TaxableIncomeTotal(income []LedgerEntry, monthSalary decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range income {
		if item.Taxable {
			total = total.Add(Resolve(item, monthSalary))
		}
	}
	return total
}
