package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/projection-engine/finance"
)

func TestResolve_AbsolutePassesThrough(t *testing.T) {
	item := finance.LedgerEntry{Name: "Rent", Amount: dec("1500"), Kind: finance.Absolute}
	got := finance.Resolve(item, dec("10000"))
	assert.True(t, got.Equal(dec("1500")))
}

func TestResolve_SalaryRatioMultiplies(t *testing.T) {
	item := finance.LedgerEntry{Name: "Pension", Amount: dec("0.07"), Kind: finance.SalaryRatio}
	got := finance.Resolve(item, dec("10000"))
	assert.True(t, got.Equal(dec("700")))
}

func TestMonthSalary_CaseInsensitiveMatch(t *testing.T) {
	income := []finance.LedgerEntry{
		{Name: "Base SALARY", Amount: dec("12000"), Kind: finance.Absolute},
		{Name: "Dividends", Amount: dec("300"), Kind: finance.Absolute},
	}
	salary, err := finance.MonthSalary(income)
	require.NoError(t, err)
	assert.True(t, salary.Equal(dec("12000")))
}

func TestMonthSalary_NoMatch(t *testing.T) {
	income := []finance.LedgerEntry{
		{Name: "Dividends", Amount: dec("300"), Kind: finance.Absolute},
	}
	_, err := finance.MonthSalary(income)
	assert.ErrorIs(t, err, finance.ErrNoSalaryIncome)

	var lookupErr *finance.SalaryLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Empty(t, lookupErr.Matches)
}

func TestMonthSalary_MultipleMatches(t *testing.T) {
	income := []finance.LedgerEntry{
		{Name: "Salary", Amount: dec("8000"), Kind: finance.Absolute},
		{Name: "Partner Salary", Amount: dec("7000"), Kind: finance.Absolute},
	}
	_, err := finance.MonthSalary(income)
	assert.ErrorIs(t, err, finance.ErrAmbiguousSalaryIncome)

	var lookupErr *finance.SalaryLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, []string{"Salary", "Partner Salary"}, lookupErr.Matches)
}

func TestTaxableIncomeTotal_ResolvesRatiosAndSkipsUntaxed(t *testing.T) {
	income := []finance.LedgerEntry{
		{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
		{Name: "Overtime", Amount: dec("0.1"), Kind: finance.SalaryRatio, Taxable: true},
		{Name: "Gift", Amount: dec("500"), Kind: finance.Absolute},
	}
	total := finance.TaxableIncomeTotal(income, dec("10000"))
	assert.True(t, total.Equal(dec("11000")), "got %v", total)
}
