/*
Package finance provides the core monthly projection engine.

PURPOSE:
  This package contains the types and algorithms for simulating an
  individual's month-by-month financial trajectory: income and expense
  posting, scheduled account transactions, interest, conditional events
  (bonuses, raises, payouts), debt settlement, and surplus reinvestment,
  run until a caller-supplied stopping condition is satisfied.

KEY CONCEPTS IN THIS FILE (types.go):
  - LedgerEntry: An immutable signed posting against an account on a date
  - AmountKind: Whether an amount is absolute or a ratio of salary
  - AccountType: Posting behavior of an account (standard, repeat, stop-at-zero)

DESIGN PRINCIPLES:
  1. Immutability: Posted entries are never edited or removed
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Isolation: The engine deep-clones its input and never mutates caller state
  4. Determinism: Identical requests always produce identical responses

USAGE:
  entry := finance.LedgerEntry{
      Name:   "Salary",
      Amount: decimal.NewFromInt(10000),
      Kind:   finance.Absolute,
  }

SEE ALSO:
  - account.go: Account container and balance calculation
  - engine.go: The month-stepping projection loop
  - resolve.go: Ratio-vs-absolute amount resolution
*/
package finance

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT KIND - How a nominal amount resolves to currency
// =============================================================================

type AmountKind string

const (
	// Absolute amounts are used as-is.
	Absolute AmountKind = "absolute"

	// SalaryRatio amounts are multiplied by the month's resolved salary.
	// Resolution is a one-way conversion performed fresh every month.
	SalaryRatio AmountKind = "salary_ratio"
)

// =============================================================================
// LEDGER ENTRY - Atomic unit of financial record
// =============================================================================

// LedgerEntry is a single priced item: positive amounts are credits,
// negative amounts are debits. Once posted to an account's transaction
// history an entry is permanent. The OneOff flag only governs removal
// from the income catalogue, never from posted history.
type LedgerEntry struct {
	Name     string
	Amount   decimal.Decimal
	Kind     AmountKind
	PostedAt TimePoint
	Taxable  bool
	OneOff   bool
}

// =============================================================================
// ACCOUNT TYPE - Posting behavior
// =============================================================================

type AccountType string

const (
	AccountStandard AccountType = "standard"
	AccountRepeat   AccountType = "repeat"

	// AccountStopAtZero marks an account (typically debt) that stops
	// receiving scheduled deposits once its balance is non-negative.
	AccountStopAtZero AccountType = "stop_at_zero"
)

// MustParseDecimal parses a decimal string, returning zero on failure.
// Intended for literals in scenario definitions and tests.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
