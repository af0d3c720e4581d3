/*
errors.go - Centralized error types for the projection engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every error in this package is a configuration error: the engine is a
  deterministic in-memory computation with no transient failures and no
  retries. A malformed request is rejected before any month is simulated.

USAGE:
  if errors.Is(err, finance.ErrNoSalaryIncome) {
      // exactly one income item must be named "salary"
  }

SEE ALSO:
  - request.go: Validate, where these errors surface
*/
package finance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoSalaryDepositAccount is returned when no account is flagged
	// as the salary-deposit ("main") account.
	ErrNoSalaryDepositAccount = errors.New("no salary-deposit account")

	// ErrMultipleSalaryDepositAccounts is returned when more than one
	// account claims to be the salary-deposit account.
	ErrMultipleSalaryDepositAccounts = errors.New("multiple salary-deposit accounts")

	// ErrNoInvestmentAccount is returned when no account is flagged to
	// receive surplus reinvestment.
	ErrNoInvestmentAccount = errors.New("no default investment account")

	// ErrMultipleInvestmentAccounts is returned when more than one
	// account is flagged to receive surplus.
	ErrMultipleInvestmentAccounts = errors.New("multiple default investment accounts")

	// ErrNoSalaryIncome is returned when no income item's name contains
	// "salary". Ratio amounts cannot be resolved without one.
	ErrNoSalaryIncome = errors.New("no salary income item")

	// ErrAmbiguousSalaryIncome is returned when more than one income
	// item's name contains "salary".
	ErrAmbiguousSalaryIncome = errors.New("ambiguous salary income item")

	// ErrNilConditionPredicate is returned when a condition has no predicate.
	ErrNilConditionPredicate = errors.New("condition has nil predicate")

	// ErrNilContinuePredicate is returned when the engine is invoked
	// without a termination predicate.
	ErrNilContinuePredicate = errors.New("nil continue predicate")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// SalaryLookupError reports the income items that matched "salary" when
// the count was not exactly one.
type SalaryLookupError struct {
	Matches []string
}

func (e *SalaryLookupError) Error() string {
	if len(e.Matches) == 0 {
		return "no income item matching \"salary\" found"
	}
	return fmt.Sprintf("%d income items matching \"salary\": %v", len(e.Matches), e.Matches)
}

func (e *SalaryLookupError) Unwrap() error {
	if len(e.Matches) == 0 {
		return ErrNoSalaryIncome
	}
	return ErrAmbiguousSalaryIncome
}

// IsConfigError reports whether err is a request configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNoSalaryDepositAccount) ||
		errors.Is(err, ErrMultipleSalaryDepositAccounts) ||
		errors.Is(err, ErrNoInvestmentAccount) ||
		errors.Is(err, ErrMultipleInvestmentAccounts) ||
		errors.Is(err, ErrNoSalaryIncome) ||
		errors.Is(err, ErrAmbiguousSalaryIncome) ||
		errors.Is(err, ErrNilConditionPredicate)
}
