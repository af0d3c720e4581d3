/*
request.go - Projection input and output values

PURPOSE:
  A ProjectionRequest is the full description of a scenario: accounts,
  the income and expense catalogues, conditional events, and the start
  date. The engine never mutates the request it is given; it works on a
  deep clone (clone.go) and returns that clone, fully posted, inside
  the ProjectionResponse for auditing.

VALIDATION:
  Validate enforces the configuration invariants up front, before any
  month is simulated:
  - exactly one salary-deposit account
  - exactly one default-investment account (may be the same account)
  - exactly one income item whose name contains "salary"
  - every condition carries a non-nil predicate

SEE ALSO:
  - engine.go: The loop that consumes a request
  - conditions.go: How the Conditions list is evaluated
*/
package finance

import (
	"github.com/shopspring/decimal"
)

// Predicate decides whether a conditional event fires in a given month.
// Predicates must be pure functions of the month index and date.
type Predicate func(monthIndex int, date TimePoint) bool

// Condition pairs a predicate with the income template it injects.
// Conditions are an ordered list and are evaluated in insertion order,
// so ratio templates compound deterministically within a month.
type Condition struct {
	When     Predicate
	Template LedgerEntry
}

// ProjectionRequest is the caller-supplied scenario description.
type ProjectionRequest struct {
	Accounts   []*Account
	Income     []LedgerEntry
	Expenses   []LedgerEntry
	Conditions []Condition
	StartDate  TimePoint
}

// ProjectionResponse is the result of a completed projection.
type ProjectionResponse struct {
	// ProjectionEndDate is the latest posted-transaction date across
	// all accounts.
	ProjectionEndDate TimePoint

	// NetWorth is the sum of all posted transaction amounts across all
	// accounts (opening balances excluded).
	NetWorth decimal.Decimal

	// AugmentedRequest is the fully mutated clone, exposing complete
	// per-account transaction histories for auditing.
	AugmentedRequest *ProjectionRequest
}

// SalaryDepositAccount returns the account income and expenses post to,
// or nil if none is flagged.
func (r *ProjectionRequest) SalaryDepositAccount() *Account {
	for _, a := range r.Accounts {
		if a.IsSalaryDeposit {
			return a
		}
	}
	return nil
}

// InvestmentAccount returns the account flagged to receive surplus,
// or nil if none is flagged.
func (r *ProjectionRequest) InvestmentAccount() *Account {
	for _, a := range r.Accounts {
		if a.IsDefaultInvestment {
			return a
		}
	}
	return nil
}

// NetWorth sums all posted transaction amounts across all accounts.
func (r *ProjectionRequest) NetWorth() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Accounts {
		total = total.Add(a.PostedTotal())
	}
	return total
}

// LastPostedDate returns the maximum posted-transaction date across all
// accounts, or the zero TimePoint if nothing has been posted.
func (r *ProjectionRequest) LastPostedDate() TimePoint {
	var last TimePoint
	for _, a := range r.Accounts {
		for _, tx := range a.Transactions {
			if tx.PostedAt.After(last) {
				last = tx.PostedAt
			}
		}
	}
	return last
}

// Validate checks the configuration invariants. It is called by the
// engine on the clone before the first month; callers may also use it
// directly when assembling requests.
func (r *ProjectionRequest) Validate() error {
	var salaryAccounts, investmentAccounts int
	for _, a := range r.Accounts {
		if a.IsSalaryDeposit {
			salaryAccounts++
		}
		if a.IsDefaultInvestment {
			investmentAccounts++
		}
	}
	switch {
	case salaryAccounts == 0:
		return ErrNoSalaryDepositAccount
	case salaryAccounts > 1:
		return ErrMultipleSalaryDepositAccounts
	}
	switch {
	case investmentAccounts == 0:
		return ErrNoInvestmentAccount
	case investmentAccounts > 1:
		return ErrMultipleInvestmentAccounts
	}

	if _, err := MonthSalary(r.Income); err != nil {
		return err
	}

	for _, c := range r.Conditions {
		if c.When == nil {
			return ErrNilConditionPredicate
		}
	}
	return nil
}
