/*
account.go - Account container and balance calculation

PURPOSE:
  An Account is a named financial container: an opening balance, an
  optional annual interest rate, a posting behavior type, a catalogue of
  scheduled transactions re-applied every simulated month, and an
  append-only history of posted entries.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: Transactions are only ever appended, never reordered
  2. DERIVED BALANCE: Balance is always opening amount + sum of postings;
     there is no separate balance field that can drift out of sync
  3. STOP-AT-ZERO: Once a StopAtZero account reaches a non-negative
     balance it is settled and receives no further scheduled deposits

SEE ALSO:
  - posting.go: Monthly posting of scheduled transactions and interest
  - settlement.go: Debt sweep and surplus reinvestment
*/
package finance

import (
	"github.com/shopspring/decimal"
)

// Account is a named financial container. Exactly one account in a
// request must be the salary-deposit account (where income and expenses
// post), and exactly one must be flagged to receive surplus.
type Account struct {
	Name                string
	OpeningAmount       decimal.Decimal
	InterestRate        decimal.Decimal // annual, e.g. 0.12 for 12%/yr
	Type                AccountType
	CreditLimit         decimal.Decimal
	ExpirationDate      *TimePoint
	IsSalaryDeposit     bool
	IsDefaultInvestment bool

	// Scheduled entries are templates, re-resolved and re-posted every
	// simulated month (subject to expiration and stop-at-zero).
	Scheduled []LedgerEntry

	// Transactions is the append-only ledger history.
	Transactions []LedgerEntry
}

// Balance is the derived position: opening amount plus all postings.
func (a *Account) Balance() decimal.Decimal {
	return a.OpeningAmount.Add(a.PostedTotal())
}

// PostedTotal sums posted transaction amounts, excluding the opening amount.
func (a *Account) PostedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range a.Transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

// Post appends an entry to the transaction history.
func (a *Account) Post(e LedgerEntry) {
	a.Transactions = append(a.Transactions, e)
}

// IsExpired reports whether the account stops participating at the given date.
func (a *Account) IsExpired(at TimePoint) bool {
	return a.ExpirationDate != nil && !a.ExpirationDate.After(at)
}

// IsSettled reports whether a stop-at-zero account has been paid off.
func (a *Account) IsSettled() bool {
	return a.Type == AccountStopAtZero && !a.Balance().IsNegative()
}

// Clone returns a referentially independent deep copy.
func (a *Account) Clone() *Account {
	out := *a
	if a.ExpirationDate != nil {
		exp := *a.ExpirationDate
		out.ExpirationDate = &exp
	}
	out.Scheduled = append([]LedgerEntry(nil), a.Scheduled...)
	out.Transactions = append([]LedgerEntry(nil), a.Transactions...)
	return &out
}
