/*
posting.go - Monthly ledger posting

PURPOSE:
  Posts one simulated month to the account ledgers: the resolved income
  and expense catalogues land on the salary-deposit account, then every
  participating account receives its scheduled transactions (funded by a
  matching deposit debit on the salary-deposit account) and its monthly
  interest.

ORDERING GUARANTEE:
  Postings are append-only and never reordered. Every entry carries the
  simulated date, not wall-clock time.

ACCOUNT PARTICIPATION:
  An account is skipped for the month when it has expired, or when it is
  stop-at-zero and already settled (balance >= 0). Interest is computed
  as annual rate times the sum of the account's posted transaction
  amounts, divided by 12, after this month's scheduled postings.

SEE ALSO:
  - settlement.go: Runs after posting each month
  - account.go: Balance and settlement predicates
*/
package finance

import (
	"github.com/shopspring/decimal"
)

var months = decimal.NewFromInt(12)

const interestEntryName = "Interest"

// PostMonth posts the month's income, expenses, scheduled transactions,
// and interest, dated at the simulated date.
func PostMonth(req *ProjectionRequest, date TimePoint) error {
	main := req.SalaryDepositAccount()
	if main == nil {
		return ErrNoSalaryDepositAccount
	}
	salary, err := MonthSalary(req.Income)
	if err != nil {
		return err
	}

	// Income and expenses post to the salary-deposit account. Expense
	// catalogue amounts are nominal costs; they post negated.
	for _, item := range req.Income {
		main.Post(LedgerEntry{
			Name:     item.Name,
			Amount:   Resolve(item, salary),
			Kind:     Absolute,
			PostedAt: date,
			Taxable:  item.Taxable,
		})
	}
	for _, item := range req.Expenses {
		main.Post(LedgerEntry{
			Name:     item.Name,
			Amount:   Resolve(item, salary).Neg(),
			Kind:     Absolute,
			PostedAt: date,
		})
	}

	for _, acct := range req.Accounts {
		if acct.IsExpired(date) {
			continue
		}
		if acct.IsSettled() {
			continue
		}

		if len(acct.Scheduled) > 0 {
			// The sum of positive scheduled amounts is this month's
			// deposit into the account, funded from the salary-deposit
			// account.
			deposit := decimal.Zero
			for _, s := range acct.Scheduled {
				amt := Resolve(s, salary)
				if amt.IsPositive() {
					deposit = deposit.Add(amt)
				}
			}
			if !deposit.IsZero() {
				main.Post(LedgerEntry{
					Name:     acct.Name + " Deposit",
					Amount:   deposit.Neg(),
					Kind:     Absolute,
					PostedAt: date,
				})
			}
			for _, s := range acct.Scheduled {
				acct.Post(LedgerEntry{
					Name:     s.Name,
					Amount:   Resolve(s, salary),
					Kind:     Absolute,
					PostedAt: date,
				})
			}
		}

		// Interest accrues on the posted position, after this month's
		// scheduled postings.
		interest := acct.InterestRate.Mul(acct.PostedTotal()).Div(months)
		if !interest.IsZero() {
			acct.Post(LedgerEntry{
				Name:     interestEntryName,
				Amount:   interest,
				Kind:     Absolute,
				PostedAt: date,
			})
		}
	}
	return nil
}
