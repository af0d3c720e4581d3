/*
settlement.go - Debt snowball and surplus reinvestment

PURPOSE:
  After the month's ledger posting, any positive balance on the
  salary-deposit account is swept into outstanding negative-balance
  accounts, highest interest rate first, then any remainder is
  reinvested into the default-investment account. The salary-deposit
  account ends every month at zero (or below) whenever any settlement
  target exists.

ORDERING:
  Debt accounts are ordered by descending interest rate; ties keep the
  request's original account order, so settlement is deterministic.

SEE ALSO:
  - posting.go: Runs before settlement each month
  - engine.go: The month loop
*/
package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Settle sweeps the salary-deposit account's surplus into debt accounts
// and reinvests the remainder, posting paired entries dated at the
// simulated date.
func Settle(req *ProjectionRequest, date TimePoint) error {
	main := req.SalaryDepositAccount()
	if main == nil {
		return ErrNoSalaryDepositAccount
	}

	var debts []*Account
	for _, a := range req.Accounts {
		if a != main && a.Balance().IsNegative() {
			debts = append(debts, a)
		}
	}
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].InterestRate.GreaterThan(debts[j].InterestRate)
	})

	for _, debt := range debts {
		mainBalance := main.Balance()
		if !mainBalance.IsPositive() {
			break
		}
		payment := decimal.Min(mainBalance, debt.Balance().Neg())
		debt.Post(LedgerEntry{
			Name:     debt.Name + " Payment",
			Amount:   payment,
			Kind:     Absolute,
			PostedAt: date,
		})
		main.Post(LedgerEntry{
			Name:     debt.Name + " Payment",
			Amount:   payment.Neg(),
			Kind:     Absolute,
			PostedAt: date,
		})
	}

	remainder := main.Balance()
	if !remainder.IsPositive() {
		return nil
	}
	investment := req.InvestmentAccount()
	if investment == nil {
		return ErrNoInvestmentAccount
	}
	if investment == main {
		// The surplus already sits where it would be swept to.
		return nil
	}
	investment.Post(LedgerEntry{
		Name:     investment.Name + " Deposit",
		Amount:   remainder,
		Kind:     Absolute,
		PostedAt: date,
	})
	main.Post(LedgerEntry{
		Name:     investment.Name + " Deposit",
		Amount:   remainder.Neg(),
		Kind:     Absolute,
		PostedAt: date,
	})
	return nil
}
