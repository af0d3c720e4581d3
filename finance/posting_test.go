package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/projection-engine/finance"
)

func postDate() finance.TimePoint {
	return finance.NewTimePoint(2026, time.January, 1)
}

func TestPostMonth_IncomeAndExpensesLandOnMainAccount(t *testing.T) {
	// GIVEN: A salary, a ratio income item, and an expense
	// WHEN: Posting a month
	// THEN: Income posts as credits and the expense negated, all dated
	//       at the simulated date

	main := checking()
	req := &finance.ProjectionRequest{
		Accounts: []*finance.Account{main},
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
			{Name: "Side Gig", Amount: dec("0.05"), Kind: finance.SalaryRatio},
		},
		Expenses: []finance.LedgerEntry{
			{Name: "Rent", Amount: dec("2000"), Kind: finance.Absolute},
		},
	}

	require.NoError(t, finance.PostMonth(req, postDate()))

	require.Len(t, main.Transactions, 3)
	assert.True(t, main.Transactions[0].Amount.Equal(dec("10000")))
	assert.True(t, main.Transactions[1].Amount.Equal(dec("500")))
	assert.True(t, main.Transactions[2].Amount.Equal(dec("-2000")))
	for _, tx := range main.Transactions {
		assert.Equal(t, postDate(), tx.PostedAt)
		assert.Equal(t, finance.Absolute, tx.Kind)
	}
}

func TestPostMonth_ScheduledDepositPairsWithMainDebit(t *testing.T) {
	// GIVEN: A savings account with +500 and -200 scheduled entries
	// WHEN: Posting a month
	// THEN: Only the positive sum funds the deposit debit on main, while
	//       both scheduled entries post to the account itself

	main := checking()
	savings := &finance.Account{
		Name: "Savings",
		Type: finance.AccountRepeat,
		Scheduled: []finance.LedgerEntry{
			{Name: "Contribution", Amount: dec("500"), Kind: finance.Absolute},
			{Name: "Fee", Amount: dec("-200"), Kind: finance.Absolute},
		},
	}
	req := &finance.ProjectionRequest{
		Accounts: []*finance.Account{main, savings},
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
		},
	}

	require.NoError(t, finance.PostMonth(req, postDate()))

	deposits := postingsNamed(main, "Savings Deposit")
	require.Len(t, deposits, 1)
	assert.True(t, deposits[0].Amount.Equal(dec("-500")))

	require.Len(t, savings.Transactions, 2)
	assert.True(t, savings.Balance().Equal(dec("300")))
}

func TestPostMonth_InterestOnPostedPosition(t *testing.T) {
	// GIVEN: A 12%/yr account receiving a 1,200 scheduled deposit
	// WHEN: Posting a month
	// THEN: Interest of 1,200 * 0.12 / 12 = 12 posts after the deposit

	main := checking()
	vault := &finance.Account{
		Name:         "Vault",
		InterestRate: dec("0.12"),
		Type:         finance.AccountRepeat,
		Scheduled: []finance.LedgerEntry{
			{Name: "Transfer", Amount: dec("1200"), Kind: finance.Absolute},
		},
	}
	req := &finance.ProjectionRequest{
		Accounts: []*finance.Account{main, vault},
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
		},
	}

	require.NoError(t, finance.PostMonth(req, postDate()))

	require.Len(t, vault.Transactions, 2)
	assert.Equal(t, "Interest", vault.Transactions[1].Name)
	assert.True(t, vault.Transactions[1].Amount.Equal(dec("12")), "got %v", vault.Transactions[1].Amount)
}

func TestPostMonth_ExpiredAccountSkipped(t *testing.T) {
	// GIVEN: An account that expires on February 1
	// WHEN: Posting January and then February
	// THEN: The schedule runs in January only

	exp := finance.NewTimePoint(2026, time.February, 1)
	main := checking()
	plan := &finance.Account{
		Name:           "Plan",
		ExpirationDate: &exp,
		Type:           finance.AccountRepeat,
		Scheduled: []finance.LedgerEntry{
			{Name: "Premium", Amount: dec("100"), Kind: finance.Absolute},
		},
	}
	req := &finance.ProjectionRequest{
		Accounts: []*finance.Account{main, plan},
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
		},
	}

	require.NoError(t, finance.PostMonth(req, postDate()))
	require.NoError(t, finance.PostMonth(req, postDate().AddMonths(1)))

	assert.Len(t, plan.Transactions, 1, "February posting skipped")
}

func TestPostMonth_SettledStopAtZeroSkipped(t *testing.T) {
	// GIVEN: A stop-at-zero account whose balance has reached zero
	// WHEN: Posting a month
	// THEN: Neither scheduled entries nor interest post to it

	main := checking()
	loan := &finance.Account{
		Name:          "Loan",
		OpeningAmount: dec("0"),
		InterestRate:  dec("0.10"),
		Type:          finance.AccountStopAtZero,
		Scheduled: []finance.LedgerEntry{
			{Name: "Repayment", Amount: dec("300"), Kind: finance.Absolute},
		},
	}
	req := &finance.ProjectionRequest{
		Accounts: []*finance.Account{main, loan},
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
		},
	}

	require.NoError(t, finance.PostMonth(req, postDate()))

	assert.Empty(t, loan.Transactions)
	assert.Empty(t, postingsNamed(main, "Loan Deposit"))
}

func TestPostMonth_RatioScheduledResolvesAgainstSalary(t *testing.T) {
	// GIVEN: A scheduled contribution of 10% of salary
	// WHEN: Posting with a 9,000 salary
	// THEN: The account receives 900

	main := checking()
	pension := &finance.Account{
		Name: "Pension",
		Type: finance.AccountRepeat,
		Scheduled: []finance.LedgerEntry{
			{Name: "Contribution", Amount: dec("0.1"), Kind: finance.SalaryRatio},
		},
	}
	req := &finance.ProjectionRequest{
		Accounts: []*finance.Account{main, pension},
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("9000"), Kind: finance.Absolute, Taxable: true},
		},
	}

	require.NoError(t, finance.PostMonth(req, postDate()))

	require.Len(t, pension.Transactions, 1)
	assert.True(t, pension.Transactions[0].Amount.Equal(dec("900")))
}
