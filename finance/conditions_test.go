package finance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/projection-engine/finance"
)

func never(_ int, _ finance.TimePoint) bool { return false }

func fires(_ int, _ finance.TimePoint) bool { return true }

func TestInjectConditions_RatioCompoundsInListOrder(t *testing.T) {
	// GIVEN: A taxable income base of 10,000 and two firing ratio
	//        conditions at 10%, the first taxable
	// WHEN: Injecting for a month
	// THEN: The first resolves to 1,000, raising the base so the
	//       second resolves to 1,100

	req := &finance.ProjectionRequest{
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
		},
		Conditions: []finance.Condition{
			{When: fires, Template: finance.LedgerEntry{
				Name: "Bonus A", Amount: dec("0.1"), Kind: finance.SalaryRatio, Taxable: true,
			}},
			{When: fires, Template: finance.LedgerEntry{
				Name: "Bonus B", Amount: dec("0.1"), Kind: finance.SalaryRatio,
			}},
		},
	}

	err := finance.InjectConditions(req, 0, finance.NewTimePoint(2026, time.January, 1))
	require.NoError(t, err)
	require.Len(t, req.Income, 3)

	bonusA := req.Income[1]
	bonusB := req.Income[2]
	assert.True(t, bonusA.Amount.Equal(dec("1000")), "got %v", bonusA.Amount)
	assert.True(t, bonusB.Amount.Equal(dec("1100")), "got %v", bonusB.Amount)
	assert.Equal(t, finance.Absolute, bonusA.Kind, "ratio resolution is one-way")
	assert.Equal(t, finance.Absolute, bonusB.Kind)
}

func TestInjectConditions_NonFiringPredicateLeavesCatalogueAlone(t *testing.T) {
	req := &finance.ProjectionRequest{
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
		},
		Conditions: []finance.Condition{
			{When: never, Template: finance.LedgerEntry{Name: "Bonus", Amount: dec("1000")}},
		},
	}

	err := finance.InjectConditions(req, 0, finance.NewTimePoint(2026, time.January, 1))
	require.NoError(t, err)
	assert.Len(t, req.Income, 1)
}

func TestPurgeOneOffs_RemovesOnlyFlaggedItems(t *testing.T) {
	// GIVEN: A catalogue with a permanent salary and two one-off items
	// WHEN: Purging at month end
	// THEN: Only the one-off items are removed

	req := &finance.ProjectionRequest{
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute},
			{Name: "Bonus", Amount: dec("1000"), Kind: finance.Absolute, OneOff: true},
			{Name: "Payout", Amount: dec("250"), Kind: finance.Absolute, OneOff: true},
		},
	}

	finance.PurgeOneOffs(req)

	require.Len(t, req.Income, 1)
	assert.Equal(t, "Salary", req.Income[0].Name)
}

func TestInjectConditions_InjectedOneOffSurvivesUntilPurge(t *testing.T) {
	// GIVEN: A firing one-off condition
	// WHEN: Injecting, then purging
	// THEN: The item is present for the month and consumed after it

	req := &finance.ProjectionRequest{
		Income: []finance.LedgerEntry{
			{Name: "Salary", Amount: dec("10000"), Kind: finance.Absolute, Taxable: true},
		},
		Conditions: []finance.Condition{
			{When: fires, Template: finance.LedgerEntry{
				Name: "Leave Payout", Amount: dec("2000"), Kind: finance.Absolute, OneOff: true,
			}},
		},
	}

	require.NoError(t, finance.InjectConditions(req, 0, finance.NewTimePoint(2026, time.June, 1)))
	assert.Len(t, req.Income, 2)

	finance.PurgeOneOffs(req)
	assert.Len(t, req.Income, 1)
}
