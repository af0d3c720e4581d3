package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/projection-engine/finance"
	"github.com/warp/projection-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(id, scenarioID string, createdAt time.Time) sqlite.Run {
	return sqlite.Run{
		ID:         id,
		ScenarioID: scenarioID,
		Label:      "Sample",
		StartDate:  finance.NewTimePoint(2026, time.January, 1),
		EndDate:    finance.NewTimePoint(2026, time.December, 1),
		NetWorth:   decimal.RequireFromString("54321.75"),
		CreatedAt:  createdAt,
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", "debt-snowball", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	postings := []sqlite.Posting{
		{RunID: "run-1", Seq: 0, Account: "Checking", Name: "Salary", Amount: decimal.NewFromInt(10000), PostedAt: finance.NewTimePoint(2026, time.January, 1)},
		{RunID: "run-1", Seq: 1, Account: "Loan", Name: "Loan Payment", Amount: decimal.NewFromInt(1000), PostedAt: finance.NewTimePoint(2026, time.January, 1)},
	}

	require.NoError(t, store.SaveRun(ctx, run, postings))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "debt-snowball", got.ScenarioID)
	assert.True(t, got.NetWorth.Equal(run.NetWorth))
	assert.Equal(t, run.StartDate, got.StartDate)
	assert.Equal(t, run.EndDate, got.EndDate)

	loaded, err := store.Postings(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Checking", loaded[0].Account)
	assert.True(t, loaded[1].Amount.Equal(decimal.NewFromInt(1000)))
}

func TestStore_GetRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, sqlite.ErrRunNotFound)
}

func TestStore_ListRuns_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := sampleRun("run-old", "", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	newer := sampleRun("run-new", "", time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveRun(ctx, older, nil))
	require.NoError(t, store.SaveRun(ctx, newer, nil))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
}

func TestStore_LatestRunForScenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleRun("run-1", "bonus-season", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	second := sampleRun("run-2", "bonus-season", time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveRun(ctx, first, nil))
	require.NoError(t, store.SaveRun(ctx, second, nil))

	latest, err := store.LatestRunForScenario(ctx, "bonus-season")
	require.NoError(t, err)
	assert.Equal(t, "run-2", latest.ID)

	_, err = store.LatestRunForScenario(ctx, "never-ran")
	assert.ErrorIs(t, err, sqlite.ErrRunNotFound)
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", "", time.Now().UTC())
	require.NoError(t, store.SaveRun(ctx, run, []sqlite.Posting{
		{RunID: "run-1", Seq: 0, Account: "Checking", Name: "Salary", Amount: decimal.NewFromInt(1), PostedAt: finance.NewTimePoint(2026, time.January, 1)},
	}))

	require.NoError(t, store.Reset(ctx))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	postings, err := store.Postings(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestFlattenPostings_PreservesAccountAndOrder(t *testing.T) {
	req := &finance.ProjectionRequest{
		Accounts: []*finance.Account{
			{
				Name: "Checking",
				Transactions: []finance.LedgerEntry{
					{Name: "Salary", Amount: decimal.NewFromInt(10000), PostedAt: finance.NewTimePoint(2026, time.January, 1)},
					{Name: "Rent", Amount: decimal.NewFromInt(-2000), PostedAt: finance.NewTimePoint(2026, time.January, 1)},
				},
			},
			{
				Name: "Savings",
				Transactions: []finance.LedgerEntry{
					{Name: "Sweep", Amount: decimal.NewFromInt(8000), PostedAt: finance.NewTimePoint(2026, time.January, 1)},
				},
			},
		},
	}

	postings := sqlite.FlattenPostings("run-9", req)
	require.Len(t, postings, 3)
	assert.Equal(t, 0, postings[0].Seq)
	assert.Equal(t, "Checking", postings[0].Account)
	assert.Equal(t, "Savings", postings[2].Account)
	assert.Equal(t, "run-9", postings[2].RunID)
}
