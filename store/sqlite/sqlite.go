/*
Package sqlite provides SQLite-backed persistence for projection runs.

PURPOSE:
  The projection engine itself is a pure in-memory computation; this
  package records its completed runs so results can be listed, audited,
  and re-inspected later. Each run stores the response aggregates plus
  the full flattened posting history of the augmented request.

APPEND-ONLY ENFORCEMENT:
  Runs and their postings are never updated once saved:
  - No UPDATE statements on projection tables
  - Reset wipes everything, for demo environments only

KEY TABLES:
  projection_runs:     One row per completed projection
  projection_postings: Flattened per-account ledger entries of a run

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't
  block the writer.

USAGE:
  store, err := sqlite.New("./data/projections.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  err = store.SaveRun(ctx, run, sqlite.FlattenPostings(run.ID, resp.AugmentedRequest))

SEE ALSO:
  - api/handlers.go: Saves a run after each projection
  - finance/request.go: The augmented request being flattened
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/projection-engine/finance"
)

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("projection run not found")

// Run is a persisted projection run.
type Run struct {
	ID          string
	ScenarioID  string // empty for ad-hoc requests
	Label       string
	StartDate   finance.TimePoint
	EndDate     finance.TimePoint
	NetWorth    decimal.Decimal
	RequestJSON string // the scenario definition, for re-runs
	CreatedAt   time.Time
}

// Posting is one flattened ledger entry of a run.
type Posting struct {
	RunID    string
	Seq      int
	Account  string
	Name     string
	Amount   decimal.Decimal
	PostedAt finance.TimePoint
}

// FlattenPostings turns an augmented request's per-account histories
// into a flat, ordered posting list for persistence.
func FlattenPostings(runID string, req *finance.ProjectionRequest) []Posting {
	var out []Posting
	seq := 0
	for _, account := range req.Accounts {
		for _, tx := range account.Transactions {
			out = append(out, Posting{
				RunID:    runID,
				Seq:      seq,
				Account:  account.Name,
				Name:     tx.Name,
				Amount:   tx.Amount,
				PostedAt: tx.PostedAt,
			})
			seq++
		}
	}
	return out
}

// Store persists projection runs using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Completed projection runs (append-only)
	CREATE TABLE IF NOT EXISTS projection_runs (
		id TEXT PRIMARY KEY,
		scenario_id TEXT,
		label TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		net_worth TEXT NOT NULL,
		request_json TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_scenario
		ON projection_runs(scenario_id) WHERE scenario_id != '';
	CREATE INDEX IF NOT EXISTS idx_runs_created
		ON projection_runs(created_at DESC);

	-- Flattened ledger entries per run (append-only)
	CREATE TABLE IF NOT EXISTS projection_postings (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		account_name TEXT NOT NULL,
		entry_name TEXT NOT NULL,
		amount TEXT NOT NULL,
		posted_at TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_postings_run_account
		ON projection_postings(run_id, account_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun persists a run and its postings atomically.
func (s *Store) SaveRun(ctx context.Context, run Run, postings []Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projection_runs (id, scenario_id, label, start_date, end_date, net_worth, request_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ScenarioID, run.Label,
		run.StartDate.String(), run.EndDate.String(),
		run.NetWorth.String(), run.RequestJSON,
		run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projection_postings (run_id, seq, account_name, entry_name, amount, posted_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range postings {
		if _, err := stmt.ExecContext(ctx, p.RunID, p.Seq, p.Account, p.Name, p.Amount.String(), p.PostedAt.String()); err != nil {
			return fmt.Errorf("failed to insert posting: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario_id, label, start_date, end_date, net_worth, request_json, created_at
		FROM projection_runs
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario_id, label, start_date, end_date, net_worth, request_json, created_at
		FROM projection_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// LatestRunForScenario returns the most recent run for a scenario, or
// ErrRunNotFound if the scenario has never run.
func (s *Store) LatestRunForScenario(ctx context.Context, scenarioID string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario_id, label, start_date, end_date, net_worth, request_json, created_at
		FROM projection_runs WHERE scenario_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, scenarioID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Postings returns a run's flattened ledger entries in posting order.
func (s *Store) Postings(ctx context.Context, runID string) ([]Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, account_name, entry_name, amount, posted_at
		FROM projection_postings WHERE run_id = ?
		ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []Posting
	for rows.Next() {
		var p Posting
		var amount, postedAt string
		if err := rows.Scan(&p.RunID, &p.Seq, &p.Account, &p.Name, &amount, &postedAt); err != nil {
			return nil, err
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", amount, err)
		}
		if p.PostedAt, err = finance.ParseTimePoint(postedAt); err != nil {
			return nil, fmt.Errorf("corrupt posted_at %q: %w", postedAt, err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// Reset wipes all persisted runs. Demo environments only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM projection_postings;
		DELETE FROM projection_runs;`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var startDate, endDate, netWorth, createdAt string
	err := row.Scan(&run.ID, &run.ScenarioID, &run.Label, &startDate, &endDate, &netWorth, &run.RequestJSON, &createdAt)
	if err != nil {
		return Run{}, err
	}
	if run.StartDate, err = finance.ParseTimePoint(startDate); err != nil {
		return Run{}, fmt.Errorf("corrupt start_date %q: %w", startDate, err)
	}
	if run.EndDate, err = finance.ParseTimePoint(endDate); err != nil {
		return Run{}, fmt.Errorf("corrupt end_date %q: %w", endDate, err)
	}
	if run.NetWorth, err = decimal.NewFromString(netWorth); err != nil {
		return Run{}, fmt.Errorf("corrupt net_worth %q: %w", netWorth, err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Run{}, fmt.Errorf("corrupt created_at %q: %w", createdAt, err)
	}
	return run, nil
}
