/*
refresher.go - Scheduled scenario re-projection

PURPOSE:
  Periodically re-runs every built-in scenario that has at least one
  persisted run, keeping the stored projections current as the calendar
  advances. Uses a cron schedule rather than a fixed ticker so the
  refresh cadence can be expressed naturally ("every night at 2am").

DESIGN:
  - robfig/cron drives the schedule; jobs run on cron's goroutine
  - Scenarios without any prior run are never refreshed automatically
  - Each refresh produces a new run record; history is append-only

CONFIGURATION:
  - Spec: cron expression (default: "0 2 * * *")
  - Enabled: whether the refresher is active

USAGE:
  refresher := NewRefresher(store, handler, logger)
  refresher.Start()
  // ... later
  refresher.Stop()

SEE ALSO:
  - handlers.go: RunScenarioByID (shared execution path)
  - scenarios.go: Built-in scenario definitions
*/
package api

import (
	"context"
	"errors"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/warp/projection-engine/store/sqlite"
)

// DefaultRefreshSpec re-projects nightly at 02:00.
const DefaultRefreshSpec = "0 2 * * *"

// Refresher re-runs previously-executed scenarios on a cron schedule.
type Refresher struct {
	Store   *sqlite.Store
	Handler *Handler
	Logger  *logrus.Logger
	Spec    string
	Enabled bool

	cron *cron.Cron
	mu   sync.Mutex
}

// NewRefresher creates a refresher with the default nightly schedule.
func NewRefresher(store *sqlite.Store, handler *Handler, logger *logrus.Logger) *Refresher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Refresher{
		Store:   store,
		Handler: handler,
		Logger:  logger,
		Spec:    DefaultRefreshSpec,
		Enabled: true,
	}
}

// Start schedules the refresh job. Returns an error for invalid specs.
func (rf *Refresher) Start() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if !rf.Enabled {
		rf.Logger.Info("refresher disabled, not starting")
		return nil
	}

	rf.cron = cron.New()
	if _, err := rf.cron.AddFunc(rf.Spec, rf.refresh); err != nil {
		return err
	}
	rf.cron.Start()

	rf.Logger.WithField("spec", rf.Spec).Info("refresher started")
	return nil
}

// Stop halts the schedule and waits for any running job to finish.
func (rf *Refresher) Stop() {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.cron != nil {
		<-rf.cron.Stop().Done()
		rf.cron = nil
		rf.Logger.Info("refresher stopped")
	}
}

// RunNow triggers an immediate refresh (for testing/admin).
func (rf *Refresher) RunNow() {
	rf.refresh()
}

func (rf *Refresher) refresh() {
	ctx := context.Background()

	refreshed := 0
	skipped := 0

	for _, scenario := range scenarios {
		if _, err := rf.Store.LatestRunForScenario(ctx, scenario.ID); err != nil {
			if errors.Is(err, sqlite.ErrRunNotFound) {
				skipped++
				continue
			}
			rf.Logger.WithError(err).WithField("scenario", scenario.ID).
				Error("refresh: failed to look up prior run")
			continue
		}

		if _, _, err := rf.Handler.RunScenarioByID(ctx, scenario.ID); err != nil {
			rf.Logger.WithError(err).WithField("scenario", scenario.ID).
				Error("refresh: projection failed")
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		rf.Logger.WithFields(logrus.Fields{
			"refreshed": refreshed,
			"skipped":   skipped,
		}).Info("scenario refresh completed")
	}
}
