/*
engine.go - The month-stepping projection loop

PURPOSE:
  Composes the components of this package into the projection loop:

    clone request -> validate -> while shouldContinue:
        observe -> inject conditions -> post month -> settle -> purge
        one-offs -> advance month
    -> aggregate net worth and end date

  The loop is a plain synchronous state machine: it runs until the
  first time the predicate returns false, which is the only terminal
  condition. Malformed input fails fast before month zero; no error
  states abort a running loop.

TERMINATION:
  The predicate answers "should the simulation continue?", not "is this
  terminal". Convenience predicates cover the common shapes: run until
  a target date, run until a target net worth, run a fixed number of
  months. A predicate that never returns false runs forever; callers
  can bound any predicate with CapMonths.

OBSERVATION:
  An optional observer is invoked once per simulated month, before that
  month's postings, purely as a notification. It is an explicit field
  on the Engine, not a global subscription, so tests stay deterministic.

SEE ALSO:
  - clone.go: Snapshot isolation of the caller's request
  - request.go: Validation and response aggregation
*/
package finance

import (
	"github.com/shopspring/decimal"
)

// ContinuePredicate drives the simulation loop: the engine advances
// months while it returns true.
type ContinuePredicate func(req *ProjectionRequest, monthIndex int, date TimePoint) bool

// MonthObserver is notified once per simulated month, before that
// month's postings. Its return value is not consumed.
type MonthObserver func(req *ProjectionRequest, monthIndex int, date TimePoint)

// Engine runs projections. The zero value is ready to use.
type Engine struct {
	Observer MonthObserver
}

// Project runs the monthly simulation until shouldContinue returns
// false. The caller's request is never mutated; the returned response
// carries the fully posted clone.
func (e *Engine) Project(req *ProjectionRequest, shouldContinue ContinuePredicate) (*ProjectionResponse, error) {
	if shouldContinue == nil {
		return nil, ErrNilContinuePredicate
	}

	run := Clone(req)
	if err := run.Validate(); err != nil {
		return nil, err
	}

	monthIndex := 0
	date := run.StartDate
	for shouldContinue(run, monthIndex, date) {
		if e.Observer != nil {
			e.Observer(run, monthIndex, date)
		}
		if err := InjectConditions(run, monthIndex, date); err != nil {
			return nil, err
		}
		if err := PostMonth(run, date); err != nil {
			return nil, err
		}
		if err := Settle(run, date); err != nil {
			return nil, err
		}
		PurgeOneOffs(run)

		monthIndex++
		date = date.AddMonths(1)
	}

	return &ProjectionResponse{
		ProjectionEndDate: run.LastPostedDate(),
		NetWorth:          run.NetWorth(),
		AugmentedRequest:  run,
	}, nil
}

// ProjectUntilDate runs until the simulated date reaches the target.
func (e *Engine) ProjectUntilDate(req *ProjectionRequest, target TimePoint) (*ProjectionResponse, error) {
	return e.Project(req, ContinueUntilDate(target))
}

// ProjectUntilNetWorth runs until aggregate net worth reaches the target.
func (e *Engine) ProjectUntilNetWorth(req *ProjectionRequest, target decimal.Decimal) (*ProjectionResponse, error) {
	return e.Project(req, ContinueUntilNetWorth(target))
}

// ProjectMonths runs for exactly n months.
func (e *Engine) ProjectMonths(req *ProjectionRequest, n int) (*ProjectionResponse, error) {
	return e.Project(req, ContinueForMonths(n))
}

// =============================================================================
// CONVENIENCE PREDICATES
// =============================================================================

// ContinueUntilDate continues while the simulated date is before target.
func ContinueUntilDate(target TimePoint) ContinuePredicate {
	return func(_ *ProjectionRequest, _ int, date TimePoint) bool {
		return date.Before(target)
	}
}

// ContinueUntilNetWorth continues while aggregate net worth is below target.
func ContinueUntilNetWorth(target decimal.Decimal) ContinuePredicate {
	return func(req *ProjectionRequest, _ int, _ TimePoint) bool {
		return req.NetWorth().LessThan(target)
	}
}

// ContinueForMonths continues for exactly n months.
func ContinueForMonths(n int) ContinuePredicate {
	return func(_ *ProjectionRequest, monthIndex int, _ TimePoint) bool {
		return monthIndex < n
	}
}

// CapMonths bounds any predicate with a maximum month index, guarding
// against predicates that never return false.
func CapMonths(pred ContinuePredicate, max int) ContinuePredicate {
	return func(req *ProjectionRequest, monthIndex int, date TimePoint) bool {
		return monthIndex < max && pred(req, monthIndex, date)
	}
}
