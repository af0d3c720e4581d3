/*
handlers.go - HTTP API handlers for the projection engine

PURPOSE:
  Exposes the projection engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Scenarios:
    GET    /api/scenarios              List built-in scenarios
    POST   /api/scenarios/{id}/run     Run a built-in scenario

  Projections:
    POST   /api/projections            Run an ad-hoc projection

  Runs:
    GET    /api/runs                   List persisted runs
    GET    /api/runs/{id}              Get a run with its postings

  Admin:
    POST   /api/reset                  Wipe persisted runs (dev only)

REQUEST FLOW:
  1. Parse HTTP request
  2. Build the projection request via the factory
  3. Run the engine
  4. Persist the run and serialize the response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed JSON, factory errors, configuration errors
  - 404: Unknown scenario or run
  - 500: Storage failures

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Built-in scenario definitions
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/warp/projection-engine/factory"
	"github.com/warp/projection-engine/finance"
	"github.com/warp/projection-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Engine  *finance.Engine
	Factory *factory.RequestFactory
	Logger  *logrus.Logger

	// now is swappable for deterministic run ids in tests.
	now func() time.Time
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		Store:   store,
		Engine:  &finance.Engine{},
		Factory: factory.NewRequestFactory(),
		Logger:  logger,
		now:     time.Now,
	}
}

// =============================================================================
// SCENARIO ENDPOINTS
// =============================================================================

// ListScenarios returns the built-in scenario catalogue.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario runs a built-in scenario and persists the result.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scenario := findScenario(id)
	if scenario == nil {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	run, resp, err := h.RunScenarioByID(r.Context(), scenario.ID)
	if err != nil {
		h.writeProjectionError(w, err)
		return
	}

	netWorth, _ := run.NetWorth.Float64()
	writeJSON(w, http.StatusOK, RunResultDTO{
		RunID:             run.ID,
		ScenarioID:        run.ScenarioID,
		Label:             run.Label,
		ProjectionEndDate: run.EndDate.String(),
		NetWorth:          netWorth,
		Accounts:          toAccountBalanceDTOs(resp.AugmentedRequest),
	})
}

// RunScenarioByID runs a built-in scenario outside the HTTP layer.
// Used by the handler above and by the cron refresher.
func (h *Handler) RunScenarioByID(ctx context.Context, scenarioID string) (*sqlite.Run, *finance.ProjectionResponse, error) {
	scenario := findScenario(scenarioID)
	if scenario == nil {
		return nil, nil, fmt.Errorf("unknown scenario %q", scenarioID)
	}

	req, err := h.Factory.ParseRequest(scenario.RequestJSON)
	if err != nil {
		return nil, nil, err
	}
	cont, err := h.Factory.BuildContinue(scenario.Termination)
	if err != nil {
		return nil, nil, err
	}

	resp, err := h.Engine.Project(req, cont)
	if err != nil {
		return nil, nil, err
	}

	run := sqlite.Run{
		ID:          h.newRunID(),
		ScenarioID:  scenario.ID,
		Label:       scenario.Name,
		StartDate:   req.StartDate,
		EndDate:     resp.ProjectionEndDate,
		NetWorth:    resp.NetWorth,
		RequestJSON: scenario.RequestJSON,
		CreatedAt:   h.now().UTC(),
	}
	if err := h.Store.SaveRun(ctx, run, sqlite.FlattenPostings(run.ID, resp.AugmentedRequest)); err != nil {
		return nil, nil, fmt.Errorf("failed to persist run: %w", err)
	}

	h.Logger.WithFields(logrus.Fields{
		"scenario":  scenario.ID,
		"run_id":    run.ID,
		"end_date":  run.EndDate.String(),
		"net_worth": run.NetWorth.String(),
	}).Info("projection run completed")

	return &run, resp, nil
}

// =============================================================================
// PROJECTION ENDPOINT
// =============================================================================

// RunProjection runs an ad-hoc projection from a JSON request body.
func (h *Handler) RunProjection(w http.ResponseWriter, r *http.Request) {
	var body RunProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req, err := h.Factory.FromJSON(body.Request)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid projection request", err)
		return
	}
	cont, err := h.Factory.BuildContinue(body.Termination)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid termination", err)
		return
	}

	resp, err := h.Engine.Project(req, cont)
	if err != nil {
		h.writeProjectionError(w, err)
		return
	}

	label := body.Label
	if label == "" {
		label = "Ad-hoc projection"
	}
	requestJSON, _ := json.Marshal(body.Request)
	run := sqlite.Run{
		ID:          h.newRunID(),
		Label:       label,
		StartDate:   req.StartDate,
		EndDate:     resp.ProjectionEndDate,
		NetWorth:    resp.NetWorth,
		RequestJSON: string(requestJSON),
		CreatedAt:   h.now().UTC(),
	}
	if err := h.Store.SaveRun(r.Context(), run, sqlite.FlattenPostings(run.ID, resp.AugmentedRequest)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist run", err)
		return
	}

	netWorth, _ := run.NetWorth.Float64()
	writeJSON(w, http.StatusOK, RunResultDTO{
		RunID:             run.ID,
		Label:             run.Label,
		ProjectionEndDate: run.EndDate.String(),
		NetWorth:          netWorth,
		Accounts:          toAccountBalanceDTOs(resp.AugmentedRequest),
	})
}

// =============================================================================
// RUN ENDPOINTS
// =============================================================================

// ListRuns returns all persisted runs, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}
	writeJSON(w, http.StatusOK, toRunDTOs(runs))
}

// GetRun returns a run with its full posting history.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if errors.Is(err, sqlite.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load run", err)
		return
	}

	postings, err := h.Store.Postings(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load postings", err)
		return
	}

	writeJSON(w, http.StatusOK, RunDetailDTO{
		Run:      toRunDTO(*run),
		Postings: toPostingDTOs(postings),
	})
}

// ResetDatabase wipes all persisted runs. Dev/demo only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) newRunID() string {
	return fmt.Sprintf("run-%d", h.now().UTC().UnixNano())
}

func (h *Handler) writeProjectionError(w http.ResponseWriter, err error) {
	if finance.IsConfigError(err) {
		writeError(w, http.StatusBadRequest, "Invalid projection configuration", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Projection failed", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
