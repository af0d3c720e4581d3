/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Scenarios:
    ScenarioDTO

  Projections:
    RunProjectionRequest (wraps factory.RequestJSON + TerminationJSON)
    RunResultDTO, AccountBalanceDTO

  Runs:
    RunDTO, PostingDTO

VALIDATION:
  Validation is done in handlers and the finance package, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/request.go: RequestJSON and TerminationJSON types
*/
package api

import (
	"time"

	"github.com/warp/projection-engine/factory"
	"github.com/warp/projection-engine/finance"
	"github.com/warp/projection-engine/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ScenarioDTO represents a built-in demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RunProjectionRequest is the request to run an ad-hoc projection.
type RunProjectionRequest struct {
	Label       string                  `json:"label,omitempty"`
	Request     factory.RequestJSON     `json:"request"`
	Termination factory.TerminationJSON `json:"termination"`
}

// RunResultDTO is the response after running a projection.
type RunResultDTO struct {
	RunID             string              `json:"run_id"`
	ScenarioID        string              `json:"scenario_id,omitempty"`
	Label             string              `json:"label"`
	ProjectionEndDate string              `json:"projection_end_date"`
	NetWorth          float64             `json:"net_worth"`
	Accounts          []AccountBalanceDTO `json:"accounts"`
}

// AccountBalanceDTO represents an account's closing position.
type AccountBalanceDTO struct {
	Name           string  `json:"name"`
	ClosingBalance float64 `json:"closing_balance"`
	Postings       int     `json:"postings"`
}

// RunDTO represents a persisted projection run.
type RunDTO struct {
	ID         string  `json:"id"`
	ScenarioID string  `json:"scenario_id,omitempty"`
	Label      string  `json:"label"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	NetWorth   float64 `json:"net_worth"`
	CreatedAt  string  `json:"created_at"`
}

// RunDetailDTO is a run together with its posting history.
type RunDetailDTO struct {
	Run      RunDTO       `json:"run"`
	Postings []PostingDTO `json:"postings"`
}

// PostingDTO represents one flattened ledger entry.
type PostingDTO struct {
	Account  string  `json:"account"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	PostedAt string  `json:"posted_at"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toRunDTO(run sqlite.Run) RunDTO {
	netWorth, _ := run.NetWorth.Float64()
	return RunDTO{
		ID:         run.ID,
		ScenarioID: run.ScenarioID,
		Label:      run.Label,
		StartDate:  run.StartDate.String(),
		EndDate:    run.EndDate.String(),
		NetWorth:   netWorth,
		CreatedAt:  run.CreatedAt.Format(time.RFC3339),
	}
}

func toRunDTOs(runs []sqlite.Run) []RunDTO {
	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run)
	}
	return dtos
}

func toPostingDTOs(postings []sqlite.Posting) []PostingDTO {
	dtos := make([]PostingDTO, len(postings))
	for i, p := range postings {
		amount, _ := p.Amount.Float64()
		dtos[i] = PostingDTO{
			Account:  p.Account,
			Name:     p.Name,
			Amount:   amount,
			PostedAt: p.PostedAt.String(),
		}
	}
	return dtos
}

func toAccountBalanceDTOs(req *finance.ProjectionRequest) []AccountBalanceDTO {
	dtos := make([]AccountBalanceDTO, len(req.Accounts))
	for i, account := range req.Accounts {
		balance, _ := account.Balance().Float64()
		dtos[i] = AccountBalanceDTO{
			Name:           account.Name,
			ClosingBalance: balance,
			Postings:       len(account.Transactions),
		}
	}
	return dtos
}
