/*
scenarios.go - Built-in demo scenarios

PURPOSE:

	Provides pre-built projection scenarios for demos and for exercising
	the engine end to end through the API. Each scenario is a complete
	request definition in the factory JSON schema plus a default
	termination.

AVAILABLE SCENARIOS:

	debt-snowball:     Two credit cards and a car loan paid off by rate
	bonus-season:      December bonus and quarterly overtime conditions
	fresh-start:       Single account, salary in, rent out
	investment-sweep:  Surplus swept into a dedicated index fund account

USAGE VIA API:

	POST /api/scenarios/debt-snowball/run

ADDING NEW SCENARIOS:
 1. Add a Scenario value to the 'scenarios' slice
 2. Write the request in the factory JSON schema
 3. Pick a default termination

SEE ALSO:
  - handlers.go: RunScenario handler
  - factory/request.go: JSON schema
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/projection-engine/factory"
)

var hundredThousand = decimal.NewFromInt(100000)

// Scenario pairs catalogue metadata with a runnable request definition.
type Scenario struct {
	ScenarioDTO
	RequestJSON string
	Termination factory.TerminationJSON
}

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []Scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "debt-snowball",
			Name:        "Debt Snowball",
			Description: "Two credit cards and a car loan, highest rate paid first",
		},
		RequestJSON: `{
			"start_date": "2026-01-01",
			"accounts": [
				{"name": "Checking", "salary_deposit": true, "default_investment": true},
				{"name": "Visa", "opening_amount": "-4500", "interest_rate": "0.22", "type": "stop_at_zero"},
				{"name": "Mastercard", "opening_amount": "-2200", "interest_rate": "0.18", "type": "stop_at_zero"},
				{"name": "Car Loan", "opening_amount": "-14000", "interest_rate": "0.07", "type": "stop_at_zero"}
			],
			"income": [
				{"name": "Salary", "amount": "6500", "taxable": true}
			],
			"expenses": [
				{"name": "Rent", "amount": "1800"},
				{"name": "Groceries", "amount": "600"},
				{"name": "Utilities", "amount": "250"}
			]
		}`,
		Termination: factory.TerminationJSON{Type: "months", Months: 36},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "bonus-season",
			Name:        "Bonus Season",
			Description: "December bonus and quarterly overtime landing on top of salary",
		},
		RequestJSON: `{
			"start_date": "2026-01-01",
			"accounts": [
				{"name": "Checking", "salary_deposit": true, "default_investment": true}
			],
			"income": [
				{"name": "Salary", "amount": "8000", "taxable": true}
			],
			"expenses": [
				{"name": "Rent", "amount": "2100"},
				{"name": "Living", "amount": "1400"}
			],
			"conditions": [
				{
					"trigger": {"type": "month_of_year", "month": 12},
					"entry": {"name": "Year-End Bonus", "amount": "0.15", "kind": "salary_ratio", "taxable": true, "one_off": true}
				},
				{
					"trigger": {"type": "every_n_months", "every": 3},
					"entry": {"name": "Overtime", "amount": "500", "taxable": true, "one_off": true}
				}
			]
		}`,
		Termination: factory.TerminationJSON{Type: "months", Months: 24},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "fresh-start",
			Name:        "Fresh Start",
			Description: "Single account, salary in, rent out, nothing clever",
		},
		RequestJSON: `{
			"start_date": "2026-01-01",
			"accounts": [
				{"name": "Checking", "salary_deposit": true, "default_investment": true}
			],
			"income": [
				{"name": "Salary", "amount": "5000", "taxable": true}
			],
			"expenses": [
				{"name": "Rent", "amount": "1600"}
			]
		}`,
		Termination: factory.TerminationJSON{Type: "months", Months: 12},
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "investment-sweep",
			Name:        "Investment Sweep",
			Description: "Monthly surplus swept into an index fund until 100k net worth",
		},
		RequestJSON: `{
			"start_date": "2026-01-01",
			"accounts": [
				{"name": "Checking", "salary_deposit": true},
				{"name": "Index Fund", "interest_rate": "0.05", "default_investment": true},
				{"name": "Pension", "type": "repeat", "interest_rate": "0.04",
				 "scheduled_transactions": [
					{"name": "Contribution", "amount": "0.08", "kind": "salary_ratio"}
				 ]}
			],
			"income": [
				{"name": "Salary", "amount": "9000", "taxable": true}
			],
			"expenses": [
				{"name": "Rent", "amount": "2400"},
				{"name": "Living", "amount": "1600"}
			]
		}`,
		Termination: factory.TerminationJSON{Type: "net_worth", NetWorth: hundredThousand, MaxMonths: 120},
	},
}

func findScenario(id string) *Scenario {
	for i := range scenarios {
		if scenarios[i].ID == id {
			return &scenarios[i]
		}
	}
	return nil
}
