/*
Package factory provides JSON to Go projection-request conversion.

PURPOSE:
  Converts JSON scenario definitions into finance.ProjectionRequest
  values and termination predicates. This enables scenario configuration
  without code changes - a scenario can be defined in JSON, stored, or
  posted to the API, and the factory creates the proper Go structs.

JSON SCHEMA:
  {
    "start_date": "2026-01-01",
    "accounts": [
      {
        "name": "Checking",
        "salary_deposit": true,
        "default_investment": true
      },
      {
        "name": "Car Loan",
        "opening_amount": "-12000",
        "interest_rate": "0.07",
        "type": "stop_at_zero"
      }
    ],
    "income": [
      {"name": "Salary", "amount": "10000", "taxable": true}
    ],
    "expenses": [
      {"name": "Rent", "amount": "2000"}
    ],
    "conditions": [
      {
        "trigger": {"type": "month_of_year", "month": 12},
        "entry": {"name": "Year-End Bonus", "amount": "0.1",
                  "kind": "salary_ratio", "taxable": true, "one_off": true}
      }
    ]
  }

TRIGGER TYPES:
  month_of_year    fires every year in the given calendar month (1-12)
  month_index      fires in exactly one simulated month (0-based)
  every_n_months   fires on month indexes divisible by n (0, n, 2n, ...)
  after_date       fires every month from the given date onward

TERMINATION SCHEMA:
  {"type": "months",    "months": 24}
  {"type": "date",      "date": "2030-01-01"}
  {"type": "net_worth", "net_worth": "100000"}
  An optional "max_months" bounds any of the three.

KEY FEATURES:
  - Validates structure and enumerations
  - Amount kinds default to absolute; account types to standard
  - Trigger predicates are pure functions of month index and date

USAGE:
  f := factory.NewRequestFactory()
  req, err := f.ParseRequest(jsonStr)
  cont, err := f.BuildContinue(termination)
  resp, err := engine.Project(req, cont)

SEE ALSO:
  - finance/request.go: Request type and validation
  - api/scenarios.go: Built-in scenario definitions using this schema
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/projection-engine/finance"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RequestJSON is the JSON representation of a projection request.
type RequestJSON struct {
	StartDate  string          `json:"start_date"`
	Accounts   []AccountJSON   `json:"accounts"`
	Income     []EntryJSON     `json:"income"`
	Expenses   []EntryJSON     `json:"expenses,omitempty"`
	Conditions []ConditionJSON `json:"conditions,omitempty"`
}

// AccountJSON represents an account definition.
type AccountJSON struct {
	Name              string          `json:"name"`
	OpeningAmount     decimal.Decimal `json:"opening_amount"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	Type              string          `json:"type,omitempty"` // standard, repeat, stop_at_zero
	CreditLimit       decimal.Decimal `json:"credit_limit"`
	ExpirationDate    string          `json:"expiration_date,omitempty"`
	SalaryDeposit     bool            `json:"salary_deposit,omitempty"`
	DefaultInvestment bool            `json:"default_investment,omitempty"`
	Scheduled         []EntryJSON     `json:"scheduled_transactions,omitempty"`
}

// EntryJSON represents a ledger entry template.
type EntryJSON struct {
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Kind    string          `json:"kind,omitempty"` // absolute (default), salary_ratio
	Taxable bool            `json:"taxable,omitempty"`
	OneOff  bool            `json:"one_off,omitempty"`
}

// ConditionJSON pairs a declarative trigger with the entry it injects.
type ConditionJSON struct {
	Trigger TriggerJSON `json:"trigger"`
	Entry   EntryJSON   `json:"entry"`
}

// TriggerJSON is a declarative condition predicate.
type TriggerJSON struct {
	Type  string `json:"type"`
	Month int    `json:"month,omitempty"` // month_of_year: 1-12
	Index int    `json:"index,omitempty"` // month_index: 0-based
	Every int    `json:"every,omitempty"` // every_n_months
	Date  string `json:"date,omitempty"`  // after_date
}

// TerminationJSON is a declarative termination predicate.
type TerminationJSON struct {
	Type      string          `json:"type"` // months, date, net_worth
	Months    int             `json:"months,omitempty"`
	Date      string          `json:"date,omitempty"`
	NetWorth  decimal.Decimal `json:"net_worth"`
	MaxMonths int             `json:"max_months,omitempty"`
}

// =============================================================================
// REQUEST FACTORY
// =============================================================================

// RequestFactory converts JSON scenarios to finance values.
type RequestFactory struct{}

// NewRequestFactory creates a new request factory.
func NewRequestFactory() *RequestFactory {
	return &RequestFactory{}
}

// ParseRequest parses a JSON string into a ProjectionRequest.
func (f *RequestFactory) ParseRequest(jsonStr string) (*finance.ProjectionRequest, error) {
	var rj RequestJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}
	return f.FromJSON(rj)
}

// FromJSON converts RequestJSON to a finance.ProjectionRequest.
func (f *RequestFactory) FromJSON(rj RequestJSON) (*finance.ProjectionRequest, error) {
	start, err := finance.ParseTimePoint(rj.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q: %w", rj.StartDate, err)
	}

	req := &finance.ProjectionRequest{StartDate: start}

	for _, aj := range rj.Accounts {
		account, err := f.buildAccount(aj)
		if err != nil {
			return nil, err
		}
		req.Accounts = append(req.Accounts, account)
	}

	if req.Income, err = buildEntries(rj.Income); err != nil {
		return nil, err
	}
	if req.Expenses, err = buildEntries(rj.Expenses); err != nil {
		return nil, err
	}

	for i, cj := range rj.Conditions {
		pred, err := f.BuildTrigger(cj.Trigger)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		template, err := buildEntry(cj.Entry)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		req.Conditions = append(req.Conditions, finance.Condition{When: pred, Template: template})
	}

	return req, nil
}

func (f *RequestFactory) buildAccount(aj AccountJSON) (*finance.Account, error) {
	accountType, err := parseAccountType(aj.Type)
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", aj.Name, err)
	}

	account := &finance.Account{
		Name:                aj.Name,
		OpeningAmount:       aj.OpeningAmount,
		InterestRate:        aj.InterestRate,
		Type:                accountType,
		CreditLimit:         aj.CreditLimit,
		IsSalaryDeposit:     aj.SalaryDeposit,
		IsDefaultInvestment: aj.DefaultInvestment,
	}
	if aj.ExpirationDate != "" {
		exp, err := finance.ParseTimePoint(aj.ExpirationDate)
		if err != nil {
			return nil, fmt.Errorf("account %q: invalid expiration_date: %w", aj.Name, err)
		}
		account.ExpirationDate = &exp
	}
	if account.Scheduled, err = buildEntries(aj.Scheduled); err != nil {
		return nil, fmt.Errorf("account %q: %w", aj.Name, err)
	}
	return account, nil
}

// BuildTrigger converts a declarative trigger into a predicate.
func (f *RequestFactory) BuildTrigger(tj TriggerJSON) (finance.Predicate, error) {
	switch tj.Type {
	case "month_of_year":
		if tj.Month < 1 || tj.Month > 12 {
			return nil, fmt.Errorf("month_of_year trigger: month %d out of range", tj.Month)
		}
		month := time.Month(tj.Month)
		return func(_ int, date finance.TimePoint) bool {
			return date.Month() == month
		}, nil
	case "month_index":
		index := tj.Index
		return func(monthIndex int, _ finance.TimePoint) bool {
			return monthIndex == index
		}, nil
	case "every_n_months":
		if tj.Every <= 0 {
			return nil, fmt.Errorf("every_n_months trigger: every must be positive, got %d", tj.Every)
		}
		every := tj.Every
		return func(monthIndex int, _ finance.TimePoint) bool {
			return monthIndex%every == 0
		}, nil
	case "after_date":
		from, err := finance.ParseTimePoint(tj.Date)
		if err != nil {
			return nil, fmt.Errorf("after_date trigger: %w", err)
		}
		return func(_ int, date finance.TimePoint) bool {
			return date.AfterOrEqual(from)
		}, nil
	default:
		return nil, fmt.Errorf("unknown trigger type %q", tj.Type)
	}
}

// BuildContinue converts a declarative termination into a predicate.
func (f *RequestFactory) BuildContinue(tj TerminationJSON) (finance.ContinuePredicate, error) {
	var pred finance.ContinuePredicate
	switch tj.Type {
	case "months":
		if tj.Months <= 0 {
			return nil, fmt.Errorf("months termination: months must be positive, got %d", tj.Months)
		}
		pred = finance.ContinueForMonths(tj.Months)
	case "date":
		target, err := finance.ParseTimePoint(tj.Date)
		if err != nil {
			return nil, fmt.Errorf("date termination: %w", err)
		}
		pred = finance.ContinueUntilDate(target)
	case "net_worth":
		pred = finance.ContinueUntilNetWorth(tj.NetWorth)
	default:
		return nil, fmt.Errorf("unknown termination type %q", tj.Type)
	}

	if tj.MaxMonths > 0 {
		pred = finance.CapMonths(pred, tj.MaxMonths)
	}
	return pred, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func buildEntries(ejs []EntryJSON) ([]finance.LedgerEntry, error) {
	var out []finance.LedgerEntry
	for _, ej := range ejs {
		entry, err := buildEntry(ej)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func buildEntry(ej EntryJSON) (finance.LedgerEntry, error) {
	kind, err := parseKind(ej.Kind)
	if err != nil {
		return finance.LedgerEntry{}, fmt.Errorf("entry %q: %w", ej.Name, err)
	}
	return finance.LedgerEntry{
		Name:    ej.Name,
		Amount:  ej.Amount,
		Kind:    kind,
		Taxable: ej.Taxable,
		OneOff:  ej.OneOff,
	}, nil
}

func parseKind(s string) (finance.AmountKind, error) {
	switch s {
	case "", "absolute":
		return finance.Absolute, nil
	case "salary_ratio":
		return finance.SalaryRatio, nil
	default:
		return "", fmt.Errorf("unknown amount kind %q", s)
	}
}

func parseAccountType(s string) (finance.AccountType, error) {
	switch s {
	case "", "standard":
		return finance.AccountStandard, nil
	case "repeat":
		return finance.AccountRepeat, nil
	case "stop_at_zero":
		return finance.AccountStopAtZero, nil
	default:
		return "", fmt.Errorf("unknown account type %q", s)
	}
}
