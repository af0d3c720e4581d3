package finance

// =============================================================================
// SNAPSHOT CLONER - Referentially independent request copies
// =============================================================================

// Clone returns a structurally identical but referentially independent
// copy of a request. Accounts, catalogues, and their entry lists are
// deep-copied; condition predicates are funcs and are shared by
// reference, while their templates are copied by value.
//
// The engine clones its input exactly once, up front, so the caller's
// request is never mutated and may be reused for an independent run.
func Clone(r *ProjectionRequest) *ProjectionRequest {
	out := &ProjectionRequest{
		StartDate:  r.StartDate,
		Accounts:   make([]*Account, len(r.Accounts)),
		Income:     append([]LedgerEntry(nil), r.Income...),
		Expenses:   append([]LedgerEntry(nil), r.Expenses...),
		Conditions: append([]Condition(nil), r.Conditions...),
	}
	for i, a := range r.Accounts {
		out.Accounts[i] = a.Clone()
	}
	return out
}
