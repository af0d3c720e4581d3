/*
conditions.go - Conditional event injection

PURPOSE:
  Evaluates caller-supplied predicates each month and materializes
  matching templates into the income catalogue. This is how bonuses,
  raises, and leave payouts enter the simulation.

INTRA-MONTH COMPOUNDING:
  Conditions are evaluated strictly in list order. A salary-ratio
  template resolves against the taxable-income total accumulated so far
  this month, so a taxable injection raises the base for every ratio
  injection after it in the same month. Implementations must not rely
  on evaluation order for anything beyond this compounding rule.

ONE-OFF LIFECYCLE:
  At month end every income item flagged one-off is purged from the
  catalogue, regardless of which month injected it: once present, a
  one-off item is consumed after exactly one month. Posted history is
  never touched.

SEE ALSO:
  - resolve.go: TaxableIncomeTotal
  - engine.go: Where injection and the month-end purge run
*/
package finance

// InjectConditions evaluates every condition for the month and appends
// fired templates to the income catalogue, resolved and marked Absolute.
func InjectConditions(req *ProjectionRequest, monthIndex int, date TimePoint) error {
	if len(req.Conditions) == 0 {
		return nil
	}

	salary, err := MonthSalary(req.Income)
	if err != nil {
		return err
	}
	taxable := TaxableIncomeTotal(req.Income, salary)

	for _, c := range req.Conditions {
		if c.When == nil {
			return ErrNilConditionPredicate
		}
		if !c.When(monthIndex, date) {
			continue
		}

		entry := c.Template
		if entry.Kind == SalaryRatio {
			entry.Amount = entry.Amount.Mul(taxable)
		}
		entry.Kind = Absolute
		req.Income = append(req.Income, entry)

		if entry.Taxable {
			taxable = taxable.Add(entry.Amount)
		}
	}
	return nil
}

// PurgeOneOffs removes every one-off item from the income catalogue.
// Runs once at the end of each simulated month.
func PurgeOneOffs(req *ProjectionRequest) {
	kept := req.Income[:0]
	for _, item := range req.Income {
		if !item.OneOff {
			kept = append(kept, item)
		}
	}
	req.Income = kept
}
