package simulation

// DefaultSearchCeiling bounds the closure-rate scan when the caller does not
// supply a ceiling of their own.
const DefaultSearchCeiling = 200

// FindRequiredClosureRate answers the inverse question: the minimum constant
// weekly closure rate that drives PctMeetingTarget1 to targetPct or better by
// targetWeeks. Every field of base is held fixed except WeeklyClosed and
// Weeks, and the policy is forced to OldestFirst — no weaker policy could ever
// satisfy the target at a lower rate, so searching under one would be
// pointless.
//
// Candidates run from base.WeeklyOpened (rates below intake cannot shrink the
// backlog) up to ceiling, exclusive, in ascending integer steps, with a full
// simulation per candidate. Outcome is expected to be monotonic in the rate
// but integer truncation makes that unproven, so the scan stays linear and
// exhaustive rather than binary. found is false when no candidate in range
// succeeds — a legitimate outcome, deliberately distinct from a zero rate.
func FindRequiredClosureRate(base ScenarioConfig, targetWeeks int, targetPct float64, ceiling int) (rate int, found bool, err error) {
	if ceiling <= 0 {
		ceiling = DefaultSearchCeiling
	}

	probe := base
	probe.Policy = OldestFirst
	probe.Weeks = targetWeeks

	for c := base.WeeklyOpened; c < ceiling; c++ {
		probe.WeeklyClosed = c
		rows, err := Simulate(probe)
		if err != nil {
			return 0, false, err
		}
		if rows[len(rows)-1].PctMeetingTarget1 >= targetPct {
			return c, true, nil
		}
	}
	return 0, false, nil
}
