package simulation

import "golang.org/x/sync/errgroup"

// PolicyOutcome holds one policy's full trajectory for a shared scenario.
type PolicyOutcome struct {
	Policy ClosurePolicy  `json:"policy"`
	Rows   []WeekSnapshot `json:"rows"`
	Final  WeekSnapshot   `json:"final"`
}

// ComparePolicies runs the same scenario under all three closure policies and
// returns the outcomes in a fixed order (oldest-first, newest-first, mixed).
// Each Simulate call is pure and owns its state, so the three runs execute
// concurrently without any ordering dependency.
func ComparePolicies(cfg ScenarioConfig) ([]PolicyOutcome, error) {
	policies := []ClosurePolicy{OldestFirst, NewestFirst, Mixed}
	outcomes := make([]PolicyOutcome, len(policies))

	var g errgroup.Group
	for i, p := range policies {
		i, p := i, p
		g.Go(func() error {
			c := cfg
			c.Policy = p
			rows, err := Simulate(c)
			if err != nil {
				return err
			}
			outcomes[i] = PolicyOutcome{
				Policy: p,
				Rows:   rows,
				Final:  rows[len(rows)-1],
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
