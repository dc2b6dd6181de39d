package simulation

import (
	"errors"
	"fmt"
)

// ErrThresholdOrdering is returned when the two age thresholds are not strictly
// increasing. The aging-rate formulas divide by the span between them, so a
// violating scenario must never reach the stepping loop.
var ErrThresholdOrdering = errors.New("target_2_days must be greater than target_1_days")

// ScenarioConfig describes one backlog projection scenario. It is treated as
// immutable for the life of a run; Simulate works on its own copy of the state.
type ScenarioConfig struct {
	TotalOpen    int           `json:"total_open" yaml:"total_open"`
	Target1Days  int           `json:"target_1_days" yaml:"target_1_days"`
	Target2Days  int           `json:"target_2_days" yaml:"target_2_days"`
	Bucket1Init  int           `json:"bucket_1_init" yaml:"bucket_1_init"`
	Bucket2Init  int           `json:"bucket_2_init" yaml:"bucket_2_init"`
	Bucket3Init  int           `json:"bucket_3_init" yaml:"bucket_3_init"`
	WeeklyOpened int           `json:"weekly_opened" yaml:"weekly_opened"`
	WeeklyClosed int           `json:"weekly_closed" yaml:"weekly_closed"`
	Policy       ClosurePolicy `json:"closure_policy" yaml:"closure_policy"`
	Weeks        int           `json:"weeks" yaml:"weeks"`
}

// Validate rejects scenarios the engine cannot run. It does NOT reject initial
// buckets that fail to sum to TotalOpen; see Normalized for that reconciliation.
func (c ScenarioConfig) Validate() error {
	if c.Target1Days <= 0 {
		return fmt.Errorf("target_1_days must be positive, got %d", c.Target1Days)
	}
	if c.Target2Days <= c.Target1Days {
		return fmt.Errorf("%w (got %d and %d)", ErrThresholdOrdering, c.Target1Days, c.Target2Days)
	}
	if c.TotalOpen < 0 {
		return fmt.Errorf("total_open must not be negative, got %d", c.TotalOpen)
	}
	if c.Bucket1Init < 0 || c.Bucket2Init < 0 || c.Bucket3Init < 0 {
		return fmt.Errorf("initial buckets must not be negative, got (%d, %d, %d)", c.Bucket1Init, c.Bucket2Init, c.Bucket3Init)
	}
	if c.WeeklyOpened < 0 {
		return fmt.Errorf("weekly_opened must not be negative, got %d", c.WeeklyOpened)
	}
	if c.WeeklyClosed < 0 {
		return fmt.Errorf("weekly_closed must not be negative, got %d", c.WeeklyClosed)
	}
	if c.Weeks < 0 {
		return fmt.Errorf("weeks must not be negative, got %d", c.Weeks)
	}
	if !c.Policy.Valid() {
		return fmt.Errorf("unknown closure policy %q", c.Policy)
	}
	return nil
}

// Normalized reconciles the initial buckets against TotalOpen. Boundaries that
// derive buckets from rounded percentages can produce counts that don't sum to
// the total; rather than failing, the third bucket is re-derived as the
// remainder (floored at zero). Documented best-effort behavior, not a silent
// correction: callers that care can compare before and after.
func (c ScenarioConfig) Normalized() ScenarioConfig {
	out := c
	rest := c.TotalOpen - c.Bucket1Init - c.Bucket2Init
	out.Bucket3Init = max(rest, 0)
	return out
}

// ScenarioFromOverdueShares builds the initial buckets the way the original
// intake form does: from the total and the percentage of items older than each
// threshold. Shares are whole percentages; counts are integer-truncated.
func ScenarioFromOverdueShares(totalOpen, pctOverTarget1, pctOverTarget2 int) (b1, b2, b3 int) {
	overT1 := totalOpen * pctOverTarget1 / 100
	overT2 := totalOpen * pctOverTarget2 / 100
	if overT2 > overT1 {
		overT2 = overT1
	}
	return totalOpen - overT1, overT1 - overT2, overT2
}

// DefaultScenario returns the stock demo scenario: 200 open complaints with
// 43% over 50 days and 12% over 100 days old, 15 opened and 20 closed per
// week, oldest-first closures over a 26-week horizon.
func DefaultScenario() ScenarioConfig {
	b1, b2, b3 := ScenarioFromOverdueShares(200, 43, 12)
	return ScenarioConfig{
		TotalOpen:    200,
		Target1Days:  50,
		Target2Days:  100,
		Bucket1Init:  b1,
		Bucket2Init:  b2,
		Bucket3Init:  b3,
		WeeklyOpened: 15,
		WeeklyClosed: 20,
		Policy:       OldestFirst,
		Weeks:        26,
	}
}
