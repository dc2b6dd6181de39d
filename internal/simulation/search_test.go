package simulation

import "testing"

func TestFindRequiredClosureRate_Soundness(t *testing.T) {
	base := DefaultScenario()
	targetWeeks, targetPct := 12, 90.0

	rate, found, err := FindRequiredClosureRate(base, targetWeeks, targetPct, 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if !found {
		t.Fatal("Expected a feasible rate for the default scenario within the default ceiling")
	}
	if rate < base.WeeklyOpened {
		t.Fatalf("Rate %d is below weekly intake %d; such candidates must never be scanned", rate, base.WeeklyOpened)
	}

	// The returned rate reaches the target and every smaller candidate falls
	// short, so the search really is the minimum.
	probe := base
	probe.Policy = OldestFirst
	probe.Weeks = targetWeeks
	for c := base.WeeklyOpened; c <= rate; c++ {
		probe.WeeklyClosed = c
		rows, err := Simulate(probe)
		if err != nil {
			t.Fatalf("Simulate at rate %d failed: %v", c, err)
		}
		final := rows[len(rows)-1].PctMeetingTarget1
		if c == rate && final < targetPct {
			t.Errorf("Returned rate %d only reaches %f%%, below target %f%%", c, final, targetPct)
		}
		if c < rate && final >= targetPct {
			t.Errorf("Rate %d below the returned minimum already reaches %f%%", c, final)
		}
	}
}

func TestFindRequiredClosureRate_Infeasible(t *testing.T) {
	base := ScenarioConfig{
		TotalOpen:    200,
		Target1Days:  50,
		Target2Days:  100,
		Bucket1Init:  50,
		Bucket2Init:  50,
		Bucket3Init:  100,
		WeeklyOpened: 20,
		Policy:       OldestFirst,
	}
	rate, found, err := FindRequiredClosureRate(base, 2, 95, 30)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if found {
		t.Errorf("Expected infeasible search, got rate %d", rate)
	}
	if rate != 0 {
		t.Errorf("Expected zero rate on infeasible search, got %d", rate)
	}
}

func TestFindRequiredClosureRate_IgnoresBasePolicy(t *testing.T) {
	base := DefaultScenario()
	base.Policy = NewestFirst

	rateA, foundA, err := FindRequiredClosureRate(base, 12, 90, 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	base.Policy = OldestFirst
	rateB, foundB, err := FindRequiredClosureRate(base, 12, 90, 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if foundA != foundB || rateA != rateB {
		t.Errorf("Search must force oldest-first: got (%d, %t) vs (%d, %t)", rateA, foundA, rateB, foundB)
	}
}

func TestFindRequiredClosureRate_InvalidBase(t *testing.T) {
	base := DefaultScenario()
	base.Target2Days = base.Target1Days
	if _, _, err := FindRequiredClosureRate(base, 12, 90, 0); err == nil {
		t.Error("Expected error for invalid base scenario, got nil")
	}
}
