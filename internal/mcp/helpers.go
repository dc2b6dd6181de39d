package mcp

import (
	"fmt"

	"cis-mcp/internal/simulation"
)

func hasKey(args map[string]interface{}, key string) bool {
	_, ok := args[key]
	return ok
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func asInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		var res int
		fmt.Sscanf(val, "%d", &res)
		return res
	default:
		return 0
	}
}

func asFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		var res float64
		fmt.Sscanf(val, "%f", &res)
		return res
	default:
		return 0
	}
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key]; ok {
		return asInt(v)
	}
	return fallback
}

// resolveScenario turns tool arguments into a runnable ScenarioConfig. The
// base is either a saved scenario (when "scenario" names one) or the stock
// default; inline parameters override individual fields on top of it.
// Initial buckets resolve in priority order: explicit bucket counts, then
// overdue-share percentages, then whatever the base carried (reconciled
// against total_open by the engine).
func (s *Server) resolveScenario(args map[string]interface{}) (simulation.ScenarioConfig, string, error) {
	cfg := simulation.DefaultScenario()
	name := asString(args["scenario"])
	if name != "" {
		loaded, err := s.store.Get(name)
		if err != nil {
			return simulation.ScenarioConfig{}, "", err
		}
		cfg = loaded
	}

	cfg.TotalOpen = intArg(args, "total_open", cfg.TotalOpen)
	cfg.Target1Days = intArg(args, "target_1_days", cfg.Target1Days)
	cfg.Target2Days = intArg(args, "target_2_days", cfg.Target2Days)
	cfg.WeeklyOpened = intArg(args, "weekly_opened", cfg.WeeklyOpened)
	cfg.WeeklyClosed = intArg(args, "weekly_closed", cfg.WeeklyClosed)
	cfg.Weeks = intArg(args, "weeks", cfg.Weeks)

	if hasKey(args, "closure_policy") {
		policy, err := simulation.ParseClosurePolicy(asString(args["closure_policy"]))
		if err != nil {
			return simulation.ScenarioConfig{}, "", err
		}
		cfg.Policy = policy
	}

	switch {
	case hasKey(args, "bucket_1") || hasKey(args, "bucket_2") || hasKey(args, "bucket_3"):
		cfg.Bucket1Init = intArg(args, "bucket_1", cfg.Bucket1Init)
		cfg.Bucket2Init = intArg(args, "bucket_2", cfg.Bucket2Init)
		cfg.Bucket3Init = intArg(args, "bucket_3", cfg.Bucket3Init)
	case hasKey(args, "pct_over_target_1") || hasKey(args, "pct_over_target_2"):
		p1 := intArg(args, "pct_over_target_1", 0)
		p2 := intArg(args, "pct_over_target_2", 0)
		if p1 < 0 || p1 > 100 || p2 < 0 || p2 > 100 {
			return simulation.ScenarioConfig{}, "", fmt.Errorf("overdue shares must be between 0 and 100, got %d and %d", p1, p2)
		}
		cfg.Bucket1Init, cfg.Bucket2Init, cfg.Bucket3Init = simulation.ScenarioFromOverdueShares(cfg.TotalOpen, p1, p2)
	}

	if err := cfg.Validate(); err != nil {
		return simulation.ScenarioConfig{}, "", err
	}
	return cfg, name, nil
}
