package mcp

// Shared schema fragments for tools that accept a scenario either inline or by
// saved name. Inline bucket counts win over overdue shares when both are given.
func scenarioProperties() map[string]interface{} {
	return map[string]interface{}{
		"scenario":          map[string]interface{}{"type": "string", "description": "Name of a saved scenario to load. When set, the inline parameters below override individual fields of it."},
		"total_open":        map[string]interface{}{"type": "integer", "description": "Total open complaints at week 0."},
		"target_1_days":     map[string]interface{}{"type": "integer", "description": "First age threshold in days (default: 50)."},
		"target_2_days":     map[string]interface{}{"type": "integer", "description": "Second age threshold in days, must exceed target_1_days (default: 100)."},
		"pct_over_target_1": map[string]interface{}{"type": "integer", "description": "Percent of the backlog currently older than target_1_days. Used to derive the initial buckets unless explicit bucket counts are given."},
		"pct_over_target_2": map[string]interface{}{"type": "integer", "description": "Percent of the backlog currently older than target_2_days."},
		"bucket_1":          map[string]interface{}{"type": "integer", "description": "Explicit initial count aged [0, target_1_days]."},
		"bucket_2":          map[string]interface{}{"type": "integer", "description": "Explicit initial count aged (target_1_days, target_2_days]."},
		"bucket_3":          map[string]interface{}{"type": "integer", "description": "Explicit initial count aged beyond target_2_days. Reconciled against total_open if the three don't sum up."},
		"weekly_opened":     map[string]interface{}{"type": "integer", "description": "Complaints opened per week."},
		"weekly_closed":     map[string]interface{}{"type": "integer", "description": "Complaints closed per week."},
		"closure_policy":    map[string]interface{}{"type": "string", "enum": []string{"oldest_first", "newest_first", "mixed"}, "description": "Which complaints get closed first (default: oldest_first)."},
		"weeks":             map[string]interface{}{"type": "integer", "description": "Number of weeks to simulate (default: 26)."},
	}
}

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name": "project_backlog_aging",
				"description": "Deterministically project how the open-complaints backlog ages week over week under fixed intake, closure and policy settings. " +
					"Returns the full weekly table (three age buckets, total, % within each target) plus a summary with deltas and weeks-to-green. " +
					"This is a fixed-rate, integer-count model for scenario comparison, not a forecast of actual outcomes.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": scenarioProperties(),
				},
			},
			map[string]interface{}{
				"name": "forecast_closure_rate",
				"description": "Answer 'what does it take to hit green': the minimum constant weekly closure rate that brings the target-1 compliance " +
					"to the goal percentage within the given number of weeks, assuming oldest-first closures. " +
					"May legitimately report that no rate within the search ceiling suffices — report that to the user rather than inventing a rate.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": merge(scenarioProperties(), map[string]interface{}{
						"target_weeks":   map[string]interface{}{"type": "integer", "description": "Horizon in weeks within which the goal must be met."},
						"target_pct":     map[string]interface{}{"type": "number", "description": "Goal percentage for the target-1 metric (default: 90)."},
						"search_ceiling": map[string]interface{}{"type": "integer", "description": "Exclusive upper bound for the rate scan (default: 200)."},
					}),
					"required": []string{"target_weeks"},
				},
			},
			map[string]interface{}{
				"name": "analyze_policy_tradeoff",
				"description": "Run the same scenario under all three closure policies (oldest_first, newest_first, mixed) and compare their final states. " +
					"Shows how a throughput-first policy can shrink the backlog while the aging percentages get worse.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": scenarioProperties(),
				},
			},
			map[string]interface{}{
				"name":        "scenario_save",
				"description": "Save a scenario under a name for later reuse. Inline parameters are resolved exactly as in project_backlog_aging before saving.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": merge(scenarioProperties(), map[string]interface{}{
						"name": map[string]interface{}{"type": "string", "description": "Scenario name (letters, digits, '-', '_', '.')."},
					}),
					"required": []string{"name"},
				},
			},
			map[string]interface{}{
				"name":        "scenario_get",
				"description": "Load a saved scenario definition.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{"type": "string"},
					},
					"required": []string{"name"},
				},
			},
			map[string]interface{}{
				"name":        "scenario_list",
				"description": "List the names of all saved scenarios.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "scenario_delete",
				"description": "Delete a saved scenario.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{"type": "string"},
					},
					"required": []string{"name"},
				},
			},
		},
	}
}

func merge(base, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
