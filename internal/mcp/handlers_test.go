package mcp

import (
	"encoding/json"
	"strings"
	"testing"

	"cis-mcp/internal/config"
	"cis-mcp/internal/recorder"
	"cis-mcp/internal/scenario"
	"cis-mcp/internal/simulation"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := scenario.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	cfg := &config.AppConfig{
		SearchCeiling:  simulation.DefaultSearchCeiling,
		Target1GoalPct: 90,
		Target2GoalPct: 98,
	}
	return NewServer(cfg, store, recorder.NewNoopRecorder())
}

func call(t *testing.T, s *Server, name string, args map[string]interface{}) (interface{}, interface{}) {
	t.Helper()
	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("Marshal params failed: %v", err)
	}
	return s.callTool(params)
}

// resultText extracts the text payload from a tools/call result envelope.
func resultText(t *testing.T, result interface{}) string {
	t.Helper()
	env, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result is not an envelope: %T", result)
	}
	content, ok := env["content"].([]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("Expected single content entry, got %v", env["content"])
	}
	block, ok := content[0].(map[string]interface{})
	if !ok || block["type"] != "text" {
		t.Fatalf("Expected text content block, got %v", content[0])
	}
	return block["text"].(string)
}

func TestCallTool_ProjectBacklogAging(t *testing.T) {
	s := newTestServer(t)
	result, errRes := call(t, s, "project_backlog_aging", map[string]interface{}{
		"total_open":     200,
		"target_1_days":  50,
		"target_2_days":  100,
		"bucket_1":       114,
		"bucket_2":       74,
		"bucket_3":       12,
		"weekly_opened":  15,
		"weekly_closed":  20,
		"closure_policy": "oldest_first",
		"weeks":          1,
	})
	if errRes != nil {
		t.Fatalf("Expected success, got error %v", errRes)
	}

	var payload struct {
		Rows []simulation.WeekSnapshot `json:"rows"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if len(payload.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(payload.Rows))
	}
	w1 := payload.Rows[1]
	if w1.Bucket1 != 114 || w1.Bucket2 != 79 || w1.Bucket3 != 2 {
		t.Errorf("Week 1 buckets: expected (114, 79, 2), got (%d, %d, %d)", w1.Bucket1, w1.Bucket2, w1.Bucket3)
	}
}

func TestCallTool_ProjectUsesOverdueShares(t *testing.T) {
	s := newTestServer(t)
	result, errRes := call(t, s, "project_backlog_aging", map[string]interface{}{
		"total_open":        200,
		"pct_over_target_1": 43,
		"pct_over_target_2": 12,
		"weeks":             0,
	})
	if errRes != nil {
		t.Fatalf("Expected success, got error %v", errRes)
	}
	var payload struct {
		Rows []simulation.WeekSnapshot `json:"rows"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	w0 := payload.Rows[0]
	if w0.Bucket1 != 114 || w0.Bucket2 != 62 || w0.Bucket3 != 24 {
		t.Errorf("Shares 43/12: expected buckets (114, 62, 24), got (%d, %d, %d)", w0.Bucket1, w0.Bucket2, w0.Bucket3)
	}
}

func TestCallTool_ExplicitBucketsBeatShares(t *testing.T) {
	s := newTestServer(t)
	cfg, _, err := s.resolveScenario(map[string]interface{}{
		"total_open":        float64(200),
		"bucket_1":          float64(150),
		"bucket_2":          float64(30),
		"bucket_3":          float64(20),
		"pct_over_target_1": float64(43),
	})
	if err != nil {
		t.Fatalf("resolveScenario failed: %v", err)
	}
	if cfg.Bucket1Init != 150 || cfg.Bucket2Init != 30 || cfg.Bucket3Init != 20 {
		t.Errorf("Explicit buckets must win over shares, got (%d, %d, %d)", cfg.Bucket1Init, cfg.Bucket2Init, cfg.Bucket3Init)
	}
}

func TestCallTool_ForecastRequiresTargetWeeks(t *testing.T) {
	s := newTestServer(t)
	_, errRes := call(t, s, "forecast_closure_rate", map[string]interface{}{})
	errMap, ok := errRes.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected tool error, got %v", errRes)
	}
	if errMap["code"] != -32000 {
		t.Errorf("Expected code -32000, got %v", errMap["code"])
	}
	if !strings.Contains(errMap["message"].(string), "target_weeks") {
		t.Errorf("Error should name the missing argument, got %v", errMap["message"])
	}
}

func TestCallTool_ForecastInfeasible(t *testing.T) {
	s := newTestServer(t)
	result, errRes := call(t, s, "forecast_closure_rate", map[string]interface{}{
		"total_open":     200,
		"bucket_1":       50,
		"bucket_2":       50,
		"bucket_3":       100,
		"weekly_opened":  20,
		"target_weeks":   2,
		"target_pct":     95,
		"search_ceiling": 30,
	})
	if errRes != nil {
		t.Fatalf("Infeasible search is a result, not an error; got %v", errRes)
	}
	var payload struct {
		Found    bool   `json:"found"`
		Advisory string `json:"advisory"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if payload.Found {
		t.Error("Expected found=false")
	}
	if !strings.Contains(payload.Advisory, "Cannot reach") {
		t.Errorf("Expected infeasibility advisory, got %q", payload.Advisory)
	}
}

func TestCallTool_AnalyzePolicyTradeoff(t *testing.T) {
	s := newTestServer(t)
	result, errRes := call(t, s, "analyze_policy_tradeoff", map[string]interface{}{
		"weeks": 10,
	})
	if errRes != nil {
		t.Fatalf("Expected success, got error %v", errRes)
	}
	var payload struct {
		Outcomes []struct {
			Policy string `json:"policy"`
		} `json:"outcomes"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if len(payload.Outcomes) != 3 {
		t.Fatalf("Expected 3 outcomes, got %d", len(payload.Outcomes))
	}
	want := []string{"oldest_first", "newest_first", "mixed"}
	for i, o := range payload.Outcomes {
		if o.Policy != want[i] {
			t.Errorf("Outcome %d: expected %s, got %s", i, want[i], o.Policy)
		}
	}
}

func TestCallTool_ScenarioLifecycle(t *testing.T) {
	s := newTestServer(t)

	if _, errRes := call(t, s, "scenario_save", map[string]interface{}{
		"name":          "q3",
		"weekly_closed": 35,
	}); errRes != nil {
		t.Fatalf("scenario_save failed: %v", errRes)
	}

	result, errRes := call(t, s, "scenario_get", map[string]interface{}{"name": "q3"})
	if errRes != nil {
		t.Fatalf("scenario_get failed: %v", errRes)
	}
	var got struct {
		Config simulation.ScenarioConfig `json:"config"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if got.Config.WeeklyClosed != 35 {
		t.Errorf("Expected saved weekly_closed 35, got %d", got.Config.WeeklyClosed)
	}

	// Running against the saved scenario picks up its overrides.
	result, errRes = call(t, s, "project_backlog_aging", map[string]interface{}{
		"scenario": "q3",
		"weeks":    0,
	})
	if errRes != nil {
		t.Fatalf("project against saved scenario failed: %v", errRes)
	}
	var run struct {
		Scenario string                    `json:"scenario"`
		Config   simulation.ScenarioConfig `json:"config"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &run); err != nil {
		t.Fatalf("Payload is not valid JSON: %v", err)
	}
	if run.Scenario != "q3" || run.Config.WeeklyClosed != 35 {
		t.Errorf("Expected run on q3 with weekly_closed 35, got %q / %d", run.Scenario, run.Config.WeeklyClosed)
	}

	result, errRes = call(t, s, "scenario_list", nil)
	if errRes != nil {
		t.Fatalf("scenario_list failed: %v", errRes)
	}
	if !strings.Contains(resultText(t, result), "q3") {
		t.Error("scenario_list should include q3")
	}

	if _, errRes := call(t, s, "scenario_delete", map[string]interface{}{"name": "q3"}); errRes != nil {
		t.Fatalf("scenario_delete failed: %v", errRes)
	}
	if _, errRes := call(t, s, "scenario_get", map[string]interface{}{"name": "q3"}); errRes == nil {
		t.Error("Expected error getting a deleted scenario")
	}
}

func TestCallTool_UnknownTool(t *testing.T) {
	s := newTestServer(t)
	_, errRes := call(t, s, "does_not_exist", nil)
	errMap, ok := errRes.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error map, got %v", errRes)
	}
	if errMap["code"] != -32601 {
		t.Errorf("Expected code -32601, got %v", errMap["code"])
	}
}

func TestCallTool_MissingScenario(t *testing.T) {
	s := newTestServer(t)
	_, errRes := call(t, s, "project_backlog_aging", map[string]interface{}{
		"scenario": "nope",
	})
	errMap, ok := errRes.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error map, got %v", errRes)
	}
	if !strings.Contains(errMap["message"].(string), "not found") {
		t.Errorf("Expected not-found message, got %v", errMap["message"])
	}
}

func TestListToolsCoversAllHandlers(t *testing.T) {
	s := newTestServer(t)
	listing, ok := s.listTools().(map[string]interface{})
	if !ok {
		t.Fatalf("Unexpected tools/list shape: %T", s.listTools())
	}
	tools, ok := listing["tools"].([]interface{})
	if !ok {
		t.Fatalf("Unexpected tools entry: %T", listing["tools"])
	}

	want := map[string]bool{
		"project_backlog_aging":   false,
		"forecast_closure_rate":   false,
		"analyze_policy_tradeoff": false,
		"scenario_save":           false,
		"scenario_get":            false,
		"scenario_list":           false,
		"scenario_delete":         false,
	}
	for _, entry := range tools {
		tool := entry.(map[string]interface{})
		name := tool["name"].(string)
		if _, ok := want[name]; !ok {
			t.Errorf("tools/list advertises unhandled tool %q", name)
			continue
		}
		want[name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("Tool %q is handled but not advertised", name)
		}
	}
}
