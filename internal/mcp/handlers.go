package mcp

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"cis-mcp/internal/recorder"
	"cis-mcp/internal/simulation"
	"cis-mcp/internal/stats"
)

func (s *Server) handleProjectBacklogAging(args map[string]interface{}) (interface{}, error) {
	cfg, name, err := s.resolveScenario(args)
	if err != nil {
		return nil, err
	}

	rows, err := simulation.Simulate(cfg)
	if err != nil {
		return nil, err
	}
	summary := stats.BuildProjectionSummary(rows, s.cfg.Target1GoalPct, s.cfg.Target2GoalPct)

	s.recordRun(name, cfg, summary)

	return map[string]interface{}{
		"scenario": name,
		"config":   cfg.Normalized(),
		"rows":     rows,
		"summary":  summary,
	}, nil
}

func (s *Server) handleForecastClosureRate(args map[string]interface{}) (interface{}, error) {
	cfg, name, err := s.resolveScenario(args)
	if err != nil {
		return nil, err
	}

	if !hasKey(args, "target_weeks") {
		return nil, fmt.Errorf("target_weeks is required")
	}
	targetWeeks := asInt(args["target_weeks"])
	if targetWeeks < 0 {
		return nil, fmt.Errorf("target_weeks must not be negative, got %d", targetWeeks)
	}

	targetPct := s.cfg.Target1GoalPct
	if hasKey(args, "target_pct") {
		targetPct = asFloat(args["target_pct"])
	}
	ceiling := intArg(args, "search_ceiling", s.cfg.SearchCeiling)

	rate, found, err := simulation.FindRequiredClosureRate(cfg, targetWeeks, targetPct, ceiling)
	if err != nil {
		return nil, err
	}

	if err := s.rec.RecordSearch(&recorder.SearchRecord{
		ScenarioName: name,
		TargetWeeks:  targetWeeks,
		TargetPct:    targetPct,
		Ceiling:      ceiling,
		Found:        found,
		RequiredRate: rate,
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to record closure-rate search")
	}

	res := map[string]interface{}{
		"found":                 found,
		"target_weeks":          targetWeeks,
		"target_pct":            targetPct,
		"search_ceiling":        ceiling,
		"current_weekly_closed": cfg.WeeklyClosed,
	}
	if found {
		surplus := rate - cfg.WeeklyOpened
		res["required_weekly_closed"] = rate
		res["surplus_over_intake"] = surplus
		res["advisory"] = fmt.Sprintf(
			"To reach %.0f%% under %d days in %d weeks, close %d complaints/week (currently closing %d/week). That is a net reduction of %d complaints/week beyond intake (%d/week opened).",
			targetPct, cfg.Target1Days, targetWeeks, rate, cfg.WeeklyClosed, surplus, cfg.WeeklyOpened)
	} else {
		res["advisory"] = fmt.Sprintf(
			"Cannot reach %.0f%% under %d days in %d weeks even at %d closures/week. Consider extending the timeline or reducing intake.",
			targetPct, cfg.Target1Days, targetWeeks, ceiling-1)
	}
	return res, nil
}

func (s *Server) handleAnalyzePolicyTradeoff(args map[string]interface{}) (interface{}, error) {
	cfg, name, err := s.resolveScenario(args)
	if err != nil {
		return nil, err
	}

	outcomes, err := simulation.ComparePolicies(cfg)
	if err != nil {
		return nil, err
	}

	results := make([]interface{}, 0, len(outcomes))
	for _, o := range outcomes {
		summary := stats.BuildProjectionSummary(o.Rows, s.cfg.Target1GoalPct, s.cfg.Target2GoalPct)
		run := cfg
		run.Policy = o.Policy
		s.recordRun(name, run, summary)
		results = append(results, map[string]interface{}{
			"policy":  o.Policy,
			"final":   o.Final,
			"summary": summary,
			"rows":    o.Rows,
		})
	}

	return map[string]interface{}{
		"scenario": name,
		"config":   cfg.Normalized(),
		"outcomes": results,
	}, nil
}

func (s *Server) handleScenarioSave(args map[string]interface{}) (interface{}, error) {
	name := asString(args["name"])
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	cfg, _, err := s.resolveScenario(args)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(name, cfg); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"saved":  name,
		"config": cfg,
	}, nil
}

func (s *Server) handleScenarioGet(args map[string]interface{}) (interface{}, error) {
	name := asString(args["name"])
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	cfg, err := s.store.Get(name)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"name":   name,
		"config": cfg,
	}, nil
}

func (s *Server) handleScenarioList() (interface{}, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return map[string]interface{}{
		"scenarios": names,
	}, nil
}

func (s *Server) handleScenarioDelete(args map[string]interface{}) (interface{}, error) {
	name := asString(args["name"])
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := s.store.Delete(name); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"deleted": name,
	}, nil
}

func (s *Server) recordRun(name string, cfg simulation.ScenarioConfig, summary stats.ProjectionSummary) {
	if err := s.rec.RecordRun(&recorder.RunRecord{
		ScenarioName:    name,
		Policy:          string(cfg.Policy),
		Weeks:           cfg.Weeks,
		WeeklyOpened:    cfg.WeeklyOpened,
		WeeklyClosed:    cfg.WeeklyClosed,
		InitialTotal:    summary.InitialTotal,
		FinalTotal:      summary.FinalTotal,
		FinalPctTarget1: summary.FinalPctTarget1,
		FinalPctTarget2: summary.FinalPctTarget2,
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to record projection run")
	}
}
