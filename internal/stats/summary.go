package stats

import (
	"fmt"
	"math"

	"cis-mcp/internal/simulation"
)

// Default "green" goals for the two compliance metrics, matching the targets
// the reporting dashboard draws as threshold lines.
const (
	DefaultTarget1GoalPct = 90.0
	DefaultTarget2GoalPct = 98.0
)

// ProjectionSummary condenses a snapshot trajectory into the headline numbers
// a scenario comparison needs: where each metric started, where it ended, and
// how long it takes to go green.
type ProjectionSummary struct {
	InitialPctTarget1 float64 `json:"initial_pct_target_1"`
	FinalPctTarget1   float64 `json:"final_pct_target_1"`
	DeltaPctTarget1   float64 `json:"delta_pct_target_1"`
	InitialPctTarget2 float64 `json:"initial_pct_target_2"`
	FinalPctTarget2   float64 `json:"final_pct_target_2"`
	DeltaPctTarget2   float64 `json:"delta_pct_target_2"`
	InitialTotal      int     `json:"initial_total_open"`
	FinalTotal        int     `json:"final_total_open"`
	DeltaTotal        int     `json:"delta_total_open"`
	Target1GoalPct    float64 `json:"target_1_goal_pct"`
	Target2GoalPct    float64 `json:"target_2_goal_pct"`
	// First week index at which the metric meets its goal; nil when the goal
	// is never reached within the horizon.
	WeeksToTarget1Goal *int   `json:"weeks_to_target_1_goal,omitempty"`
	WeeksToTarget2Goal *int   `json:"weeks_to_target_2_goal,omitempty"`
	Interpretation     string `json:"interpretation,omitempty"`
}

// BuildProjectionSummary derives the summary from an ordered snapshot series.
// Percentages are rounded to one decimal for display; the rows themselves are
// left untouched. Zero or negative goals fall back to the defaults.
func BuildProjectionSummary(rows []simulation.WeekSnapshot, goal1, goal2 float64) ProjectionSummary {
	if goal1 <= 0 {
		goal1 = DefaultTarget1GoalPct
	}
	if goal2 <= 0 {
		goal2 = DefaultTarget2GoalPct
	}
	if len(rows) == 0 {
		return ProjectionSummary{Target1GoalPct: goal1, Target2GoalPct: goal2}
	}

	first := rows[0]
	last := rows[len(rows)-1]

	s := ProjectionSummary{
		InitialPctTarget1: round1(first.PctMeetingTarget1),
		FinalPctTarget1:   round1(last.PctMeetingTarget1),
		DeltaPctTarget1:   round1(last.PctMeetingTarget1 - first.PctMeetingTarget1),
		InitialPctTarget2: round1(first.PctMeetingTarget2),
		FinalPctTarget2:   round1(last.PctMeetingTarget2),
		DeltaPctTarget2:   round1(last.PctMeetingTarget2 - first.PctMeetingTarget2),
		InitialTotal:      first.TotalOpen,
		FinalTotal:        last.TotalOpen,
		DeltaTotal:        last.TotalOpen - first.TotalOpen,
		Target1GoalPct:    goal1,
		Target2GoalPct:    goal2,
	}

	s.WeeksToTarget1Goal = firstWeekMeeting(rows, goal1, func(r simulation.WeekSnapshot) float64 { return r.PctMeetingTarget1 })
	s.WeeksToTarget2Goal = firstWeekMeeting(rows, goal2, func(r simulation.WeekSnapshot) float64 { return r.PctMeetingTarget2 })
	s.Interpretation = interpret(s)

	return s
}

func firstWeekMeeting(rows []simulation.WeekSnapshot, goal float64, metric func(simulation.WeekSnapshot) float64) *int {
	for _, r := range rows {
		if metric(r) >= goal {
			week := r.Week
			return &week
		}
	}
	return nil
}

func interpret(s ProjectionSummary) string {
	switch {
	case s.WeeksToTarget1Goal != nil:
		return fmt.Sprintf("Backlog reaches %.0f%% within target 1 at week %d.", s.Target1GoalPct, *s.WeeksToTarget1Goal)
	case s.DeltaPctTarget1 > 0:
		return fmt.Sprintf("Improving, but %.0f%% within target 1 is not reached inside the horizon (final: %.1f%%).", s.Target1GoalPct, s.FinalPctTarget1)
	case s.DeltaPctTarget1 < 0:
		return fmt.Sprintf("Degrading: the target-1 compliance drops from %.1f%% to %.1f%% over the horizon.", s.InitialPctTarget1, s.FinalPctTarget1)
	default:
		return "Holding steady: the target-1 compliance does not move over the horizon."
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
