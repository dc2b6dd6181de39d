// Package recorder persists projection and search outcomes so scenario
// exploration leaves an auditable trail that external dashboards can query.
package recorder

// RunRecord captures the headline outcome of one projection run.
type RunRecord struct {
	ScenarioName    string  // empty for ad-hoc (inline) scenarios
	Policy          string
	Weeks           int
	WeeklyOpened    int
	WeeklyClosed    int
	InitialTotal    int
	FinalTotal      int
	FinalPctTarget1 float64
	FinalPctTarget2 float64
}

// SearchRecord captures the outcome of one closure-rate search.
type SearchRecord struct {
	ScenarioName string
	TargetWeeks  int
	TargetPct    float64
	Ceiling      int
	Found        bool
	RequiredRate int // meaningful only when Found
}

// Recorder persists historical outcomes for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordSearch(rec *SearchRecord) error
	Close() error
}
