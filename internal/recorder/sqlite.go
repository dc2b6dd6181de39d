package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run and search history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("SQLite history recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projection_runs (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			scenario_name      TEXT,
			policy             TEXT,
			weeks              INTEGER,
			weekly_opened      INTEGER,
			weekly_closed      INTEGER,
			initial_total      INTEGER,
			final_total        INTEGER,
			final_pct_target_1 REAL,
			final_pct_target_2 REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON projection_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS rate_searches (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			scenario_name TEXT,
			target_weeks  INTEGER,
			target_pct    REAL,
			ceiling       INTEGER,
			found         INTEGER,
			required_rate INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_ts ON rate_searches(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO projection_runs
		(timestamp, scenario_name, policy, weeks, weekly_opened, weekly_closed,
		 initial_total, final_total, final_pct_target_1, final_pct_target_2)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.ScenarioName, rec.Policy, rec.Weeks,
		rec.WeeklyOpened, rec.WeeklyClosed,
		rec.InitialTotal, rec.FinalTotal,
		rec.FinalPctTarget1, rec.FinalPctTarget2,
	)
	return err
}

func (r *SQLiteRecorder) RecordSearch(rec *SearchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := 0
	if rec.Found {
		found = 1
	}
	_, err := r.db.Exec(`INSERT INTO rate_searches
		(timestamp, scenario_name, target_weeks, target_pct, ceiling, found, required_rate)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.ScenarioName, rec.TargetWeeks, rec.TargetPct,
		rec.Ceiling, found, rec.RequiredRate,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
