package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"CurrencySentinel/internal/analysis"
)

// SQLiteRecorder persists analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets readers query history while a run is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id     TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			source     TEXT,
			windows    TEXT,
			row_count  INTEGER,
			first_date TEXT,
			last_date  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS observations (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            TEXT NOT NULL REFERENCES analysis_runs(run_id),
			date              TEXT NOT NULL,
			window_size       INTEGER NOT NULL,
			close             REAL,
			sma               REAL,
			sd                REAL,
			upper_band        REAL,
			lower_band        REAL,
			cci               REAL,
			sma_decision      TEXT,
			bb_decision       TEXT,
			cci_decision      TEXT,
			combined_decision TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_obs_run ON observations(run_id, window_size, date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run header and one observation per row and window in a single transaction.
func (r *SQLiteRecorder) RecordRun(rep *analysis.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	windows := make([]string, len(rep.Results))
	for i, res := range rep.Results {
		windows[i] = strconv.Itoa(res.Window)
	}
	var firstDate, lastDate string
	if n := rep.Series.Len(); n > 0 {
		firstDate = rep.Series.Points[0].Date.Format("2006-01-02")
		lastDate = rep.Series.Points[n-1].Date.Format("2006-01-02")
	}

	if _, err := tx.Exec(`INSERT INTO analysis_runs
		(run_id, timestamp, symbol, source, windows, row_count, first_date, last_date)
		VALUES (?,?,?,?,?,?,?,?)`,
		rep.RunID.String(), rep.CreatedAt.Unix(), rep.Symbol, rep.Source,
		strings.Join(windows, ","), rep.Series.Len(), firstDate, lastDate,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO observations
		(run_id, date, window_size, close, sma, sd, upper_band, lower_band, cci,
		 sma_decision, bb_decision, cci_decision, combined_decision)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare observation: %w", err)
	}
	defer stmt.Close()

	for _, res := range rep.Results {
		ind, dec := res.Indicators, res.Decisions
		for i, p := range rep.Series.Points {
			if _, err := stmt.Exec(
				rep.RunID.String(), p.Date.Format("2006-01-02"), res.Window, p.Close,
				ind.SMA[i], ind.SD[i], ind.Upper[i], ind.Lower[i], ind.CCI[i],
				string(dec.SMA[i]), string(dec.Band[i]), string(dec.CCI[i]), string(dec.Combined[i]),
			); err != nil {
				return fmt.Errorf("insert observation %s/%d: %w", p.Date.Format("2006-01-02"), res.Window, err)
			}
		}
	}
	return tx.Commit()
}

// LatestRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) LatestRuns(limit int) ([]RunSummary, error) {
	rows, err := r.db.Query(`SELECT run_id, symbol, source, windows, row_count, timestamp
		FROM analysis_runs ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var ts int64
		if err := rows.Scan(&s.RunID, &s.Symbol, &s.Source, &s.Windows, &s.Rows, &ts); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.CreatedAt = time.Unix(ts, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
