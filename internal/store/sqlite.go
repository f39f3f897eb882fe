package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/cricket-bench/internal/eval"
	"github.com/sells-group/cricket-bench/internal/qa"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS eval_runs (
	id         TEXT PRIMARY KEY,
	model      TEXT NOT NULL,
	qa_path    TEXT NOT NULL,
	out_dir    TEXT NOT NULL,
	summary    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS eval_results (
	run_id        TEXT NOT NULL REFERENCES eval_runs(id),
	idx           INTEGER NOT NULL,
	type          TEXT NOT NULL,
	source        TEXT NOT NULL,
	answered      INTEGER NOT NULL,
	correct       INTEGER NOT NULL,
	hallucination INTEGER NOT NULL,
	pred          TEXT NOT NULL,
	gold          TEXT NOT NULL,
	prompt        TEXT NOT NULL,
	model_raw     TEXT NOT NULL,
	PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_eval_runs_created_at ON eval_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_eval_results_run_id ON eval_results(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run, results []eval.Result) error {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal summary")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO eval_runs (id, model, qa_path, out_dir, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Model, run.QAPath, run.OutDir, string(summaryJSON), run.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert run")
	}

	for _, r := range results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO eval_results (run_id, idx, type, source, answered, correct, hallucination, pred, gold, prompt, model_raw)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, r.Index, string(r.Category), r.Source,
			boolInt(r.Answered), boolInt(r.Correct), boolInt(r.Hallucination),
			r.Pred, string(r.Gold), r.Prompt, r.RawOutput,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert result %d", r.Index)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit run")
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, []eval.Result, error) {
	var run Run
	var summaryJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, model, qa_path, out_dir, summary, created_at FROM eval_runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.Model, &run.QAPath, &run.OutDir, &summaryJSON, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, eris.Errorf("sqlite: run %s not found", id)
	}
	if err != nil {
		return nil, nil, eris.Wrapf(err, "sqlite: get run %s", id)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
		return nil, nil, eris.Wrapf(err, "sqlite: unmarshal summary for run %s", id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, type, source, answered, correct, hallucination, pred, gold, prompt, model_raw
		 FROM eval_results WHERE run_id = ? ORDER BY idx`, id,
	)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "sqlite: query results for run %s", id)
	}
	defer rows.Close()

	var results []eval.Result
	for rows.Next() {
		var r eval.Result
		var cat, gold string
		var answered, correct, hallucination int
		if err := rows.Scan(&r.Index, &cat, &r.Source, &answered, &correct, &hallucination,
			&r.Pred, &gold, &r.Prompt, &r.RawOutput); err != nil {
			return nil, nil, eris.Wrap(err, "sqlite: scan result")
		}
		r.Category = qa.Category(cat)
		r.Gold = json.RawMessage(gold)
		r.Answered = answered != 0
		r.Correct = correct != 0
		r.Hallucination = hallucination != 0
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, eris.Wrap(err, "sqlite: iterate results")
	}

	return &run, results, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, model, qa_path, out_dir, summary, created_at
		 FROM eval_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var summaryJSON string
		if err := rows.Scan(&run.ID, &run.Model, &run.QAPath, &run.OutDir, &summaryJSON, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal summary for run %s", run.ID)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return runs, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
