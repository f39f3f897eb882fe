// Package store persists evaluation runs for later inspection.
package store

import (
	"context"
	"time"

	"github.com/sells-group/cricket-bench/internal/eval"
)

// Run is one persisted evaluation run.
type Run struct {
	ID        string       `json:"id"`
	Model     string       `json:"model"`
	QAPath    string       `json:"qa_path"`
	OutDir    string       `json:"out_dir"`
	Summary   eval.Summary `json:"summary"`
	CreatedAt time.Time    `json:"created_at"`
}

// Store defines the persistence interface for evaluation runs.
type Store interface {
	// SaveRun assigns the run an id and stores it with its results.
	SaveRun(ctx context.Context, run *Run, results []eval.Result) error
	GetRun(ctx context.Context, id string) (*Run, []eval.Result, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
