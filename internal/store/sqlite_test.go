package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cricket-bench/internal/eval"
	"github.com/sells-group/cricket-bench/internal/qa"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRun() (*Run, []eval.Result) {
	results := []eval.Result{
		{
			Index: 1, Category: qa.CategoryMatchWinner, Source: "m.yaml",
			Prompt: "Who won?", Gold: json.RawMessage(`["India"]`),
			Pred: "India", Answered: true, Correct: true,
			RawOutput: `{"choice":"India"}`,
		},
		{
			Index: 2, Category: qa.CategoryTeamTotal, Source: "m.yaml",
			Prompt: "How many runs?", Gold: json.RawMessage(`160`),
			Answered: false, RawOutput: "ERROR: timeout",
		},
	}
	run := &Run{
		Model:   "claude-haiku-4-5-20251001",
		QAPath:  "t20_qa_sample.jsonl",
		OutDir:  "out_eval",
		Summary: eval.Summarize(results),
	}
	return run, results
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, results := testRun()
	require.NoError(t, s.SaveRun(ctx, run, results))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, gotResults, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Model, got.Model)
	assert.Equal(t, run.QAPath, got.QAPath)
	assert.Equal(t, 2, got.Summary.N)
	assert.Equal(t, results, gotResults)
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.GetRun(context.Background(), "missing")
	assert.Error(t, err)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run, results := testRun()
		require.NoError(t, s.SaveRun(ctx, run, results))
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
	for _, run := range runs {
		assert.Equal(t, 2, run.Summary.N)
	}

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}
