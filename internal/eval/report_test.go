package eval

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/cricket-bench/internal/qa"
)

func reportResults() []Result {
	return []Result{
		{
			Index: 1, Category: qa.CategoryMatchWinner, Source: "m.yaml",
			Prompt: "Who won?", Gold: json.RawMessage(`["India"]`),
			Pred: "India", Answered: true, Correct: true,
			RawOutput: `{"choice":"India"}`,
		},
		{
			Index: 2, Category: qa.CategoryTeamTotal, Source: "m.yaml",
			Prompt: "How many runs?", Gold: json.RawMessage(`160`),
			Pred: "150", Answered: true, Correct: false, Hallucination: true,
			RawOutput: `{"number":150}`,
		},
		{
			Index: 3, Category: qa.CategoryTossWinner, Source: "m.yaml",
			Prompt: "Who won the toss?", Gold: json.RawMessage(`["Pakistan"]`),
			Answered: false, RawOutput: "ERROR: timeout",
		},
	}
}

func TestWriteResultsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outputs.jsonl")
	require.NoError(t, WriteResultsJSONL(path, reportResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var first Result
	lines := splitLines(data)
	require.Len(t, lines, 3)
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, reportResults()[0], first)
}

func TestWriteItemsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, WriteItemsCSV(path, reportResults()))

	rows := readCSV(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, itemColumns, rows[0])
	assert.Equal(t, []string{"1", "match_winner", "m.yaml", "1", "1", "0", `["India"]`, "India", "Who won?", `{"choice":"India"}`}, rows[1])
	assert.Equal(t, "0", rows[3][3]) // unanswered
}

func TestWriteWrongCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.csv")
	require.NoError(t, WriteWrongCSV(path, reportResults()))

	rows := readCSV(t, path)
	// Header plus only the answered-but-incorrect row.
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "team_total", rows[1][1])
	assert.Equal(t, "150", rows[1][4])
}

func TestWriteItemsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.xlsx")
	require.NoError(t, WriteItemsXLSX(path, reportResults()))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, "idx", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "match_winner", sheet.Rows[1].Cells[1].Value)
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	s := Summarize(reportResults())
	s.OutputsJSONL = "out/outputs.jsonl"
	s.ItemsFile = "out/items.csv"
	s.WrongCSV = "out/wrong.csv"
	require.NoError(t, WriteSummary(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 3, got.N)
	assert.Equal(t, "out/wrong.csv", got.WrongCSV)
	assert.InDelta(t, 2.0/3.0, got.AnswerRate, 1e-9)
	assert.Contains(t, got.ByCategory, qa.CategoryMatchWinner)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
