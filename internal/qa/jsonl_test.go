package qa

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	gold := 17
	return []Item{
		{
			ID:       "m1.yaml#match_winner",
			Category: CategoryMatchWinner,
			Mode:     ModeChoice,
			Prompt:   "Who won?",
			Options:  []string{"A", "B"},
			GoldSet:  []string{"A"},
			Source:   "data/m1.yaml",
		},
		{
			ID:       "m1.yaml#team_total:A",
			Category: CategoryTeamTotal,
			Mode:     ModeNumber,
			Prompt:   "How many runs did A score?",
			Gold:     &gold,
			Source:   "data/m1.yaml",
			Meta:     map[string]string{"team": "A"},
		},
	}
}

func TestWriteReadItems(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteItems(&buf, sampleItems()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"type":"match_winner"`)
	assert.Contains(t, lines[1], `"gold":17`)
	// Unset fields never serialize as nulls.
	assert.NotContains(t, lines[0], "null")
	assert.NotContains(t, lines[1], "null")

	got, err := ReadItems(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleItems(), got)
}

func TestReadItemsSkipsBlankLines(t *testing.T) {
	in := `{"id":"a#toss_winner","type":"toss_winner","mode":"choice","prompt":"p","options":["x"],"gold_set":["x"],"source":"a"}

{"id":"a#total_match_runs","type":"total_match_runs","mode":"number","prompt":"p","gold":3,"source":"a"}
`
	items, err := ReadItems(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestReadItemsBadLine(t *testing.T) {
	_, err := ReadItems(strings.NewReader("not json\n"))
	assert.Error(t, err)
}

func TestLoadSaveItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.jsonl")
	require.NoError(t, SaveItems(path, sampleItems()))

	got, err := LoadItems(path)
	require.NoError(t, err)
	assert.Equal(t, sampleItems(), got)
}

func TestLoadItemsMissingFile(t *testing.T) {
	_, err := LoadItems(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}
