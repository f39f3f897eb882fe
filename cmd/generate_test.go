package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodMatchYAML = `
info:
  dates: ["2010-05-02"]
  venue: Gaddafi Stadium
  teams: [India, Pakistan]
  toss:
    winner: India
    decision: bat
  outcome:
    winner: India
    by:
      runs: 6
innings:
  - India:
      deliveries:
        - 0.1:
            batsman: R Sharma
            bowler: S Afridi
            runs:
              batsman: 4
              total: 4
  - Pakistan:
      deliveries:
        - 0.1:
            batsman: B Azam
            bowler: J Bumrah
            runs:
              batsman: 1
              total: 1
`

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001.yaml"), []byte(goodMatchYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0002.yaml"), []byte("innings: {broken"), 0644))
	return dir
}

func TestGenerateCorpusSkipsMalformed(t *testing.T) {
	dir := writeCorpus(t)

	items, stats, err := generateCorpus(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 1, stats.Parsed)
	assert.Equal(t, 1, stats.Skipped)
	assert.NotEmpty(t, items)

	// Every item traces back to the one good record.
	for _, item := range items {
		assert.Contains(t, item.ID, "0001.yaml#")
	}
}

func TestGenerateCorpusEndToEnd(t *testing.T) {
	dir := writeCorpus(t)

	items, _, err := generateCorpus(dir)
	require.NoError(t, err)

	byID := make(map[string]bool, len(items))
	for _, item := range items {
		byID[item.ID] = true
	}

	assert.True(t, byID["0001.yaml#match_winner"])
	assert.True(t, byID["0001.yaml#victory_margin_runs"])
	assert.False(t, byID["0001.yaml#victory_margin_wkts"])
	assert.True(t, byID["0001.yaml#team_total:India"])
	assert.True(t, byID["0001.yaml#team_total:Pakistan"])
	assert.True(t, byID["0001.yaml#total_match_runs"])
}

func TestGenerateCorpusDeterministic(t *testing.T) {
	dir := writeCorpus(t)

	a, _, err := generateCorpus(dir)
	require.NoError(t, err)
	b, _, err := generateCorpus(dir)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateCorpusEmptyDir(t *testing.T) {
	items, stats, err := generateCorpus(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, stats.Files)
}
