package qa

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/sells-group/cricket-bench/internal/match"
)

// Synthesize derives the full QA item set for one match. Item ids are
// deterministic functions of the source file basename, the category, and a
// per-category key where one exists, so re-running on unchanged input
// yields identical ids.
func Synthesize(source string, m *match.MatchRecord, f match.Facts) []Item {
	b := builder{source: source, base: filepath.Base(source)}

	info := m.Info
	t0, t1 := info.Teams[0], info.Teams[1]
	date := m.Date()
	venue := info.Venue

	if info.Toss.Winner != "" {
		b.choice(CategoryTossWinner, "",
			fmt.Sprintf("Who won the toss in the T20 match between %s and %s on %s at %s?", t0, t1, date, venue),
			info.Teams, []string{info.Toss.Winner}, nil)
	}

	if info.Toss.Decision != "" {
		b.choice(CategoryTossDecision, "",
			fmt.Sprintf("What was the toss decision in the T20 match between %s and %s on %s at %s?", t0, t1, date, venue),
			[]string{"bat", "field"}, []string{info.Toss.Decision}, nil)
	}

	if info.Outcome.Winner != "" {
		b.choice(CategoryMatchWinner, "",
			fmt.Sprintf("Who won the match between %s and %s on %s at %s?", t0, t1, date, venue),
			info.Teams, []string{info.Outcome.Winner}, nil)
	}

	if info.Outcome.By.Runs != nil {
		b.number(CategoryVictoryMarginRuns, "",
			fmt.Sprintf("By how many runs was the match between %s and %s on %s at %s won?", t0, t1, date, venue),
			*info.Outcome.By.Runs, nil)
	}

	if info.Outcome.By.Wickets != nil {
		b.number(CategoryVictoryMarginWkts, "",
			fmt.Sprintf("By how many wickets was the match between %s and %s on %s at %s won?", t0, t1, date, venue),
			*info.Outcome.By.Wickets, nil)
	}

	for _, team := range sortedKeys(f.TeamTotals) {
		b.number(CategoryTeamTotal, team,
			fmt.Sprintf("How many runs did %s score in the match on %s at %s?", team, date, venue),
			f.TeamTotals[team], map[string]string{"team": team})
	}

	if len(f.BatterRuns) > 0 {
		goldSet := topOf(f.BatterRuns)
		b.choice(CategoryTopScorerName, "",
			fmt.Sprintf("Who scored the most runs in the match between %s and %s on %s at %s?", t0, t1, date, venue),
			f.Players, goldSet, nil)

		// One number item for the lexicographically first of the tied set,
		// so the question is unambiguous about whose runs it asks for.
		pick := goldSet[0]
		b.number(CategoryTopScorerRuns, pick,
			fmt.Sprintf("How many runs did %s score in the match between %s and %s on %s at %s?", pick, t0, t1, date, venue),
			f.BatterRuns[pick], map[string]string{"player": pick})
	}

	if len(f.BowlerWickets) > 0 {
		goldSet := topOf(f.BowlerWickets)
		b.choice(CategoryTopWicketTakerName, "",
			fmt.Sprintf("Who took the most wickets in the match between %s and %s on %s at %s?", t0, t1, date, venue),
			f.Players, goldSet, nil)

		pick := goldSet[0]
		b.number(CategoryTopWicketTakerWkts, pick,
			fmt.Sprintf("How many wickets did %s take in the match between %s and %s on %s at %s?", pick, t0, t1, date, venue),
			f.BowlerWickets[pick], map[string]string{"player": pick})
	}

	if len(f.TeamTotals) > 0 {
		total := 0
		for _, tot := range f.TeamTotals {
			total += tot
		}
		b.number(CategoryTotalMatchRuns, "",
			fmt.Sprintf("What was the total runs scored in the match between %s and %s on %s at %s (both teams combined)?", t0, t1, date, venue),
			total, nil)
	}

	return b.items
}

// builder accumulates items, enforcing the emit-only-when-complete rule.
type builder struct {
	source string
	base   string
	items  []Item
}

func (b *builder) id(cat Category, key string) string {
	if key != "" {
		return fmt.Sprintf("%s#%s:%s", b.base, cat, key)
	}
	return fmt.Sprintf("%s#%s", b.base, cat)
}

func (b *builder) choice(cat Category, key, prompt string, options, goldSet []string, meta map[string]string) {
	if len(options) == 0 || len(goldSet) == 0 {
		return
	}
	b.items = append(b.items, Item{
		ID:       b.id(cat, key),
		Category: cat,
		Mode:     ModeChoice,
		Prompt:   prompt,
		Options:  options,
		GoldSet:  goldSet,
		Source:   b.source,
		Meta:     meta,
	})
}

func (b *builder) number(cat Category, key, prompt string, gold int, meta map[string]string) {
	b.items = append(b.items, Item{
		ID:       b.id(cat, key),
		Category: cat,
		Mode:     ModeNumber,
		Prompt:   prompt,
		Gold:     &gold,
		Source:   b.source,
		Meta:     meta,
	})
}

// topOf returns every key holding the maximum value, sorted.
func topOf(counts map[string]int) []string {
	max := 0
	first := true
	for _, v := range counts {
		if first || v > max {
			max = v
			first = false
		}
	}
	var top []string
	for k, v := range counts {
		if v == max {
			top = append(top, k)
		}
	}
	sort.Strings(top)
	return top
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
