package match

import (
	"sort"
	"strings"
)

// fieldingDismissals are dismissal kinds not credited to the bowler.
var fieldingDismissals = map[string]struct{}{
	"run out":               {},
	"retired hurt":          {},
	"retired out":           {},
	"obstructing the field": {},
}

// Facts holds the derived aggregates for one match.
type Facts struct {
	// TeamTotals maps batting team to the sum of runs.total over its
	// deliveries, across all of its innings.
	TeamTotals map[string]int
	// BatterRuns maps batter to the sum of runs off the bat.
	BatterRuns map[string]int
	// BowlerWickets maps bowler to dismissal credit: one per wicket event
	// whose kind is attributable to the bowler.
	BowlerWickets map[string]int
	// Players is the sorted roster of all known player identifiers.
	Players []string
}

// Aggregate computes Facts from a parsed match record.
func Aggregate(m *MatchRecord) Facts {
	f := Facts{
		TeamTotals:    make(map[string]int),
		BatterRuns:    make(map[string]int),
		BowlerWickets: make(map[string]int),
	}

	for _, inn := range m.Innings {
		// An innings with no deliveries still records a total of zero for
		// the batting team (forfeited or abandoned innings).
		f.TeamTotals[inn.Team] += 0
		for _, d := range inn.Deliveries {
			f.TeamTotals[inn.Team] += d.Runs.Total
			f.BatterRuns[d.Batter] += d.Runs.Batter
			for _, w := range d.Wickets {
				kind := strings.ToLower(w.Kind)
				if kind == "" {
					continue
				}
				if _, skip := fieldingDismissals[kind]; skip {
					continue
				}
				f.BowlerWickets[d.Bowler]++
			}
		}
	}

	f.Players = rosterOf(m)
	return f
}

// rosterOf prefers the explicit roster from match metadata and falls back
// to the union of player ids seen across deliveries.
func rosterOf(m *MatchRecord) []string {
	seen := make(map[string]struct{})
	for _, team := range m.Info.Players {
		for _, p := range team {
			seen[p] = struct{}{}
		}
	}
	if len(seen) == 0 {
		for _, inn := range m.Innings {
			for _, d := range inn.Deliveries {
				seen[d.Batter] = struct{}{}
				seen[d.Bowler] = struct{}{}
				if d.NonStriker != "" {
					seen[d.NonStriker] = struct{}{}
				}
			}
		}
	}

	players := make([]string, 0, len(seen))
	for p := range seen {
		players = append(players, p)
	}
	sort.Strings(players)
	return players
}
