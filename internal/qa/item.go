// Package qa synthesizes benchmark question/answer items from aggregated
// match facts and handles their persistence and sampling.
package qa

// Mode is an item's declared answer mode.
type Mode string

const (
	// ModeChoice items are answered by picking one option.
	ModeChoice Mode = "choice"
	// ModeNumber items are answered with an exact integer.
	ModeNumber Mode = "number"
)

// Category tags one of the eleven question kinds.
type Category string

const (
	CategoryTossWinner         Category = "toss_winner"
	CategoryTossDecision       Category = "toss_decision"
	CategoryMatchWinner        Category = "match_winner"
	CategoryVictoryMarginRuns  Category = "victory_margin_runs"
	CategoryVictoryMarginWkts  Category = "victory_margin_wkts"
	CategoryTeamTotal          Category = "team_total"
	CategoryTopScorerName      Category = "top_scorer_name"
	CategoryTopScorerRuns      Category = "top_scorer_runs"
	CategoryTopWicketTakerName Category = "top_wicket_taker_name"
	CategoryTopWicketTakerWkts Category = "top_wicket_taker_wickets"
	CategoryTotalMatchRuns     Category = "total_match_runs"
)

// Item is one benchmark unit. A choice item always carries non-empty
// Options and GoldSet; a number item always carries Gold. Items that would
// violate that are never emitted.
type Item struct {
	ID       string            `json:"id"`
	Category Category          `json:"type"`
	Mode     Mode              `json:"mode"`
	Prompt   string            `json:"prompt"`
	Options  []string          `json:"options,omitempty"`
	GoldSet  []string          `json:"gold_set,omitempty"`
	Gold     *int              `json:"gold,omitempty"`
	Source   string            `json:"source"`
	Meta     map[string]string `json:"meta,omitempty"`
}
