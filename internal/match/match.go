// Package match parses ball-by-ball cricket match records and derives
// per-match aggregate facts from them.
package match

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// MatchRecord is one completed match, immutable once parsed.
type MatchRecord struct {
	Info    Info      `yaml:"info"`
	Innings []Innings `yaml:"innings"`
}

// Info holds match metadata.
type Info struct {
	Dates   []string            `yaml:"dates"`
	Venue   string              `yaml:"venue"`
	Teams   []string            `yaml:"teams"`
	Toss    Toss                `yaml:"toss"`
	Outcome Outcome             `yaml:"outcome"`
	Players map[string][]string `yaml:"players"`
}

// Toss records who won the toss and what they chose.
type Toss struct {
	Winner   string `yaml:"winner"`
	Decision string `yaml:"decision"`
}

// Outcome records the match result. Exactly one of By.Runs / By.Wickets is
// set for a decided match; both are nil for no-result games.
type Outcome struct {
	Winner string `yaml:"winner"`
	By     Margin `yaml:"by"`
}

// Margin is the victory margin, by runs or by wickets.
type Margin struct {
	Runs    *int `yaml:"runs"`
	Wickets *int `yaml:"wickets"`
}

// Innings is one team's innings: the batting team plus its deliveries in
// order. The source format nests the deliveries under a single map key
// carrying the team name; unmarshalling flattens that into an explicit pair.
type Innings struct {
	Team       string
	Deliveries []Delivery
}

// UnmarshalYAML decodes the cricsheet innings shape, a single-key mapping
// from team name to an innings body.
func (i *Innings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return eris.New("match: innings entry must be a single-key mapping")
	}
	var team string
	if err := value.Content[0].Decode(&team); err != nil {
		return eris.Wrap(err, "match: decode innings team")
	}
	var body struct {
		Deliveries []Delivery `yaml:"deliveries"`
	}
	if err := value.Content[1].Decode(&body); err != nil {
		return eris.Wrapf(err, "match: decode innings %s", team)
	}
	i.Team = team
	i.Deliveries = body.Deliveries
	return nil
}

// Delivery is one ball bowled.
type Delivery struct {
	Batter     string
	Bowler     string
	NonStriker string
	Runs       Runs
	// Wickets holds every wicket event on this ball. Usually at most one,
	// but the record format permits a list and aggregation must not assume
	// a single event.
	Wickets []Wicket
}

// Runs is the runs breakdown for a delivery.
type Runs struct {
	Batter int `yaml:"batsman"`
	Total  int `yaml:"total"`
}

// Wicket is a single dismissal event.
type Wicket struct {
	Kind      string `yaml:"kind"`
	PlayerOut string `yaml:"player_out"`
}

// UnmarshalYAML decodes the single-key ball-number mapping wrapping each
// delivery, and normalizes the wicket field (absent, mapping, or sequence)
// into a slice.
func (d *Delivery) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return eris.New("match: delivery entry must be a single-key mapping")
	}
	var ball struct {
		Batter     string    `yaml:"batsman"`
		Bowler     string    `yaml:"bowler"`
		NonStriker string    `yaml:"non_striker"`
		Runs       Runs      `yaml:"runs"`
		Wicket     yaml.Node `yaml:"wicket"`
	}
	if err := value.Content[1].Decode(&ball); err != nil {
		return eris.Wrap(err, "match: decode delivery")
	}

	d.Batter = ball.Batter
	d.Bowler = ball.Bowler
	d.NonStriker = ball.NonStriker
	d.Runs = ball.Runs

	switch ball.Wicket.Kind {
	case 0:
		// no wicket on this ball
	case yaml.SequenceNode:
		if err := ball.Wicket.Decode(&d.Wickets); err != nil {
			return eris.Wrap(err, "match: decode wicket list")
		}
	default:
		var w Wicket
		if err := ball.Wicket.Decode(&w); err != nil {
			return eris.Wrap(err, "match: decode wicket")
		}
		d.Wickets = []Wicket{w}
	}
	return nil
}

// Parse decodes and validates one match record.
func Parse(data []byte) (*MatchRecord, error) {
	var m MatchRecord
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "match: unmarshal")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseFile reads and parses a match record from disk.
func ParseFile(path string) (*MatchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "match: read %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "match: parse %s", path)
	}
	return m, nil
}

func (m *MatchRecord) validate() error {
	if len(m.Info.Teams) != 2 {
		return eris.Errorf("match: expected 2 teams, got %d", len(m.Info.Teams))
	}
	if len(m.Info.Dates) == 0 {
		return eris.New("match: missing dates")
	}
	if len(m.Innings) == 0 {
		return eris.New("match: no innings")
	}
	for _, inn := range m.Innings {
		if inn.Team == "" {
			return eris.New("match: innings with empty team")
		}
	}
	return nil
}

// Date returns the match's first (usually only) scheduled date.
func (m *MatchRecord) Date() string {
	return m.Info.Dates[0]
}
