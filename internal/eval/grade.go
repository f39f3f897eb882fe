package eval

import (
	"encoding/json"
	"strconv"

	"github.com/sells-group/cricket-bench/internal/qa"
)

// Result is the graded outcome for one (item, response) pair.
type Result struct {
	Index         int             `json:"idx"`
	Category      qa.Category     `json:"type"`
	Source        string          `json:"source"`
	Prompt        string          `json:"prompt"`
	Gold          json.RawMessage `json:"gold"`
	Pred          string          `json:"pred"`
	Answered      bool            `json:"answered"`
	Correct       bool            `json:"correct"`
	Hallucination bool            `json:"hallucination"`
	RawOutput     string          `json:"model_raw"`
}

// Grade validates a parsed answer against an item's declared mode and
// classifies it. The ladder, first match wins:
//
//  1. invalid or abstention: unanswered
//  2. choice item with a choice answer: unanswered when the predicted value
//     is outside the option list (the model ignored the option
//     constraint), else answered, correct iff the value is in the gold set
//  3. number item with a number answer: answered, correct iff exactly equal
//  4. anything else (mode mismatch): unanswered
//
// The item's mode selects the field, so a response carrying both a choice
// and a number still grades against whichever the item asks for.
func Grade(item qa.Item, ans ParsedAnswer, raw string) Result {
	r := Result{
		Category:  item.Category,
		Source:    item.Source,
		Prompt:    item.Prompt,
		Gold:      goldJSON(item),
		RawOutput: raw,
	}

	switch {
	case item.Mode == qa.ModeChoice && ans.HasChoice:
		if len(item.Options) > 0 && !contains(item.Options, ans.Choice) {
			return r
		}
		r.Answered = true
		r.Correct = contains(item.GoldSet, ans.Choice)
		r.Pred = ans.Choice

	case item.Mode == qa.ModeNumber && ans.HasNumber && item.Gold != nil:
		r.Answered = true
		r.Correct = ans.Number == *item.Gold
		r.Pred = strconv.Itoa(ans.Number)
	}

	r.Hallucination = r.Answered && !r.Correct
	return r
}

// goldJSON renders the item's gold answer for reporting: the gold set for
// choice items, the integer for number items.
func goldJSON(item qa.Item) json.RawMessage {
	var v interface{}
	if item.Mode == qa.ModeChoice {
		v = item.GoldSet
	} else if item.Gold != nil {
		v = *item.Gold
	}
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return data
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
