// Package eval parses and grades model responses against benchmark items
// and rolls graded results into summary statistics.
package eval

import (
	"encoding/json"
	"strings"
)

// AnswerKind discriminates the shapes a model response can take.
type AnswerKind string

const (
	AnswerChoice  AnswerKind = "choice"
	AnswerNumber  AnswerKind = "number"
	AnswerAbstain AnswerKind = "abstain"
	AnswerInvalid AnswerKind = "invalid"
)

// ParsedAnswer is the structured interpretation of a model's raw output.
// A response may carry both a choice and a number; the fields are extracted
// independently and the grader picks the one matching the item's mode. Kind
// reports the dominant shape, choice first.
type ParsedAnswer struct {
	Kind      AnswerKind
	Choice    string
	HasChoice bool
	Number    int
	HasNumber bool
}

// ParseAnswer extracts a structured answer from raw model text. The whole
// text is tried as JSON first; failing that, the substring from the first
// opening brace to the last closing brace is tried, tolerating prose
// wrapped around the answer. An abstention wins outright. Otherwise both
// answer keys are extracted when well-typed; a response with neither is
// invalid. No coercion: a number must be a bare integer literal, not a
// float or a quoted string.
func ParseAnswer(raw string) ParsedAnswer {
	obj, ok := parseObject(raw)
	if !ok {
		return ParsedAnswer{Kind: AnswerInvalid}
	}

	if msg, present := obj["no_answer"]; present {
		var abstain bool
		if err := json.Unmarshal(msg, &abstain); err == nil && abstain {
			return ParsedAnswer{Kind: AnswerAbstain}
		}
	}

	var ans ParsedAnswer
	if msg, present := obj["choice"]; present {
		if err := json.Unmarshal(msg, &ans.Choice); err == nil {
			ans.HasChoice = true
		}
	}
	if msg, present := obj["number"]; present {
		if err := json.Unmarshal(msg, &ans.Number); err == nil {
			ans.HasNumber = true
		}
	}

	switch {
	case ans.HasChoice:
		ans.Kind = AnswerChoice
	case ans.HasNumber:
		ans.Kind = AnswerNumber
	default:
		ans.Kind = AnswerInvalid
	}
	return ans
}

func parseObject(raw string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		return obj, true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}
