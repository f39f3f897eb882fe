package eval

import "github.com/sells-group/cricket-bench/internal/qa"

// Stats holds the four grading metrics over a result collection. All
// rates over the answered subset are 0 when nothing was answered.
type Stats struct {
	N                             int     `json:"n"`
	AnswerRate                    float64 `json:"answer_rate"`
	AccuracyOverall               float64 `json:"accuracy_overall"`
	AccuracyWhenAnswered          float64 `json:"accuracy_when_answered"`
	HallucinationRateWhenAnswered float64 `json:"hallucination_rate_when_answered"`
}

// Summary is the overall stats plus the per-category partition and the
// locations of the run's output files.
type Summary struct {
	Stats
	ByCategory map[qa.Category]Stats `json:"by_type"`

	OutputsJSONL string `json:"outputs_jsonl,omitempty"`
	ItemsFile    string `json:"items_file,omitempty"`
	WrongCSV     string `json:"wrong_csv,omitempty"`
}

// Summarize computes overall and per-category statistics. Pure arithmetic;
// recomputable from the same results at any time.
func Summarize(results []Result) Summary {
	byCat := make(map[qa.Category][]Result)
	for _, r := range results {
		byCat[r.Category] = append(byCat[r.Category], r)
	}

	s := Summary{
		Stats:      statsOf(results),
		ByCategory: make(map[qa.Category]Stats, len(byCat)),
	}
	for cat, group := range byCat {
		s.ByCategory[cat] = statsOf(group)
	}
	return s
}

func statsOf(results []Result) Stats {
	var answered, correct, hallucinated int
	for _, r := range results {
		if r.Answered {
			answered++
		}
		if r.Correct {
			correct++
		}
		if r.Hallucination {
			hallucinated++
		}
	}

	s := Stats{N: len(results)}
	if s.N > 0 {
		s.AnswerRate = float64(answered) / float64(s.N)
		s.AccuracyOverall = float64(correct) / float64(s.N)
	}
	if answered > 0 {
		s.AccuracyWhenAnswered = float64(correct) / float64(answered)
		s.HallucinationRateWhenAnswered = float64(hallucinated) / float64(answered)
	}
	return s
}
