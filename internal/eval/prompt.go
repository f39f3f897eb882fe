package eval

import (
	"encoding/json"
	"fmt"

	"github.com/sells-group/cricket-bench/internal/qa"
)

const answerInstructions = `Return ONLY JSON. If you can answer by choosing from options, output {"choice":"<one of options>"}; if the answer is numeric, output {"number": <integer>}; if unsure, output {"no_answer": true}.`

// BuildPrompt renders the full prompt sent to the generation service: the
// question, the option list for choice items, and the answer-schema
// instruction the parser relies on.
func BuildPrompt(item qa.Item) string {
	if len(item.Options) > 0 {
		opts, _ := json.Marshal(item.Options)
		return fmt.Sprintf("%s\nOptions: %s\n%s", item.Prompt, opts, answerInstructions)
	}
	return fmt.Sprintf("%s\n%s", item.Prompt, answerInstructions)
}
