package eval

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cricket-bench/pkg/anthropic"
)

// Generator produces raw model text for a prompt. Retries, auth, and
// transport are the implementation's concern.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const systemPrompt = "Answer concisely. Output valid JSON only as instructed."

// AnthropicGenerator answers prompts through the Anthropic Messages API.
type AnthropicGenerator struct {
	Client      anthropic.Client
	Model       string
	MaxTokens   int64
	Temperature float64
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.Model,
		MaxTokens:   g.MaxTokens,
		System:      []anthropic.SystemBlock{{Text: systemPrompt}},
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &g.Temperature,
	})
	if err != nil {
		return "", eris.Wrap(err, "eval: create message")
	}

	resp.Usage.LogCost(g.Model, "eval")

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
