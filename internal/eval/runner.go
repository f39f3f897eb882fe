package eval

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/cricket-bench/internal/qa"
)

// Runner dispatches benchmark items to a generator with bounded
// concurrency and grades the responses. Items are independent; results
// come back in input order regardless of completion order.
type Runner struct {
	Gen         Generator
	Concurrency int
	// Limiter paces request dispatch when set.
	Limiter *rate.Limiter
}

// Run grades every item. A generation failure does not abort the run: the
// error text is recorded as the raw output and the item grades as
// unanswered. Cancellation stops dispatch and drops the partial run.
func (r *Runner) Run(ctx context.Context, items []qa.Item) ([]Result, error) {
	concurrency := r.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if r.Limiter != nil {
				if err := r.Limiter.Wait(gctx); err != nil {
					return err
				}
			}

			raw, err := r.Gen.Generate(gctx, BuildPrompt(item))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// Service failure: preserve the error text for audit and
				// grade the item normally (it parses as invalid).
				raw = "ERROR: " + err.Error()
				zap.L().Warn("generation failed",
					zap.String("item", item.ID),
					zap.Error(err),
				)
			}

			res := Grade(item, ParseAnswer(raw), raw)
			res.Index = i + 1
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
