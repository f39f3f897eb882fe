package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/cricket-bench/internal/eval"
	"github.com/sells-group/cricket-bench/internal/qa"
	"github.com/sells-group/cricket-bench/internal/store"
	"github.com/sells-group/cricket-bench/pkg/anthropic"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Grade a model against a benchmark file",
	Long: `Dispatches each benchmark item's prompt to the configured Claude model,
parses and grades the responses, and writes per-item and summary reports
to the output directory:

  outputs.jsonl  one graded record per item
  items.csv      tabular export of the same (items.xlsx with --format xlsx)
  wrong.csv      only the answered-but-incorrect items
  summary.json   overall and per-category statistics

Examples:
  # Grade the default model over a sampled benchmark
  cricket-bench eval --qa t20_qa_sample.jsonl --out-dir out_eval

  # Heavier model, wider fan-out, paced at 2 requests/second
  cricket-bench eval --qa t20_qa_sample.jsonl --model claude-sonnet-4-5-20250929 --concurrency 8 --rps 2

  # Persist the run for later inspection
  cricket-bench eval --qa t20_qa_sample.jsonl --save`,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.String("qa", "t20_qa_sample.jsonl", "benchmark JSONL to grade against")
	f.String("out-dir", "", "output directory (default from config)")
	f.String("model", "", "model identifier (default from config)")
	f.Float64("temperature", 0, "sampling temperature (default from config)")
	f.Int64("max-tokens", 0, "output token cap (default from config)")
	f.Int("concurrency", 0, "concurrent requests (default from config)")
	f.Float64("rps", 0, "max requests per second, 0 = unpaced (default from config)")
	f.String("format", "", "tabular export format: csv or xlsx (default from config)")
	f.Int("limit", 0, "grade only the first N items (0 = all)")
	f.Bool("save", false, "persist the run to the local store")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	qaPath, _ := cmd.Flags().GetString("qa")
	limit, _ := cmd.Flags().GetInt("limit")
	save, _ := cmd.Flags().GetBool("save")

	outDir := stringFlagOr(cmd, "out-dir", cfg.Eval.OutDir)
	model := stringFlagOr(cmd, "model", cfg.Anthropic.Model)
	format := stringFlagOr(cmd, "format", cfg.Eval.Format)

	temperature := cfg.Anthropic.Temperature
	if cmd.Flags().Changed("temperature") {
		temperature, _ = cmd.Flags().GetFloat64("temperature")
	}
	maxTokens := cfg.Anthropic.MaxTokens
	if cmd.Flags().Changed("max-tokens") {
		maxTokens, _ = cmd.Flags().GetInt64("max-tokens")
	}
	concurrency := cfg.Eval.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	rps := cfg.Eval.RPS
	if cmd.Flags().Changed("rps") {
		rps, _ = cmd.Flags().GetFloat64("rps")
	}

	if format != "csv" && format != "xlsx" {
		return eris.Errorf("eval: --format must be csv or xlsx (got %q)", format)
	}
	if cfg.Anthropic.Key == "" {
		return eris.New("eval: anthropic key not configured (set CRICKETBENCH_ANTHROPIC_KEY)")
	}

	items, err := qa.LoadItems(qaPath)
	if err != nil {
		return err
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	if len(items) == 0 {
		return eris.Errorf("eval: no items in %s", qaPath)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return eris.Wrapf(err, "eval: create %s", outDir)
	}

	zap.L().Info("grading benchmark",
		zap.String("qa", qaPath),
		zap.String("model", model),
		zap.Int("items", len(items)),
		zap.Int("concurrency", concurrency),
		zap.Float64("rps", rps),
	)

	runner := &eval.Runner{
		Gen: &eval.AnthropicGenerator{
			Client:      anthropic.NewClient(cfg.Anthropic.Key),
			Model:       model,
			MaxTokens:   maxTokens,
			Temperature: temperature,
		},
		Concurrency: concurrency,
	}
	if rps > 0 {
		runner.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	results, err := runner.Run(ctx, items)
	if err != nil {
		return eris.Wrap(err, "eval: run")
	}

	summary, err := writeReports(outDir, format, results)
	if err != nil {
		return err
	}

	if save {
		if err := saveRun(ctx, model, qaPath, outDir, summary, results); err != nil {
			return err
		}
	}

	return printDigest(cmd.OutOrStdout(), summary)
}

// writeReports writes all per-item and summary outputs and returns the
// summary with output locations filled in.
func writeReports(outDir, format string, results []eval.Result) (eval.Summary, error) {
	outputsPath := filepath.Join(outDir, "outputs.jsonl")
	wrongPath := filepath.Join(outDir, "wrong.csv")

	itemsPath := filepath.Join(outDir, "items.csv")
	writeItems := eval.WriteItemsCSV
	if format == "xlsx" {
		itemsPath = filepath.Join(outDir, "items.xlsx")
		writeItems = eval.WriteItemsXLSX
	}

	if err := eval.WriteResultsJSONL(outputsPath, results); err != nil {
		return eval.Summary{}, err
	}
	if err := writeItems(itemsPath, results); err != nil {
		return eval.Summary{}, err
	}
	if err := eval.WriteWrongCSV(wrongPath, results); err != nil {
		return eval.Summary{}, err
	}

	summary := eval.Summarize(results)
	summary.OutputsJSONL = outputsPath
	summary.ItemsFile = itemsPath
	summary.WrongCSV = wrongPath

	if err := eval.WriteSummary(filepath.Join(outDir, "summary.json"), summary); err != nil {
		return eval.Summary{}, err
	}
	return summary, nil
}

func saveRun(ctx context.Context, model, qaPath, outDir string, summary eval.Summary, results []eval.Result) error {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		return err
	}

	run := &store.Run{
		Model:   model,
		QAPath:  qaPath,
		OutDir:  outDir,
		Summary: summary,
	}
	if err := s.SaveRun(ctx, run, results); err != nil {
		return err
	}

	zap.L().Info("saved run", zap.String("run_id", run.ID))
	return nil
}

// printDigest writes the rounded headline metrics to stdout.
func printDigest(w io.Writer, s eval.Summary) error {
	digest := map[string]interface{}{
		"n":                                s.N,
		"answer_rate":                      round4(s.AnswerRate),
		"accuracy_overall":                 round4(s.AccuracyOverall),
		"accuracy_when_answered":           round4(s.AccuracyWhenAnswered),
		"hallucination_rate_when_answered": round4(s.HallucinationRateWhenAnswered),
		"items_file":                       s.ItemsFile,
		"wrong_csv":                        s.WrongCSV,
	}
	data, err := json.MarshalIndent(digest, "", "  ")
	if err != nil {
		return eris.Wrap(err, "eval: marshal digest")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}
