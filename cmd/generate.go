package main

import (
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cricket-bench/internal/match"
	"github.com/sells-group/cricket-bench/internal/qa"
)

var (
	generateInDir string
	generateOut   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize QA items from a directory of match records",
	Long: `Walks a directory of ball-by-ball match YAML files, derives aggregate
facts per match, and writes one QA item per line to the output file.

A malformed match record is logged and skipped; it never aborts the run.

Examples:
  cricket-bench generate --in-dir t20_yaml --out t20_qa_all.jsonl`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		inDir := generateInDir
		if inDir == "" {
			inDir = cfg.Generate.InDir
		}
		out := generateOut
		if out == "" {
			out = cfg.Generate.Out
		}

		items, stats, err := generateCorpus(inDir)
		if err != nil {
			return err
		}

		if err := qa.SaveItems(out, items); err != nil {
			return err
		}

		zap.L().Info("wrote benchmark",
			zap.String("out", out),
			zap.Int("items", len(items)),
			zap.Int("matches", stats.Parsed),
			zap.Int("skipped", stats.Skipped),
		)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateInDir, "in-dir", "", "directory of match YAML files (default from config)")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "output JSONL path (default from config)")
	rootCmd.AddCommand(generateCmd)
}

// corpusStats counts the outcome of a synthesis run over a corpus.
type corpusStats struct {
	Files   int
	Parsed  int
	Skipped int
}

// generateCorpus synthesizes items for every parseable match file under
// inDir. Parse failures are counted and skipped so one bad record cannot
// take down the whole corpus.
func generateCorpus(inDir string) ([]qa.Item, corpusStats, error) {
	files, err := filepath.Glob(filepath.Join(inDir, "*.yaml"))
	if err != nil {
		return nil, corpusStats{}, eris.Wrapf(err, "generate: glob %s", inDir)
	}
	sort.Strings(files)

	var items []qa.Item
	stats := corpusStats{Files: len(files)}
	for _, fn := range files {
		m, err := match.ParseFile(fn)
		if err != nil {
			stats.Skipped++
			zap.L().Warn("skipping malformed match record",
				zap.String("file", fn),
				zap.Error(err),
			)
			continue
		}
		stats.Parsed++
		items = append(items, qa.Synthesize(fn, m, match.Aggregate(m))...)
	}
	return items, stats, nil
}
