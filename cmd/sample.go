package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cricket-bench/internal/qa"
)

var (
	sampleIn   string
	sampleOut  string
	sampleN    int
	sampleSeed int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw a seed-reproducible subset of a benchmark file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		n := sampleN
		if !cmd.Flags().Changed("n") {
			n = cfg.Sample.N
		}
		seed := sampleSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.Sample.Seed
		}

		items, err := qa.LoadItems(sampleIn)
		if err != nil {
			return err
		}

		subset := qa.Sample(items, n, seed)
		if err := qa.SaveItems(sampleOut, subset); err != nil {
			return err
		}

		zap.L().Info("sampled benchmark",
			zap.String("in", sampleIn),
			zap.String("out", sampleOut),
			zap.Int("items", len(subset)),
			zap.Int64("seed", seed),
		)
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleIn, "in", "t20_qa_all.jsonl", "input benchmark JSONL")
	sampleCmd.Flags().StringVar(&sampleOut, "out", "t20_qa_sample.jsonl", "output JSONL path")
	sampleCmd.Flags().IntVar(&sampleN, "n", 1000, "subset size")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 42, "shuffle seed")
	rootCmd.AddCommand(sampleCmd)
}
