package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tamirms/mpsm/internal/tablefile"
	"github.com/tamirms/mpsm/internal/tablegen"
	"go.uber.org/zap"
)

type genConfig struct {
	rows  int
	reuse float64
	seed  uint64
	fact  string
	dim   string
}

func makeGenCommand(root *rootConfig) *cobra.Command {
	config := genConfig{rows: 10_000_000, reuse: 0.7, seed: 1, fact: "fact.mpsm", dim: "dim.mpsm"}
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		fact, dim, err := tablegen.Tables(newRNG(config.seed), config.rows, config.reuse)
		if err != nil {
			return err
		}
		if err := tablefile.Write(config.fact, fact); err != nil {
			return errors.Wrapf(err, "write %s", config.fact)
		}
		if err := tablefile.Write(config.dim, dim); err != nil {
			return errors.Wrapf(err, "write %s", config.dim)
		}
		root.logger.Info("tables written",
			zap.String("fact", config.fact),
			zap.Int("fact_rows", len(fact)),
			zap.String("dim", config.dim),
			zap.Int("dim_rows", len(dim)))
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s tuples\n%s: %s tuples\n",
			config.fact, humanize.Comma(int64(len(fact))),
			config.dim, humanize.Comma(int64(len(dim))))
		return nil
	}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a fact and a dimension table and write them as table files.",
		Long: `Generate a fact table of random tuples and a dimension table whose keys
repeat fact keys, and write both as memory-mapped table files.`,
		Args: cobra.NoArgs,
		RunE: runCmdFunc,
	}
	cmd.Flags().IntVar(&config.rows, "rows", config.rows, "fact rows")
	cmd.Flags().Float64Var(&config.reuse, "reuse", config.reuse, "probability of emitting a fact key again into the dimension table")
	cmd.Flags().Uint64Var(&config.seed, "seed", config.seed, "generator seed")
	cmd.Flags().StringVar(&config.fact, "fact", config.fact, "output path of the fact table")
	cmd.Flags().StringVar(&config.dim, "dim", config.dim, "output path of the dimension table")
	return cmd
}
