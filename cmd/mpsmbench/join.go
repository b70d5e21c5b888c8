package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tamirms/mpsm"
	"go.uber.org/zap"
)

// joinSpec describes one join run, from flags or from a workload file.
type joinSpec struct {
	Name        string `yaml:"name"`
	Strategy    string `yaml:"strategy"`
	Threads     int    `yaml:"threads"`
	Verify      bool   `yaml:"verify"`
	tableSource `yaml:",inline"`
}

func defaultJoinSpec() joinSpec {
	return joinSpec{
		Strategy:    "partitioned",
		Threads:     defaultThreads(),
		tableSource: defaultTableSource(),
	}
}

// defaultThreads is GOMAXPROCS rounded down to a power of two, at least 2,
// so every strategy accepts it.
func defaultThreads() int {
	p := 2
	for p*2 <= runtime.GOMAXPROCS(0) {
		p *= 2
	}
	return p
}

type joinResult struct {
	spec      joinSpec
	leftRows  int
	rightRows int
	rows      int
	digest    uint64
	elapsed   time.Duration
	verified  bool
}

// executeJoin loads the inputs, runs the strategy and, when asked, checks
// the result digest against the sort-merge baseline.
func executeJoin(ctx context.Context, spec joinSpec, logger *zap.Logger) (joinResult, error) {
	res := joinResult{spec: spec}
	join, err := lookupStrategy(spec.Strategy)
	if err != nil {
		return res, err
	}
	left, right, err := spec.load()
	if err != nil {
		return res, err
	}
	res.leftRows, res.rightRows = len(left), len(right)

	var want uint64
	if spec.Verify {
		want = mpsm.Digest(mpsm.SortMergeJoin(left, right))
	}

	start := time.Now()
	rows, err := join(ctx, left, right, spec.Threads, mpsm.WithLogger(logger))
	res.elapsed = time.Since(start)
	if err != nil {
		return res, errors.Wrapf(err, "%s join", spec.Strategy)
	}
	res.rows = len(rows)
	res.digest = mpsm.Digest(rows)

	if spec.Verify {
		if res.digest != want {
			return res, errors.AssertionFailedf("%s join digest %016x, sort-merge baseline %016x",
				spec.Strategy, res.digest, want)
		}
		res.verified = true
	}

	logger.Info("join finished",
		zap.String("name", spec.Name),
		zap.String("strategy", spec.Strategy),
		zap.Int("threads", spec.Threads),
		zap.Int("rows", res.rows),
		zap.Duration("elapsed", res.elapsed))
	return res, nil
}

func printResult(w io.Writer, res joinResult) {
	bold := color.New(color.Bold).SprintFunc()
	input := res.leftRows + res.rightRows
	rate := float64(input) / res.elapsed.Seconds()

	title := res.spec.Strategy
	if res.spec.Name != "" {
		title = res.spec.Name + " (" + title + ")"
	}
	fmt.Fprintf(w, "%s\n", bold(title))
	fmt.Fprintf(w, "  threads     %d\n", res.spec.Threads)
	fmt.Fprintf(w, "  input       %s + %s tuples (%s)\n",
		humanize.Comma(int64(res.leftRows)), humanize.Comma(int64(res.rightRows)),
		humanize.IBytes(uint64(input)*16))
	fmt.Fprintf(w, "  output      %s rows\n", humanize.Comma(int64(res.rows)))
	fmt.Fprintf(w, "  digest      %016x\n", res.digest)
	fmt.Fprintf(w, "  elapsed     %s\n", res.elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "  throughput  %s\n", humanize.SIWithDigits(rate, 2, "tuples/s"))
	if res.spec.Verify {
		status := color.RedString("MISMATCH")
		if res.verified {
			status = color.GreenString("ok")
		}
		fmt.Fprintf(w, "  verify      %s\n", status)
	}
}

func makeJoinCommand(root *rootConfig) *cobra.Command {
	spec := defaultJoinSpec()
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		res, err := executeJoin(cmd.Context(), spec, root.logger)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	}
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Run one join strategy and report rows, digest and throughput.",
		Long: `Run one join strategy over two table files, or over generated tables when
--left or --right is not set, and report rows, digest and throughput.`,
		Args: cobra.NoArgs,
		RunE: runCmdFunc,
	}
	cmd.Flags().StringVar(&spec.Name, "name", spec.Name, "label printed with the result")
	cmd.Flags().StringVar(&spec.Strategy, "strategy", spec.Strategy, "join strategy: nested, sortmerge, parallel, basic or partitioned")
	cmd.Flags().IntVar(&spec.Threads, "threads", spec.Threads, "worker count (a power of two for partitioned)")
	cmd.Flags().BoolVar(&spec.Verify, "verify", spec.Verify, "compare the result digest with the sort-merge baseline")
	addTableSourceFlags(cmd, &spec.tableSource)
	return cmd
}

func addTableSourceFlags(cmd *cobra.Command, src *tableSource) {
	cmd.Flags().StringVar(&src.Left, "left", src.Left, "left (fact) table file")
	cmd.Flags().StringVar(&src.Right, "right", src.Right, "right (dimension) table file")
	cmd.Flags().IntVar(&src.Rows, "rows", src.Rows, "fact rows to generate when no files are given")
	cmd.Flags().Float64Var(&src.Reuse, "reuse", src.Reuse, "probability of emitting a fact key again into the dimension table")
	cmd.Flags().Uint64Var(&src.Seed, "seed", src.Seed, "generator seed")
}
