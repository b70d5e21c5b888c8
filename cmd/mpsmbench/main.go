// Mpsmbench generates join inputs and measures the join strategies of the
// mpsm package.
//
// Usage:
//
//	go run ./cmd/mpsmbench gen --rows 10000000 --fact fact.mpsm --dim dim.mpsm
//	go run ./cmd/mpsmbench join --left fact.mpsm --right dim.mpsm --strategy partitioned --threads 16 --verify
//	go run ./cmd/mpsmbench join --rows 1000000 --strategy basic
//	go run ./cmd/mpsmbench run workload.yaml
//	go run ./cmd/mpsmbench merge --runs 64 --length 100000
//
// Pass --verbose to log every phase of every join at debug level.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootConfig struct {
	verbose bool
	logger  *zap.Logger
}

func makeRootCommand() *cobra.Command {
	root := &rootConfig{logger: zap.NewNop()}

	command := &cobra.Command{
		Use:   "mpsmbench [command] (flags)",
		Short: "mpsmbench generates join inputs and benchmarks MPSM join strategies.",
		Long: `mpsmbench generates join inputs and benchmarks MPSM join strategies. Use it to:
- write fact and dimension tables to memory-mapped table files (gen).
- run one join strategy over files or generated tables and report throughput (join).
- run a YAML workload of joins (run).
- compare loser-tree and heap k-way merges (merge).
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(root.verbose)
			if err != nil {
				return err
			}
			root.logger = logger
			return nil
		},
	}
	command.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "log every join phase at debug level")

	command.AddCommand(makeGenCommand(root))
	command.AddCommand(makeJoinCommand(root))
	command.AddCommand(makeRunCommand(root))
	command.AddCommand(makeMergeCommand())
	return command
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func main() {
	cmd := makeRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %+v", err))
		os.Exit(1)
	}
}
