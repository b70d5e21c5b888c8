package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// workload is a YAML file of join runs. Fields missing from a run take
// the workload defaults, then the join command defaults.
//
//	defaults:
//	  threads: 8
//	  rows: 1000000
//	runs:
//	  - name: baseline
//	    strategy: sortmerge
//	  - strategy: partitioned
//	    verify: true
type workload struct {
	Defaults joinSpec    `yaml:"defaults"`
	Runs     []yaml.Node `yaml:"runs"`
}

func parseWorkload(data []byte) ([]joinSpec, error) {
	var w workload
	w.Defaults = defaultJoinSpec()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "parse workload")
	}
	if len(w.Runs) == 0 {
		return nil, errors.New("workload has no runs")
	}

	specs := make([]joinSpec, len(w.Runs))
	for i := range w.Runs {
		specs[i] = w.Defaults
		if err := w.Runs[i].Decode(&specs[i]); err != nil {
			return nil, errors.Wrapf(err, "run %d", i)
		}
		if _, err := lookupStrategy(specs[i].Strategy); err != nil {
			return nil, errors.Wrapf(err, "run %d", i)
		}
	}
	return specs, nil
}

func makeRunCommand(root *rootConfig) *cobra.Command {
	var keepGoing bool
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "read workload")
		}
		specs, err := parseWorkload(data)
		if err != nil {
			return err
		}

		var failed error
		for i, spec := range specs {
			res, err := executeJoin(cmd.Context(), spec, root.logger)
			if err != nil {
				err = errors.Wrapf(err, "run %d", i)
				if !keepGoing {
					return err
				}
				failed = errors.CombineErrors(failed, err)
				continue
			}
			printResult(cmd.OutOrStdout(), res)
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return failed
	}
	cmd := &cobra.Command{
		Use:   "run <workload.yaml>",
		Short: "Run every join listed in a YAML workload file.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCmdFunc,
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue with the next run after a failure")
	return cmd
}
