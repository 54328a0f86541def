package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/spec"
)

func (a *app) validateCmd() *cobra.Command {
	var specPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a bench spec without contacting any adapter",
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := spec.LoadFromFile(specPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			names := make([]string, 0, len(bs.Adapters))
			for name := range bs.Adapters {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintf(out, "spec %s is valid\n", specPath)
			for _, name := range names {
				ad := bs.Adapters[name]
				fmt.Fprintf(out, "  adapter %-20s type=%s service=%s\n", name, ad.Type, ad.Service)
			}
			for _, job := range bs.Jobs {
				fmt.Fprintf(out, "  job %-24s adapters=%v\n", job.Name, job.Adapters)
			}
			fmt.Fprintf(out, "  scales=%v concurrency=%v iterations=%d top_k=%d\n",
				bs.Dataset.Scales, bs.Runs.Concurrency, bs.Runs.Iterations, bs.Runs.TopK)
			return nil
		},
	}

	cmd.Flags().StringVarP(&specPath, "spec", "f", "bench.yaml", "path to bench spec YAML")
	return cmd
}
