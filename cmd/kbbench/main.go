package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/kb-bench/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// app carries process config into subcommands once the root has loaded it.
type app struct {
	cfg *config.Config
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "kbbench",
		Short: "Benchmark knowledge-base retrieval services",
		Long: `kbbench runs the same queries against several retrieval backends,
records latency, throughput, error and quality metrics, and compares
them in one report.

Run 'kbbench validate -f bench.yaml' to check a spec.
Run 'kbbench run -f bench.yaml' to benchmark it.`,
		Version:      version + " (" + commit + ")",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cfg.LogLevel = "debug"
			}
			slog.SetLogLoggerLevel(cfg.SlogLevel())
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		a.runCmd(),
		a.validateCmd(),
		a.reportCmd(),
		a.generateCmd(),
		a.historyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
