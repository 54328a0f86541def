package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/history"
)

func (a *app) historyCmd() *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "history [adapter] [metric]",
		Short: "List adapters with history, or print one adapter's metric series",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.RedisURL == "" {
				return apperr.NewFieldValidation("KBBENCH_REDIS_URL", "required for history")
			}
			if len(args) == 1 {
				return apperr.NewValidation("history needs both adapter and metric, or neither")
			}

			ctx := cmd.Context()
			store, err := history.NewRedisStore(ctx, a.cfg.RedisURL)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				names, err := store.Adapters(ctx)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			}

			adapter, metric := args[0], args[1]
			if !history.IsMetric(metric) {
				return apperr.NewFieldValidation("metric", fmt.Sprintf("unknown metric %q, want one of %v", metric, history.Metrics))
			}

			points, err := store.Series(ctx, adapter, metric, time.Now().Add(-since))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIMESTAMP\tSCALE\tCONCURRENCY\t"+metric+"\tRUN")
			for _, p := range points {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%s\n",
					p.Timestamp.Format(time.RFC3339), p.Scale, p.Concurrency, p.Value, p.RunID)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().DurationVar(&since, "since", 7*24*time.Hour, "lookback window")
	return cmd
}
