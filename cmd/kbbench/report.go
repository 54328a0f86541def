package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/report"
)

func (a *app) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect stored benchmark reports",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List reports in the report directory, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				files, err := report.ListReports(a.cfg.ReportDir)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED")
				for _, f := range files {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Name, f.Size, f.Modified.Format("2006-01-02 15:04:05"))
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "show <name|path>",
			Short: "Print the comparison table of a report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rep, err := a.loadReport(args[0])
				if err != nil {
					return err
				}
				report.WriteTable(rep, cmd.OutOrStdout())
				return nil
			},
		},
	)
	return cmd
}

// loadReport accepts an existing file path or a bare name inside the report directory.
func (a *app) loadReport(arg string) (*report.Report, error) {
	if arg != filepath.Base(arg) {
		return report.ReadJSON(arg)
	}
	if _, err := os.Stat(arg); err == nil {
		return report.ReadJSON(arg)
	}
	return report.LoadReport(a.cfg.ReportDir, arg)
}
