package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/dataset"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		scale           string
		seed            int64
		queriesPerTopic int
		contentLength   int
		output          string
		withDocuments   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic corpus and its ground truth as a YAML fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := dataset.ParseScale(scale)
			if err != nil {
				return err
			}

			c, err := dataset.NewGenerator(seed, dataset.WithContentLength(contentLength)).Generate(sc, queriesPerTopic)
			if err != nil {
				return err
			}

			if err := dataset.WriteFixture(output, dataset.NewFixture(c, withDocuments)); err != nil {
				return err
			}

			slog.Info("fixture written", "path", output, "documents", len(c.Documents), "queries", len(c.Queries))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d documents, %d queries\n", output, len(c.Documents), len(c.Queries))
			return nil
		},
	}

	cmd.Flags().StringVar(&scale, "scale", string(dataset.ScaleSmall), "corpus scale: tiny, small, medium, large")
	cmd.Flags().Int64Var(&seed, "seed", 42, "generator seed")
	cmd.Flags().IntVar(&queriesPerTopic, "queries-per-topic", 3, "queries generated per topic")
	cmd.Flags().IntVar(&contentLength, "content-length", 60, "words per generated document")
	cmd.Flags().StringVarP(&output, "output", "o", "fixture.yaml", "fixture path")
	cmd.Flags().BoolVar(&withDocuments, "with-documents", true, "include documents, not only ground truth")
	return cmd
}
