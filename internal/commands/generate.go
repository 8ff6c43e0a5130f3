package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/covercheck-dev/covercheck/internal/feed"
	"github.com/covercheck-dev/covercheck/internal/mock"
)

func newGenerateCommand() *cobra.Command {
	var seed int64
	var count int
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a mock holdings CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			holdings := mock.Generate(mock.Options{Seed: seed, Count: count})

			if outPath == "" {
				return feed.WriteHoldings(cmd.OutOrStdout(), holdings)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating holdings file: %w", err)
			}
			defer f.Close()

			if err := feed.WriteHoldings(f, holdings); err != nil {
				return fmt.Errorf("writing holdings: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d mock holdings to %s\n", len(holdings), outPath)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed; same seed always yields the same holdings")
	cmd.Flags().IntVar(&count, "count", 40, "number of holdings to generate")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	return cmd
}
