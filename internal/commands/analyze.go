package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/covercheck-dev/covercheck/internal/config"
	"github.com/covercheck-dev/covercheck/internal/coverage"
	"github.com/covercheck-dev/covercheck/internal/report"
)

func newAnalyzeCommand(logLevel *string) *cobra.Command {
	var opts inputOptions
	var outPath string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze deposit-insurance coverage per license",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(opts.configPath)
			if err != nil {
				return err
			}
			log := commandLogger(*logLevel, cfg)

			in, err := loadInputs(log, cfg, opts)
			if err != nil {
				return err
			}

			rows, totals := coverage.Aggregate(in.index, in.holdings, in.coverageParams())
			printCoverage(cmd.OutOrStdout(), rows, totals, in.cap)

			if outPath != "" {
				if err := writeCoverageFile(outPath, rows, totals); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWrote coverage report to %s\n", outPath)
			}
			return nil
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().StringVar(&outPath, "out", "", "write the report as CSV to this file")

	return cmd
}

func printCoverage(w io.Writer, rows []coverage.Row, totals coverage.Totals, capKRW decimal.Decimal) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LICENSE\tINSTITUTION\tTIER\tELIGIBLE\tPROTECTED\tEXCESS\tNON-PROTECTED")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.License, row.Institution, row.Tier,
			formatKRW(row.Eligible), formatKRW(row.Protected),
			formatKRW(row.Excess), formatKRW(row.NonProtected))
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t%s\t%s\t%s\t%s\n",
		formatKRW(totals.Eligible), formatKRW(totals.Protected),
		formatKRW(totals.Excess), formatKRW(totals.NonProtected))
	tw.Flush()

	fmt.Fprintf(w, "\nProtection cap: %s KRW per license\n", formatKRW(capKRW))
	fmt.Fprintf(w, "Tier-1 eligible: %s KRW, tier-2 eligible: %s KRW\n",
		formatKRW(totals.Tier1Eligible), formatKRW(totals.Tier2Eligible))
	if totals.Excess.IsPositive() {
		fmt.Fprintf(w, "Above cap, at risk: %s KRW\n", formatKRW(totals.Excess))
	}
}

func writeCoverageFile(path string, rows []coverage.Row, totals coverage.Totals) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := report.WriteCoverage(f, rows, totals); err != nil {
		return fmt.Errorf("writing coverage report: %w", err)
	}
	return nil
}
