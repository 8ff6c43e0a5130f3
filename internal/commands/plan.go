package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/covercheck-dev/covercheck/internal/config"
	"github.com/covercheck-dev/covercheck/internal/history"
	"github.com/covercheck-dev/covercheck/internal/report"
	"github.com/covercheck-dev/covercheck/internal/routing"
)

func newPlanCommand(logLevel *string) *cobra.Command {
	var opts inputOptions
	var outPath string
	var historyPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Route idle cash to the best insured rate offers",
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

			plan := routing.Compute(in.routingParams(), in.holdings, in.offers)
			printPlan(cmd.OutOrStdout(), plan)

			if outPath != "" {
				if err := writePlanFile(outPath, plan); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWrote routing plan to %s\n", outPath)
			}
			if historyPath != "" {
				if err := history.Append(historyPath, history.FromPlan(plan)); err != nil {
					return err
				}
				log.Debug().Str("file", historyPath).Str("plan_id", plan.ID.String()).Msg("plan appended to history")
			}
			return nil
		},
	}

	addInputFlags(cmd, &opts)
	cmd.Flags().StringVar(&outPath, "out", "", "write the plan as CSV to this file")
	cmd.Flags().StringVar(&historyPath, "history", "", "append a one-line plan summary to this CSV log")

	return cmd
}

func printPlan(w io.Writer, plan routing.Plan) {
	fmt.Fprintf(w, "Idle cash: %s KRW (liquidity reserve %s KRW held back)\n",
		formatKRW(plan.IdleCash), formatKRW(plan.LiquidityReserve))

	if len(plan.Entries) == 0 {
		fmt.Fprintln(w, "Nothing to route.")
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTITUTION\tPRODUCT\tTERM\tRATE\tAMOUNT")
	for _, e := range plan.Entries {
		term := "open"
		if e.TermMonths > 0 {
			term = fmt.Sprintf("%dmo", e.TermMonths)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Institution, e.Product, term, formatRate(e.AnnualRate), formatKRW(e.Amount))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTotal allocated: %s KRW\n", formatKRW(plan.TotalAllocated()))
	fmt.Fprintf(w, "Projected interest: %s KRW/yr pre-tax\n", formatKRW(plan.ProjectedInterest))
}

func writePlanFile(path string, plan routing.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating plan file: %w", err)
	}
	defer f.Close()

	if err := report.WritePlan(f, plan); err != nil {
		return fmt.Errorf("writing routing plan: %w", err)
	}
	return nil
}
