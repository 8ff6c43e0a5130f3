// Package report exports aggregation and routing results as CSV reports.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/covercheck-dev/covercheck/internal/coverage"
	"github.com/covercheck-dev/covercheck/internal/routing"
)

// CoverageHeader is the CSV header for coverage exports.
const CoverageHeader = "license,institution,tier,products,eligible,protected,excess,non_protected"

// PlanHeader is the CSV header for routing plan exports.
const PlanHeader = "institution,license,product,term_months,annual_rate,amount,reason"

const (
	coverageNumFields = 8
	planNumFields     = 7
)

// totalLabel marks the summary row appended to both report kinds.
const totalLabel = "TOTAL"

// WriteCoverage writes one CSV row per coverage row plus a TOTAL row.
// Amounts are whole-KRW strings; product names are semicolon-joined.
func WriteCoverage(w io.Writer, rows []coverage.Row, totals coverage.Totals) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CoverageHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(marshalCoverageRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	total := make([]string, coverageNumFields)
	total[0] = totalLabel
	total[4] = totals.Eligible.StringFixed(0)
	total[5] = totals.Protected.StringFixed(0)
	total[6] = totals.Excess.StringFixed(0)
	total[7] = totals.NonProtected.StringFixed(0)
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}
	return cw.Error()
}

// WritePlan writes one CSV row per plan entry plus a TOTAL row carrying the
// allocated sum and the projected annual interest.
func WritePlan(w io.Writer, plan routing.Plan) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(PlanHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range plan.Entries {
		if err := cw.Write(marshalPlanEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	total := make([]string, planNumFields)
	total[0] = totalLabel
	total[5] = plan.TotalAllocated().StringFixed(0)
	total[6] = fmt.Sprintf("idle cash %s, reserve %s, projected interest %s KRW/yr",
		plan.IdleCash.StringFixed(0), plan.LiquidityReserve.StringFixed(0), plan.ProjectedInterest.StringFixed(0))
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}
	return cw.Error()
}

func marshalCoverageRow(row coverage.Row) []string {
	rec := make([]string, coverageNumFields)
	rec[0] = row.License
	rec[1] = row.Institution
	rec[2] = string(row.Tier)
	rec[3] = strings.Join(row.Products, ";")
	rec[4] = row.Eligible.StringFixed(0)
	rec[5] = row.Protected.StringFixed(0)
	rec[6] = row.Excess.StringFixed(0)
	rec[7] = row.NonProtected.StringFixed(0)
	return rec
}

func marshalPlanEntry(e routing.Entry) []string {
	rec := make([]string, planNumFields)
	rec[0] = e.Institution
	rec[1] = e.License
	rec[2] = e.Product
	if e.TermMonths != 0 {
		rec[3] = strconv.Itoa(e.TermMonths)
	}
	rec[4] = e.AnnualRate.String()
	rec[5] = e.Amount.StringFixed(0)
	rec[6] = e.Reason
	return rec
}
