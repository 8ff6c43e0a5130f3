package coverage

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/covercheck-dev/covercheck/internal/catalog"
	"github.com/covercheck-dev/covercheck/internal/classify"
	"github.com/covercheck-dev/covercheck/internal/model"
)

// Params configures an aggregation run. Both values are explicit so tests
// can vary them; nothing in this package reads global state.
type Params struct {
	Cap      decimal.Decimal // protection cap per license, KRW
	DemoRate decimal.Decimal // USD/KRW rate for holdings without their own
}

// Row is the coverage position of one license: every holding grouped under
// the same protection cap, split into eligible and non-protected exposure.
type Row struct {
	License      string          `json:"license"`
	Institution  string          `json:"institution"` // first-seen display name
	Tier         model.Tier      `json:"tier"`
	Products     []string        `json:"products"` // distinct names, first-seen order
	Eligible     decimal.Decimal `json:"eligible"`
	Protected    decimal.Decimal `json:"protected"`
	Excess       decimal.Decimal `json:"excess"`
	NonProtected decimal.Decimal `json:"non_protected"`
	Holdings     []model.Holding `json:"holdings"`
}

// Totals sums all rows, with per-tier eligible subtotals. The "other" tier
// subtotal is implicit: Eligible - Tier1Eligible - Tier2Eligible.
type Totals struct {
	Eligible      decimal.Decimal `json:"eligible"`
	Protected     decimal.Decimal `json:"protected"`
	Excess        decimal.Decimal `json:"excess"`
	NonProtected  decimal.Decimal `json:"non_protected"`
	Tier1Eligible decimal.Decimal `json:"tier1_eligible"`
	Tier2Eligible decimal.Decimal `json:"tier2_eligible"`
}

// Aggregate groups holdings by license and accumulates coverage exposure
// against the catalog. A holding counts as eligible only when its category
// qualifies for protection AND the (institution, product) pair is cataloged;
// everything else lands in NonProtected. The cap splits each row's eligible
// amount into protected and excess after the pass.
//
// Rows come back in first-seen license order, so identical input always
// yields identical output.
func Aggregate(idx *catalog.Index, holdings []model.Holding, p Params) ([]Row, Totals) {
	byLicense := make(map[string]*Row)
	var order []string

	for _, h := range holdings {
		row, seen := byLicense[h.License]
		if !seen {
			// First holding under a license seeds the display name and
			// tier; later holdings never reassign them.
			row = &Row{
				License:     h.License,
				Institution: h.Institution,
				Tier:        TierOf(h.Institution),
			}
			byLicense[h.License] = row
			order = append(order, h.License)
		}

		amount := classify.AmountKRW(h, p.DemoRate)
		if classify.Protected(classify.Category(h)) && idx.Contains(h.Institution, h.Product) {
			row.Eligible = row.Eligible.Add(amount)
		} else {
			row.NonProtected = row.NonProtected.Add(amount)
		}

		if h.Product != "" && !slices.Contains(row.Products, h.Product) {
			row.Products = append(row.Products, h.Product)
		}
		row.Holdings = append(row.Holdings, h)
	}

	rows := make([]Row, 0, len(order))
	var totals Totals
	for _, license := range order {
		row := byLicense[license]
		row.Protected = decimal.Min(row.Eligible, p.Cap)
		row.Excess = decimal.Max(decimal.Zero, row.Eligible.Sub(p.Cap))

		totals.Eligible = totals.Eligible.Add(row.Eligible)
		totals.Protected = totals.Protected.Add(row.Protected)
		totals.Excess = totals.Excess.Add(row.Excess)
		totals.NonProtected = totals.NonProtected.Add(row.NonProtected)
		switch row.Tier {
		case model.Tier1:
			totals.Tier1Eligible = totals.Tier1Eligible.Add(row.Eligible)
		case model.Tier2:
			totals.Tier2Eligible = totals.Tier2Eligible.Add(row.Eligible)
		}

		rows = append(rows, *row)
	}
	return rows, totals
}
