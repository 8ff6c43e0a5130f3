package routing

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/covercheck-dev/covercheck/internal/classify"
	"github.com/covercheck-dev/covercheck/internal/model"
)

// Params configures a routing run.
type Params struct {
	Cap              decimal.Decimal // protection cap per license, KRW
	LiquidityReserve decimal.Decimal // demand cash kept un-routed, KRW
	OfferCeiling     decimal.Decimal // max allocation to a single offer, KRW
	DemoRate         decimal.Decimal // USD/KRW rate for holdings without their own
}

// Entry is one allocation in a routing plan.
type Entry struct {
	Institution string          `json:"institution"`
	License     string          `json:"license"`
	Product     string          `json:"product"`
	TermMonths  int             `json:"term_months"`
	AnnualRate  decimal.Decimal `json:"annual_rate"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
}

// Plan is a rate-optimized reallocation of idle demand cash. Advisory
// output: nothing here moves money.
type Plan struct {
	ID                uuid.UUID       `json:"id"`
	GeneratedAt       time.Time       `json:"generated_at"`
	IdleCash          decimal.Decimal `json:"idle_cash"`
	LiquidityReserve  decimal.Decimal `json:"liquidity_reserve"`
	Entries           []Entry         `json:"entries"`
	ProjectedInterest decimal.Decimal `json:"projected_interest"` // pre-tax KRW/year, no compounding
}

// TotalAllocated sums all entry amounts.
func (p Plan) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Compute walks rate offers best-rate-first and greedily routes idle demand
// cash into them. Idle cash is the demand-category total above the liquidity
// reserve. Each allocation is bounded three ways: remaining cash, remaining
// protection headroom for the offer's license, and the per-offer ceiling.
//
// License headroom counts every protection-eligible-category holding,
// cataloged or not: routing more money under an already-full license is a
// bad idea even when the existing products never matched the catalog.
func Compute(p Params, holdings []model.Holding, offers []model.RateOffer) Plan {
	demandTotal := decimal.Zero
	used := make(map[string]decimal.Decimal)
	for _, h := range holdings {
		amount := classify.AmountKRW(h, p.DemoRate)
		category := classify.Category(h)
		if category == model.CategoryDemand {
			demandTotal = demandTotal.Add(amount)
		}
		if classify.Protected(category) {
			used[h.License] = used[h.License].Add(amount)
		}
	}

	idle := decimal.Max(decimal.Zero, demandTotal.Sub(p.LiquidityReserve))

	plan := Plan{
		ID:               uuid.New(),
		GeneratedAt:      time.Now().UTC(),
		IdleCash:         idle,
		LiquidityReserve: p.LiquidityReserve,
	}

	// Stable sort keeps the table's relative order for equal rates.
	sorted := make([]model.RateOffer, len(offers))
	copy(sorted, offers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AnnualRate.GreaterThan(sorted[j].AnnualRate)
	})

	remaining := idle
	planned := make(map[string]decimal.Decimal)
	for _, offer := range sorted {
		if !remaining.IsPositive() {
			break
		}
		room := p.Cap.Sub(used[offer.License]).Sub(planned[offer.License])
		if !room.IsPositive() {
			continue
		}

		amount := bounded(remaining, room, p.OfferCeiling)
		if !amount.IsPositive() {
			continue
		}
		remaining = remaining.Sub(amount)
		planned[offer.License] = planned[offer.License].Add(amount)

		plan.Entries = append(plan.Entries, Entry{
			Institution: offer.Institution,
			License:     offer.License,
			Product:     offer.Product,
			TermMonths:  offer.TermMonths,
			AnnualRate:  offer.AnnualRate,
			Amount:      amount,
			Reason:      reason(offer, room),
		})
	}

	interest := decimal.Zero
	for _, e := range plan.Entries {
		interest = interest.Add(e.Amount.Mul(e.AnnualRate))
	}
	plan.ProjectedInterest = interest.Round(0)

	return plan
}

// bounded returns the binding minimum of the three allocation limits,
// clamped at zero. Every allocation in a plan goes through this one
// primitive so the limits can never be applied inconsistently.
func bounded(cash, room, ceiling decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(cash, room, ceiling))
}

func reason(o model.RateOffer, room decimal.Decimal) string {
	pct := o.AnnualRate.Mul(decimal.NewFromInt(100))
	if o.TermMonths == 0 {
		return fmt.Sprintf("%s%%/yr parking rate, %s KRW protection headroom left at %s", pct, room, o.License)
	}
	return fmt.Sprintf("%s%%/yr for %dmo, %s KRW protection headroom left at %s", pct, o.TermMonths, room, o.License)
}
