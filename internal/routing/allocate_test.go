package routing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covercheck-dev/covercheck/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testParams() Params {
	return Params{
		Cap:              dec("100000000"),
		LiquidityReserve: dec("10000000"),
		OfferCeiling:     dec("50000000"),
		DemoRate:         dec("1400"),
	}
}

func demand(license, balance string) model.Holding {
	return model.Holding{
		ID:          "d-" + license,
		Institution: license,
		License:     license,
		Product:     "입출금통장",
		Category:    model.CategoryDemand,
		Currency:    model.CurrencyKRW,
		Balance:     dec(balance),
	}
}

func term(license, balance string) model.Holding {
	return model.Holding{
		ID:          "t-" + license,
		Institution: license,
		License:     license,
		Product:     "정기예금",
		Category:    model.CategoryTerm,
		Currency:    model.CurrencyKRW,
		Balance:     dec(balance),
	}
}

func testOffer(license, product string, termMonths int, rate string) model.RateOffer {
	return model.RateOffer{
		Institution: license,
		License:     license,
		Product:     product,
		TermMonths:  termMonths,
		AnnualRate:  dec(rate),
	}
}

func TestCompute_IdleCashAboveReserve(t *testing.T) {
	holdings := []model.Holding{demand("kb-bank", "12000000")}
	offers := []model.RateOffer{testOffer("ok-savings", "OK 정기예금", 12, "0.041")}

	plan := Compute(testParams(), holdings, offers)

	assert.True(t, dec("2000000").Equal(plan.IdleCash), "idle %s", plan.IdleCash)
	require.Len(t, plan.Entries, 1)
	assert.True(t, dec("2000000").Equal(plan.Entries[0].Amount))
	// 2,000,000 * 0.041 = 82,000 KRW/yr.
	assert.True(t, dec("82000").Equal(plan.ProjectedInterest), "interest %s", plan.ProjectedInterest)
}

func TestCompute_NoIdleCash(t *testing.T) {
	holdings := []model.Holding{demand("kb-bank", "9000000")}
	offers := DefaultOffers()

	plan := Compute(testParams(), holdings, offers)

	assert.True(t, plan.IdleCash.IsZero())
	assert.Empty(t, plan.Entries)
	assert.True(t, plan.ProjectedInterest.IsZero())
}

func TestCompute_ExactlyReserve(t *testing.T) {
	holdings := []model.Holding{demand("kb-bank", "10000000")}
	plan := Compute(testParams(), holdings, DefaultOffers())
	assert.True(t, plan.IdleCash.IsZero())
	assert.Empty(t, plan.Entries)
}

func TestCompute_HeadroomBound(t *testing.T) {
	// ok-savings already carries 95M of protection-eligible exposure under
	// a 100M cap: at most 5M may route there, even with 60M idle and the
	// best rate on the board.
	p := testParams()
	p.OfferCeiling = dec("60000000")
	holdings := []model.Holding{
		demand("kb-bank", "70000000"), // 60M idle after reserve
		term("ok-savings", "95000000"),
	}
	offers := []model.RateOffer{
		testOffer("ok-savings", "OK 정기예금", 12, "0.050"),
		testOffer("pepper-savings", "페퍼 회전정기예금", 12, "0.042"),
	}

	plan := Compute(p, holdings, offers)

	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "ok-savings", plan.Entries[0].License)
	assert.True(t, dec("5000000").Equal(plan.Entries[0].Amount), "amount %s", plan.Entries[0].Amount)
	// The rest flows to the next offer.
	assert.Equal(t, "pepper-savings", plan.Entries[1].License)
	assert.True(t, dec("55000000").Equal(plan.Entries[1].Amount))
}

func TestCompute_UsedCountsUncatalogedEligibleCategories(t *testing.T) {
	// Headroom is consumed by every protection-eligible-category holding,
	// whether or not the catalog knows the product.
	holdings := []model.Holding{
		demand("kb-bank", "40000000"),
		term("ok-savings", "100000000"), // fills the cap on its own
	}
	offers := []model.RateOffer{testOffer("ok-savings", "OK 정기예금", 12, "0.050")}

	plan := Compute(testParams(), holdings, offers)
	assert.Empty(t, plan.Entries, "full license must be skipped")
	assert.True(t, dec("30000000").Equal(plan.IdleCash))
}

func TestCompute_InvestmentDoesNotConsumeHeadroom(t *testing.T) {
	holdings := []model.Holding{
		demand("kb-bank", "20000000"),
		{
			ID: "i1", Institution: "ok-savings", License: "ok-savings",
			Product: "글로벌 펀드", Category: model.CategoryInvestment,
			Currency: model.CurrencyKRW, Balance: dec("100000000"),
		},
	}
	offers := []model.RateOffer{testOffer("ok-savings", "OK 정기예금", 12, "0.041")}

	plan := Compute(testParams(), holdings, offers)
	require.Len(t, plan.Entries, 1)
	assert.True(t, dec("10000000").Equal(plan.Entries[0].Amount))
}

func TestCompute_OfferCeilingBinds(t *testing.T) {
	p := testParams()
	p.OfferCeiling = dec("5000000")
	holdings := []model.Holding{demand("kb-bank", "30000000")} // 20M idle
	offers := []model.RateOffer{
		testOffer("ok-savings", "OK 정기예금", 12, "0.041"),
		testOffer("pepper-savings", "페퍼 회전정기예금", 12, "0.040"),
	}

	plan := Compute(p, holdings, offers)

	require.Len(t, plan.Entries, 2)
	for _, e := range plan.Entries {
		assert.True(t, e.Amount.LessThanOrEqual(dec("5000000")), "entry %s exceeds ceiling", e.Product)
	}
	// 10M of the 20M idle stays unallocated once both offers hit the ceiling.
	assert.True(t, dec("10000000").Equal(plan.IdleCash.Sub(plan.TotalAllocated())))
}

func TestCompute_BestRateFirst(t *testing.T) {
	holdings := []model.Holding{demand("kb-bank", "15000000")} // 5M idle
	offers := []model.RateOffer{
		testOffer("woori-bank", "우리 WON 정기예금", 12, "0.030"),
		testOffer("pepper-savings", "페퍼 회전정기예금", 12, "0.042"),
		testOffer("hana-bank", "하나 원큐 정기예금", 12, "0.033"),
	}

	plan := Compute(testParams(), holdings, offers)

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, "pepper-savings", plan.Entries[0].License)
}

func TestCompute_StableTieBreak(t *testing.T) {
	p := testParams()
	p.OfferCeiling = dec("2000000")
	holdings := []model.Holding{demand("kb-bank", "14000000")} // 4M idle
	offers := []model.RateOffer{
		testOffer("sbi-savings", "사이다 입출금통장", 0, "0.032"),
		testOffer("shinhan-bank", "신한 쏠편한 정기예금", 24, "0.032"),
	}

	plan := Compute(p, holdings, offers)

	// Equal rates keep their original table order.
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "sbi-savings", plan.Entries[0].License)
	assert.Equal(t, "shinhan-bank", plan.Entries[1].License)
}

func TestCompute_InputOffersNotReordered(t *testing.T) {
	offers := []model.RateOffer{
		testOffer("woori-bank", "우리 WON 정기예금", 12, "0.030"),
		testOffer("pepper-savings", "페퍼 회전정기예금", 12, "0.042"),
	}
	Compute(testParams(), []model.Holding{demand("kb-bank", "20000000")}, offers)

	assert.Equal(t, "woori-bank", offers[0].License, "caller's slice must stay untouched")
}

func TestCompute_SameLicenseSharesHeadroom(t *testing.T) {
	// Two offers under one license: the second sees headroom reduced by
	// what the first already took in this plan.
	p := testParams()
	p.OfferCeiling = dec("40000000")
	holdings := []model.Holding{
		demand("kb-bank", "100000000"), // 90M idle
		term("ok-savings", "50000000"), // 50M headroom left
	}
	offers := []model.RateOffer{
		testOffer("ok-savings", "OK 정기예금", 12, "0.041"),
		testOffer("ok-savings", "OK 파킹통장", 0, "0.035"),
	}

	plan := Compute(p, holdings, offers)

	require.Len(t, plan.Entries, 2)
	assert.True(t, dec("40000000").Equal(plan.Entries[0].Amount)) // ceiling binds
	assert.True(t, dec("10000000").Equal(plan.Entries[1].Amount)) // remaining headroom binds

	var toLicense decimal.Decimal
	for _, e := range plan.Entries {
		toLicense = toLicense.Add(e.Amount)
	}
	assert.True(t, toLicense.LessThanOrEqual(dec("50000000")), "per-license total %s exceeds headroom", toLicense)
}

func TestCompute_CashBound(t *testing.T) {
	holdings := []model.Holding{demand("kb-bank", "25000000")} // 15M idle
	plan := Compute(testParams(), holdings, DefaultOffers())

	assert.True(t, plan.TotalAllocated().LessThanOrEqual(plan.IdleCash))
}

func TestCompute_CapMonotonicity(t *testing.T) {
	holdings := []model.Holding{
		demand("kb-bank", "90000000"),
		term("ok-savings", "60000000"),
		term("pepper-savings", "70000000"),
	}
	offers := DefaultOffers()

	low := testParams()
	low.Cap = dec("50000000")
	high := testParams()
	high.Cap = dec("100000000")

	planLow := Compute(low, holdings, offers)
	planHigh := Compute(high, holdings, offers)

	assert.True(t, planLow.TotalAllocated().LessThanOrEqual(planHigh.TotalAllocated()),
		"raising the cap must never shrink the plan: low %s, high %s",
		planLow.TotalAllocated(), planHigh.TotalAllocated())
}

func TestCompute_USDDemandConverts(t *testing.T) {
	// Demand total runs through the same KRW conversion as coverage.
	holdings := []model.Holding{
		{
			ID: "u1", Institution: "kb-bank", License: "kb-bank",
			Product: "외화보통예금", Category: model.CategoryDemand,
			Currency: model.CurrencyUSD, Balance: dec("10000"), FXRate: dec("1400"),
		},
	}
	plan := Compute(testParams(), holdings, nil)
	// 14M KRW demand - 10M reserve = 4M idle.
	assert.True(t, dec("4000000").Equal(plan.IdleCash), "idle %s", plan.IdleCash)
}

func TestCompute_ReasonNamesRoomAndRate(t *testing.T) {
	holdings := []model.Holding{demand("kb-bank", "12000000")}
	offers := []model.RateOffer{testOffer("ok-savings", "OK 정기예금", 12, "0.041")}

	plan := Compute(testParams(), holdings, offers)

	require.Len(t, plan.Entries, 1)
	reason := plan.Entries[0].Reason
	assert.Contains(t, reason, "4.1%")
	assert.Contains(t, reason, "12mo")
	assert.Contains(t, reason, "100000000")
	assert.Contains(t, reason, "ok-savings")
}

func TestCompute_PlanMetadata(t *testing.T) {
	plan := Compute(testParams(), []model.Holding{demand("kb-bank", "12000000")}, DefaultOffers())

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", plan.ID.String())
	assert.False(t, plan.GeneratedAt.IsZero())
	assert.True(t, dec("10000000").Equal(plan.LiquidityReserve))
}

func TestBounded(t *testing.T) {
	assert.True(t, dec("3").Equal(bounded(dec("3"), dec("5"), dec("7"))))
	assert.True(t, dec("5").Equal(bounded(dec("9"), dec("5"), dec("7"))))
	assert.True(t, dec("7").Equal(bounded(dec("9"), dec("8"), dec("7"))))
	assert.True(t, bounded(dec("9"), dec("-1"), dec("7")).IsZero())
	assert.True(t, bounded(dec("0"), dec("5"), dec("7")).IsZero())
}

func TestDefaultOffers_Shape(t *testing.T) {
	offers := DefaultOffers()
	require.NotEmpty(t, offers)
	for _, o := range offers {
		assert.NotEmpty(t, o.Institution)
		assert.NotEmpty(t, o.License)
		assert.NotEmpty(t, o.Product)
		assert.True(t, o.AnnualRate.IsPositive(), "offer %s", o.Product)
		assert.True(t, o.AnnualRate.LessThan(dec("0.2")), "offer %s rate looks like a percentage, want a fraction", o.Product)
	}
}
