// Package classify infers the missing attributes of a holding from its
// product name and converts balances into the KRW reporting currency.
//
// Inference is a fallback for feeds that deliver untagged rows: a holding
// with an explicit Category or Currency is never re-classified. The keyword
// tables are tuned to Korean deposit-product vocabulary and are advisory,
// not a regulatory classification.
package classify

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/covercheck-dev/covercheck/internal/model"
)

// Rule maps product-name keywords to a category. Rules are evaluated in
// order and the first keyword hit wins.
type Rule struct {
	Category model.Category
	Keywords []string
}

// fxKeywords mark foreign-currency products. Shared between category and
// currency inference so the two can never disagree on what "foreign" means.
var fxKeywords = []string{"외화", "달러", "usd", "외환"}

// Rules is the ordered category-inference table. Term keywords are checked
// before demand keywords: Korean product names often contain both, and
// "정기예금" must classify as a term deposit even though it ends in a word
// that also appears in passbook products.
var Rules = []Rule{
	{Category: model.CategoryTerm, Keywords: []string{"정기", "적금", "만기", "복리"}},
	{Category: model.CategoryDemand, Keywords: []string{"입출금", "보통", "파킹", "급여", "통장"}},
	{Category: model.CategoryFX, Keywords: fxKeywords},
	{Category: model.CategoryTrust, Keywords: []string{"신탁", "원금보장", "원금보전"}},
}

// InferCategory matches a product name against Rules. Names matching
// nothing default to a demand deposit.
func InferCategory(product string) model.Category {
	name := strings.ToLower(product)
	for _, rule := range Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				return rule.Category
			}
		}
	}
	return model.CategoryDemand
}

// InferCurrency returns USD for product names carrying a foreign-currency
// keyword, KRW otherwise. Matching is case-insensitive.
func InferCurrency(product string) string {
	name := strings.ToLower(product)
	for _, kw := range fxKeywords {
		if strings.Contains(name, kw) {
			return model.CurrencyUSD
		}
	}
	return model.CurrencyKRW
}

// Category returns the holding's explicit category when tagged, inferring
// from the product name otherwise.
func Category(h model.Holding) model.Category {
	if h.Category != "" {
		return h.Category
	}
	return InferCategory(h.Product)
}

// Currency returns the holding's explicit currency when tagged, inferring
// from the product name otherwise.
func Currency(h model.Holding) string {
	if h.Currency != "" {
		return h.Currency
	}
	return InferCurrency(h.Product)
}

// AmountKRW converts the holding balance into whole-KRW reporting units.
// USD balances use the holding's own rate, or demoRate when the holding
// carries none, and round to the nearest won. KRW balances pass through
// unchanged; a missing balance counts as zero.
func AmountKRW(h model.Holding, demoRate decimal.Decimal) decimal.Decimal {
	if Currency(h) != model.CurrencyUSD {
		return h.Balance
	}
	rate := h.FXRate
	if rate.IsZero() {
		rate = demoRate
	}
	return h.Balance.Mul(rate).Round(0)
}

// Protected reports whether a category qualifies for deposit protection.
// Investment products never qualify, regardless of any catalog match.
func Protected(c model.Category) bool {
	return c != model.CategoryInvestment
}
