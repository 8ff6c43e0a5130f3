package model

import (
	"github.com/shopspring/decimal"
)

// Category classifies a holding's product type for protection purposes.
type Category string

const (
	CategoryDemand     Category = "demand"     // checking / passbook / parking accounts
	CategoryTerm       Category = "term"       // fixed-term and installment deposits
	CategoryFX         Category = "fx"         // foreign-currency deposits
	CategoryTrust      Category = "trust"      // principal-protected trusts
	CategoryInvestment Category = "investment" // funds, equities, ELS; never protected
)

// Currency codes carried by holdings. KRW is the reporting currency.
const (
	CurrencyKRW = "KRW"
	CurrencyUSD = "USD"
)

// Holding is one account or product position held by the depositor.
// Holdings are constructed by a feed or the mock generator and are
// read-only from then on.
type Holding struct {
	ID          string          `json:"id"`
	Institution string          `json:"institution"`
	License     string          `json:"license"` // protection-group key; one insurance cap per license
	Product     string          `json:"product"`
	Category    Category        `json:"category,omitempty"` // empty = untagged, classifier infers
	Currency    string          `json:"currency,omitempty"` // empty = untagged, classifier infers
	Balance     decimal.Decimal `json:"balance"`            // in Currency units; zero when the source omitted it
	FXRate      decimal.Decimal `json:"fx_rate,omitempty"`  // KRW per unit for USD holdings; zero = demo rate
	TermMonths  int             `json:"term_months,omitempty"`
}

// Identified reports whether the holding carries the identity fields a feed
// row must have. Rows failing this are skipped at the boundary, never
// propagated into aggregation.
func (h Holding) Identified() bool {
	return h.ID != "" && h.Institution != "" && h.License != ""
}

// KnownCategory reports whether c is one of the defined category values.
func KnownCategory(c Category) bool {
	switch c {
	case CategoryDemand, CategoryTerm, CategoryFX, CategoryTrust, CategoryInvestment:
		return true
	}
	return false
}
