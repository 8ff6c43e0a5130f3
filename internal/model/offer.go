package model

import (
	"github.com/shopspring/decimal"
)

// RateOffer is one row of the static rate-offer reference list the routing
// allocator draws from. AnnualRate is a fraction (0.042 = 4.2% per year).
// TermMonths zero means an open-ended (parking) product.
type RateOffer struct {
	Institution string          `json:"institution"`
	License     string          `json:"license"`
	Product     string          `json:"product"`
	TermMonths  int             `json:"term_months"`
	AnnualRate  decimal.Decimal `json:"annual_rate"`
}
