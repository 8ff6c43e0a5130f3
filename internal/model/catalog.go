package model

// CatalogEntry is one row of the deposit-insurance product catalog: an
// (institution, product) pair published as government-insured. Matching
// against holdings is done on a normalized form of both fields, so entries
// keep whatever spacing and punctuation the feed used.
type CatalogEntry struct {
	Institution string `json:"institution"`
	Product     string `json:"product"`
}
