package catalog

import (
	"strings"
	"unicode"

	"github.com/covercheck-dev/covercheck/internal/model"
)

// punctuation stripped by Normalize. The catalog feed and the holdings feed
// disagree on spacing and bracketing for the same product, so matching runs
// on a canonical form of both sides.
const punctuation = "()[]·,-_/"

// Normalize lower-cases s and removes all whitespace plus the fixed
// punctuation set. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

// Index is an immutable lookup set over (institution, product) pairs known
// to be insured. Built once from catalog entries, read-only afterwards.
type Index struct {
	keys map[string]struct{}
}

// NewIndex builds an Index from catalog entries. Entries that are empty
// after normalization are ignored.
func NewIndex(entries []model.CatalogEntry) *Index {
	keys := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		k := key(e.Institution, e.Product)
		if k == "|" {
			continue
		}
		keys[k] = struct{}{}
	}
	return &Index{keys: keys}
}

// Contains reports whether (institution, product) is a cataloged insured
// product. An empty index matches nothing.
func (idx *Index) Contains(institution, product string) bool {
	_, ok := idx.keys[key(institution, product)]
	return ok
}

// Len returns the number of distinct cataloged products.
func (idx *Index) Len() int {
	return len(idx.keys)
}

func key(institution, product string) string {
	return Normalize(institution) + "|" + Normalize(product)
}
