// Package feed reads the external CSV feeds behind the core: the insured
// product catalog and the depositor's holdings. Both readers follow the same
// policy: malformed rows are skipped and counted, never fatal, and columns
// are located by header name so feeds can reorder or add columns freely.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/covercheck-dev/covercheck/internal/model"
)

// Header aliases accepted for the two catalog columns. Feeds disagree on
// naming; first alias hit wins.
var (
	institutionHeaders = []string{"institution", "institution_name", "기관명"}
	productHeaders     = []string{"product", "product_name", "상품명"}
)

// ReadCatalog reads a catalog CSV with a header row and returns the entries
// plus the number of skipped rows. Rows with an empty institution or product
// after trimming are skipped. Missing required columns are an error: without
// them the whole feed is unusable, not just single rows.
func ReadCatalog(r io.Reader) ([]model.CatalogEntry, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading catalog CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, nil
	}

	header := headerIndex(records[0])
	instCol, ok := findColumn(header, institutionHeaders)
	if !ok {
		return nil, 0, fmt.Errorf("catalog CSV: no institution column in header %v", records[0])
	}
	prodCol, ok := findColumn(header, productHeaders)
	if !ok {
		return nil, 0, fmt.Errorf("catalog CSV: no product column in header %v", records[0])
	}

	var entries []model.CatalogEntry
	skipped := 0
	for _, rec := range records[1:] {
		institution := strings.TrimSpace(field(rec, instCol))
		product := strings.TrimSpace(field(rec, prodCol))
		if institution == "" || product == "" {
			skipped++
			continue
		}
		entries = append(entries, model.CatalogEntry{Institution: institution, Product: product})
	}
	return entries, skipped, nil
}

// LoadCatalogFile reads a catalog CSV from disk.
func LoadCatalogFile(path string) ([]model.CatalogEntry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// headerIndex maps normalized header names to their column position. The
// first occurrence of a duplicated header wins.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

func findColumn(header map[string]int, aliases []string) (int, bool) {
	for _, alias := range aliases {
		if col, ok := header[alias]; ok {
			return col, true
		}
	}
	return 0, false
}

// field returns rec[col], tolerating short rows.
func field(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return rec[col]
}
