package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/covercheck-dev/covercheck/internal/model"
)

// HoldingsHeader is the canonical column set written by WriteHoldings.
// ReadHoldings accepts any column order and extra columns.
const HoldingsHeader = "id,institution,license,product,category,currency,balance,fx_rate,term_months"

const (
	holdingsNumFields = 9
	colID             = 0
	colInstitution    = 1
	colLicense        = 2
	colProduct        = 3
	colCategory       = 4
	colCurrency       = 5
	colBalance        = 6
	colFXRate         = 7
	colTermMonths     = 8
)

// holdingColumns holds resolved column positions, -1 when absent.
type holdingColumns struct {
	id, institution, license, product int
	category, currency, balance       int
	fxRate, termMonths                int
}

// ReadHoldings reads a holdings CSV with a header row and returns the
// holdings plus the number of skipped rows. Rows missing any identity field
// (id, institution, license) are skipped. Malformed numerics degrade to
// zero; unknown categories and currencies are dropped so the classifier can
// infer them later.
func ReadHoldings(r io.Reader) ([]model.Holding, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading holdings CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, nil
	}

	cols, err := resolveHoldingColumns(records[0])
	if err != nil {
		return nil, 0, err
	}

	var holdings []model.Holding
	skipped := 0
	for _, rec := range records[1:] {
		h := unmarshalHolding(rec, cols)
		if !h.Identified() {
			skipped++
			continue
		}
		holdings = append(holdings, h)
	}
	return holdings, skipped, nil
}

// LoadHoldingsFile reads a holdings CSV from disk.
func LoadHoldingsFile(path string) ([]model.Holding, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening holdings file: %w", err)
	}
	defer f.Close()
	return ReadHoldings(f)
}

// WriteHoldings writes holdings as CSV with the canonical header. This is
// the format the mock generator exports and ReadHoldings round-trips.
func WriteHoldings(w io.Writer, holdings []model.Holding) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(HoldingsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, h := range holdings {
		if err := cw.Write(MarshalHolding(h)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalHolding converts a Holding to a CSV row in canonical column order.
func MarshalHolding(h model.Holding) []string {
	row := make([]string, holdingsNumFields)
	row[colID] = h.ID
	row[colInstitution] = h.Institution
	row[colLicense] = h.License
	row[colProduct] = h.Product
	row[colCategory] = string(h.Category)
	row[colCurrency] = h.Currency
	if !h.Balance.IsZero() {
		row[colBalance] = h.Balance.String()
	}
	if !h.FXRate.IsZero() {
		row[colFXRate] = h.FXRate.String()
	}
	if h.TermMonths != 0 {
		row[colTermMonths] = strconv.Itoa(h.TermMonths)
	}
	return row
}

func resolveHoldingColumns(header []string) (holdingColumns, error) {
	idx := headerIndex(header)
	col := func(name string) int {
		if c, ok := idx[name]; ok {
			return c
		}
		return -1
	}

	cols := holdingColumns{
		id:          col("id"),
		institution: col("institution"),
		license:     col("license"),
		product:     col("product"),
		category:    col("category"),
		currency:    col("currency"),
		balance:     col("balance"),
		fxRate:      col("fx_rate"),
		termMonths:  col("term_months"),
	}
	// Identity columns must exist; without them every row would be dropped.
	if cols.id < 0 || cols.institution < 0 || cols.license < 0 {
		return holdingColumns{}, fmt.Errorf("holdings CSV: header %v lacks id/institution/license columns", header)
	}
	return cols, nil
}

func unmarshalHolding(rec []string, cols holdingColumns) model.Holding {
	h := model.Holding{
		ID:          strings.TrimSpace(field(rec, cols.id)),
		Institution: strings.TrimSpace(field(rec, cols.institution)),
		License:     strings.TrimSpace(field(rec, cols.license)),
		Product:     strings.TrimSpace(field(rec, cols.product)),
		Balance:     parseAmount(field(rec, cols.balance)),
		FXRate:      parseAmount(field(rec, cols.fxRate)),
		TermMonths:  parseMonths(field(rec, cols.termMonths)),
	}

	if c := model.Category(strings.ToLower(strings.TrimSpace(field(rec, cols.category)))); model.KnownCategory(c) {
		h.Category = c
	}
	if cur := strings.ToUpper(strings.TrimSpace(field(rec, cols.currency))); cur == model.CurrencyKRW || cur == model.CurrencyUSD {
		h.Currency = cur
	}
	return h
}

// parseAmount parses a decimal field, degrading malformed or negative
// values to zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseMonths(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
