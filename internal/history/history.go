// Package history keeps an append-only CSV log of generated routing plans
// so runs can be compared over time.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/covercheck-dev/covercheck/internal/routing"
)

// Entry is one row in the plan history log.
type Entry struct {
	Timestamp         time.Time
	PlanID            string
	IdleCash          decimal.Decimal
	Allocated         decimal.Decimal
	ProjectedInterest decimal.Decimal
	Allocations       int
}

// Header is the CSV header for plan history files.
const Header = "timestamp,plan_id,idle_cash,allocated,projected_interest,allocations"

const (
	numFields            = 6
	colTimestamp         = 0
	colPlanID            = 1
	colIdleCash          = 2
	colAllocated         = 3
	colProjectedInterest = 4
	colAllocations       = 5
)

// FromPlan summarizes a routing plan as one history entry.
func FromPlan(p routing.Plan) Entry {
	return Entry{
		Timestamp:         p.GeneratedAt,
		PlanID:            p.ID.String(),
		IdleCash:          p.IdleCash,
		Allocated:         p.TotalAllocated(),
		ProjectedInterest: p.ProjectedInterest,
		Allocations:       len(p.Entries),
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colPlanID] = e.PlanID
	row[colIdleCash] = e.IdleCash.StringFixed(0)
	row[colAllocated] = e.Allocated.StringFixed(0)
	row[colProjectedInterest] = e.ProjectedInterest.StringFixed(0)
	row[colAllocations] = strconv.Itoa(e.Allocations)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	idle, err := decimal.NewFromString(record[colIdleCash])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing idle_cash %q: %w", record[colIdleCash], err)
	}
	allocated, err := decimal.NewFromString(record[colAllocated])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing allocated %q: %w", record[colAllocated], err)
	}
	interest, err := decimal.NewFromString(record[colProjectedInterest])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing projected_interest %q: %w", record[colProjectedInterest], err)
	}
	n, err := strconv.Atoi(record[colAllocations])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing allocations %q: %w", record[colAllocations], err)
	}

	return Entry{
		Timestamp:         ts,
		PlanID:            record[colPlanID],
		IdleCash:          idle,
		Allocated:         allocated,
		ProjectedInterest: interest,
		Allocations:       n,
	}, nil
}

// Append writes one entry to the history file at path, creating the file
// and header when missing.
func Append(path string, e Entry) error {
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return cw.Error()
}

// Read returns all entries from the history file at path. A missing file
// reads as empty.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
