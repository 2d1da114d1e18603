// Package csvio reads client portfolio CSV exports into raw rows.
// It only resolves the column layout; field interpretation (money parsing,
// status derivation, enhancement merging) belongs to the engine.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Row is one CSV record with its columns resolved but values left raw.
type Row struct {
	Name           string
	ContractPeriod string
	// Revenue holds the raw money string for each fiscal-year column.
	Revenue map[int]string
	// Extra carries any remaining columns keyed by normalized header
	// (lower-cased, whitespace-collapsed), e.g. "relationship strength".
	Extra map[string]string
	Line  int
}

var yearHeader = regexp.MustCompile(`^\d{4}$`)

// Canonical headers. The client name column is required; everything else is
// optional.
const (
	headerClient         = "client"
	headerContractPeriod = "contract period"
)

// ParseFile reads and parses a CSV file.
func ParseFile(path string) ([]Row, error) {
	f, err := os.Open(path) // #nosec G304 -- user-supplied import path
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

// Parse reads CSV data from r. The first record is the header; a CLIENT
// column must be present. Year columns are recognized by a bare 4-digit
// header. Short records are tolerated (trailing columns read as empty).
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nameCol := -1
	periodCol := -1
	yearCols := make(map[int]int)   // column index -> fiscal year
	extraCols := make(map[int]string)
	for i, raw := range header {
		h := normalizeHeader(raw)
		switch {
		case h == headerClient:
			nameCol = i
		case h == headerContractPeriod:
			periodCol = i
		case yearHeader.MatchString(h):
			year, _ := strconv.Atoi(h)
			yearCols[i] = year
		case h != "":
			extraCols[i] = h
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("CSV header has no CLIENT column")
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		row := Row{
			Name:    field(record, nameCol),
			Revenue: make(map[int]string, len(yearCols)),
			Extra:   make(map[string]string, len(extraCols)),
			Line:    line,
		}
		if periodCol >= 0 {
			row.ContractPeriod = field(record, periodCol)
		}
		for col, year := range yearCols {
			row.Revenue[year] = field(record, col)
		}
		for col, name := range extraCols {
			if v := field(record, col); v != "" {
				row.Extra[name] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func normalizeHeader(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
