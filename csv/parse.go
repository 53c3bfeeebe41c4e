// Package csv provides the file-backed catalog: a parser for the catalog
// table and a memoised loader implementing handbook.CatalogService.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fwojciec/handbook"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column headers of the catalog table.
const (
	ColumnID           = "ID"
	ColumnSectionOrder = "セクション内番号"
	ColumnTitle        = "項目名"
	ColumnSectionName  = "セクション名"
	ColumnURL          = "URL"
	ColumnURL2         = "URL2"
)

var requiredColumns = []string{
	ColumnID,
	ColumnSectionOrder,
	ColumnTitle,
	ColumnSectionName,
	ColumnURL,
}

// Parse reads a catalog table. The input must be UTF-8; a leading byte order
// mark is ignored. Columns are located by header name, so their order and
// any extra columns do not matter.
//
// Malformed numeric cells never fail the parse. An ID that is blank, not a
// non-negative integer, or already used by an earlier row becomes
// handbook.NoID. A section order that is blank or not a number becomes NaN.
func Parse(r io.Reader) ([]*handbook.Entry, error) {
	cr := stdcsv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, handbook.Errorf(handbook.EINVALID, "catalog is empty")
	} else if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, handbook.Errorf(handbook.EINVALID, "catalog column %q missing", name)
		}
	}

	cell := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var entries []*handbook.Entry
	seen := make(map[int]bool)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}

		entry := &handbook.Entry{
			ID:           parseID(cell(record, ColumnID)),
			SectionName:  strings.TrimSpace(cell(record, ColumnSectionName)),
			SectionOrder: parseOrder(cell(record, ColumnSectionOrder)),
			Title:        strings.TrimSpace(cell(record, ColumnTitle)),
			URL:          strings.TrimSpace(cell(record, ColumnURL)),
			URL2:         strings.TrimSpace(cell(record, ColumnURL2)),
		}
		if entry.ID != handbook.NoID {
			if seen[entry.ID] {
				entry.ID = handbook.NoID
			} else {
				seen[entry.ID] = true
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// parseID accepts integral numbers such as "12" or "12.0".
func parseID(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return handbook.NoID
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return handbook.NoID
	}
	return int(f)
}

func parseOrder(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Issue describes a catalog row that loaded in a degraded state.
type Issue struct {
	// Position is the 1-based position of the row among the catalog rows.
	Position int
	Title    string
	Problem  string
}

// Issues lists rows that cannot be selected, have no usable section order,
// or cannot be rendered.
func Issues(entries []*handbook.Entry) []Issue {
	var issues []Issue
	for i, e := range entries {
		if !e.HasID() {
			issues = append(issues, Issue{Position: i + 1, Title: e.Title, Problem: "ID missing, malformed or duplicated"})
		}
		if !e.HasOrder() {
			issues = append(issues, Issue{Position: i + 1, Title: e.Title, Problem: "section order missing or malformed"})
		}
		if err := e.Validate(); err != nil {
			issues = append(issues, Issue{Position: i + 1, Title: e.Title, Problem: "URL missing"})
		}
	}
	return issues
}
