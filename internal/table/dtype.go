package table

import (
	"strconv"
	"strings"
	"time"
)

// missingTokens are the null markers recognized beyond the empty
// string. Matching is case-insensitive after trimming.
var missingTokens = map[string]bool{
	"na":      true,
	"n/a":     true,
	"null":    true,
	"nan":     true,
	"none":    true,
	"missing": true,
}

func newCell(field string) Cell {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" || missingTokens[strings.ToLower(trimmed)] {
		return Cell{Raw: trimmed, Missing: true}
	}
	return Cell{Raw: trimmed}
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02-Jan-2006",
}

func isInteger(v string) bool {
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func isFloat(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isBoolean(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}

func isDatetime(v string) bool {
	for _, layout := range dateFormats {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// inferDtypes runs the coercion cascade per column: integer, then
// float, then boolean, then datetime, over every non-missing cell. A
// column where no single coercion covers all values falls back to
// string, or to mixed when its cells span more than one primitive kind.
func inferDtypes(t *Table) []Dtype {
	dtypes := make([]Dtype, len(t.Columns))
	for col := range t.Columns {
		dtypes[col] = inferColumn(t, col)
	}
	return dtypes
}

func inferColumn(t *Table, col int) Dtype {
	var values []string
	for _, row := range t.Rows {
		if col >= len(row) || row[col].Missing {
			continue
		}
		values = append(values, row[col].Raw)
	}
	if len(values) == 0 {
		return String
	}

	cascade := []struct {
		dtype Dtype
		ok    func(string) bool
	}{
		{Integer, isInteger},
		{Float, isFloat},
		{Boolean, isBoolean},
		{Datetime, isDatetime},
	}

next:
	for _, step := range cascade {
		for _, v := range values {
			if !step.ok(v) {
				continue next
			}
		}
		return step.dtype
	}

	if kindCount(values) > 1 {
		return Mixed
	}
	return String
}

// kindCount classifies each value into a primitive kind and reports how
// many distinct kinds the column contains.
func kindCount(values []string) int {
	kinds := make(map[string]bool)
	for _, v := range values {
		switch {
		case isInteger(v):
			kinds["integer"] = true
		case isFloat(v):
			kinds["float"] = true
		case isBoolean(v):
			kinds["boolean"] = true
		case isDatetime(v):
			kinds["datetime"] = true
		default:
			kinds["text"] = true
		}
	}
	return len(kinds)
}
