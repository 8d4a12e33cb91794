// Package profile computes the statistical report for a parsed table:
// dimensions, dtypes, missingness, duplicates, numeric summary, row
// preview, and a memory estimate.
package profile

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"csvscope/internal/table"
)

// previewRows bounds both the head preview and the duplicate preview.
const previewRows = 10

// NumericSummary is the describe-style aggregate for one integer or
// float column. Std is the sample standard deviation (n-1) and is NaN
// when fewer than two values exist.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// DuplicateRow is one repeated row in original order. Index is the
// 1-based data row number (header excluded).
type DuplicateRow struct {
	Index int
	Cells []string
}

// Report is the immutable aggregate of all computed statistics for one
// table, plus the echoed encoding and delimiters filled in by the
// pipeline caller.
type Report struct {
	Rows int
	Cols int

	Columns []string
	Dtypes  []table.Dtype

	MissingPerColumn  []int
	OverallMissing    int
	OverallMissingPct float64

	DuplicateCount   int
	DuplicatePreview []DuplicateRow

	NumericSummaries []NumericSummary

	Preview [][]string

	MemoryEstimateBytes int64

	Encoding          string
	DetectedDelimiter string
	ParserDelimiter   string
}

// Build derives a Report from t. It is a pure function: no I/O, no
// retained references, and it never fails for a well-formed table. A
// zero-row table yields zero counts and a 0.0 missing percentage.
func Build(t *table.Table) *Report {
	r := &Report{
		Rows:    len(t.Rows),
		Cols:    len(t.Columns),
		Columns: append([]string(nil), t.Columns...),
		Dtypes:  append([]table.Dtype(nil), t.Dtypes...),
	}

	r.MissingPerColumn = make([]int, r.Cols)
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < r.Cols && cell.Missing {
				r.MissingPerColumn[i]++
			}
		}
	}
	for _, n := range r.MissingPerColumn {
		r.OverallMissing += n
	}
	if total := r.Rows * r.Cols; total > 0 {
		r.OverallMissingPct = float64(r.OverallMissing) / float64(total) * 100.0
	}

	r.DuplicateCount, r.DuplicatePreview = findDuplicates(t)
	r.NumericSummaries = summarizeNumeric(t)
	r.Preview = headRows(t, previewRows)
	r.MemoryEstimateBytes = estimateMemory(t)

	return r
}

// findDuplicates counts rows that repeat an earlier row exactly. The
// first occurrence of each distinct row is not counted; every later
// repeat is, and the first previewRows repeats are kept in order.
func findDuplicates(t *table.Table) (int, []DuplicateRow) {
	seen := make(map[string]bool, len(t.Rows))
	count := 0
	var preview []DuplicateRow

	for i, row := range t.Rows {
		key := rowKey(row)
		if !seen[key] {
			seen[key] = true
			continue
		}
		count++
		if len(preview) < previewRows {
			preview = append(preview, DuplicateRow{
				Index: i + 1,
				Cells: rawCells(row),
			})
		}
	}
	return count, preview
}

func rowKey(row []table.Cell) string {
	parts := make([]string, len(row))
	for i, cell := range row {
		if cell.Missing {
			parts[i] = "\x00"
		} else {
			parts[i] = cell.Raw
		}
	}
	return strings.Join(parts, "\x1f")
}

func rawCells(row []table.Cell) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = cell.Raw
	}
	return out
}

func headRows(t *table.Table, n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		out[i] = rawCells(t.Rows[i])
	}
	return out
}

// summarizeNumeric computes describe statistics for every integer or
// float column. Missing cells are excluded; quartiles use linear
// interpolation between order statistics.
func summarizeNumeric(t *table.Table) []NumericSummary {
	var summaries []NumericSummary

	for col, dtype := range t.Dtypes {
		if dtype != table.Integer && dtype != table.Float {
			continue
		}

		var values []float64
		for _, row := range t.Rows {
			if col >= len(row) || row[col].Missing {
				continue
			}
			v, err := strconv.ParseFloat(row[col].Raw, 64)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			continue
		}

		sort.Float64s(values)

		var sum, sumSq float64
		for _, v := range values {
			sum += v
			sumSq += v * v
		}
		n := float64(len(values))
		mean := sum / n

		std := math.NaN()
		if len(values) > 1 {
			variance := (sumSq - sum*sum/n) / (n - 1)
			if variance < 0 {
				variance = 0
			}
			std = math.Sqrt(variance)
		}

		summaries = append(summaries, NumericSummary{
			Column: t.Columns[col],
			Count:  len(values),
			Mean:   mean,
			Std:    std,
			Min:    values[0],
			Q25:    quantile(values, 0.25),
			Q50:    quantile(values, 0.50),
			Q75:    quantile(values, 0.75),
			Max:    values[len(values)-1],
		})
	}
	return summaries
}

// quantile interpolates linearly between the order statistics of
// sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Per-cell storage costs for the memory estimate. Numeric and boolean
// cells are priced at machine-word width, datetimes at the size of a
// wall-clock value, text at a string header plus its byte length.
const (
	columnOverhead   = 48
	rowOverhead      = 24
	scalarCellCost   = 8
	datetimeCellCost = 24
	textCellBase     = 16
	missingCellCost  = 16
)

// estimateMemory approximates the byte cost of holding the table in
// memory. The absolute number is representation-dependent; the estimate
// only promises monotonicity: more rows or more text always costs more.
func estimateMemory(t *table.Table) int64 {
	est := int64(len(t.Columns)) * columnOverhead
	for _, name := range t.Columns {
		est += textCellBase + int64(len(name))
	}

	for _, row := range t.Rows {
		est += rowOverhead
		for i, cell := range row {
			switch {
			case cell.Missing:
				est += missingCellCost
			case i < len(t.Dtypes) && (t.Dtypes[i] == table.Integer ||
				t.Dtypes[i] == table.Float || t.Dtypes[i] == table.Boolean):
				est += scalarCellCost
			case i < len(t.Dtypes) && t.Dtypes[i] == table.Datetime:
				est += datetimeCellCost
			default:
				est += textCellBase + int64(len(cell.Raw))
			}
		}
	}
	return est
}
