// Package render turns a Report into human-facing documents: a
// Markdown-flavoured text report for the CLI and an HTML page for the
// web surface. Numeric summary values use one precision policy on both
// surfaces: three decimal places, plain numbers.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"csvscope/internal/profile"
)

// Text renders the report as a Markdown document. source names the
// analyzed input (file path or upload name) and may be empty.
func Text(r *profile.Report, source string) string {
	var b strings.Builder

	b.WriteString("# CSV Analysis\n")
	if source != "" {
		fmt.Fprintf(&b, "- File: %s\n", source)
	}
	fmt.Fprintf(&b, "- Encoding: %s\n", r.Encoding)
	fmt.Fprintf(&b, "- Detected delimiter: %s\n", printableDelim(r.DetectedDelimiter))
	fmt.Fprintf(&b, "- Parser delimiter: %s\n\n", printableDelim(r.ParserDelimiter))

	b.WriteString("## Dimensions\n")
	fmt.Fprintf(&b, "- Rows: %d\n", r.Rows)
	fmt.Fprintf(&b, "- Columns: %d\n\n", r.Cols)

	b.WriteString("## Dtypes\n")
	writeAligned(&b, [][]string{{"Column", "Dtype"}}, func(rows *[][]string) {
		for i, name := range r.Columns {
			*rows = append(*rows, []string{name, string(r.Dtypes[i])})
		}
	})
	b.WriteString("\n")

	b.WriteString("## Missing per column\n")
	writeAligned(&b, [][]string{{"Column", "Missing"}}, func(rows *[][]string) {
		for i, name := range r.Columns {
			*rows = append(*rows, []string{name, strconv.Itoa(r.MissingPerColumn[i])})
		}
	})
	fmt.Fprintf(&b, "\nOverall missing: %d values (%.3f%%)\n\n",
		r.OverallMissing, r.OverallMissingPct)

	b.WriteString("## Duplicates\n")
	fmt.Fprintf(&b, "- Count: %d\n", r.DuplicateCount)
	if r.DuplicateCount > 0 {
		b.WriteString("Preview (up to 10 rows):\n")
		writeAligned(&b, [][]string{append([]string{"Row"}, r.Columns...)}, func(rows *[][]string) {
			for _, dup := range r.DuplicatePreview {
				*rows = append(*rows, append([]string{strconv.Itoa(dup.Index)}, dup.Cells...))
			}
		})
	}
	b.WriteString("\n")

	b.WriteString("## Numeric summary\n")
	if len(r.NumericSummaries) == 0 {
		b.WriteString("No numeric columns.\n")
	} else {
		header := []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}
		writeAligned(&b, [][]string{header}, func(rows *[][]string) {
			for _, s := range r.NumericSummaries {
				*rows = append(*rows, []string{
					s.Column,
					strconv.Itoa(s.Count),
					FormatFloat(s.Mean),
					FormatFloat(s.Std),
					FormatFloat(s.Min),
					FormatFloat(s.Q25),
					FormatFloat(s.Q50),
					FormatFloat(s.Q75),
					FormatFloat(s.Max),
				})
			}
		})
	}
	b.WriteString("\n")

	b.WriteString("## Preview\n")
	if len(r.Preview) == 0 {
		b.WriteString("No rows.\n")
	} else {
		writeAligned(&b, [][]string{r.Columns}, func(rows *[][]string) {
			for _, row := range r.Preview {
				*rows = append(*rows, row)
			}
		})
	}
	b.WriteString("\n")

	b.WriteString("## Memory usage\n")
	fmt.Fprintf(&b, "- %d bytes (%s)\n", r.MemoryEstimateBytes, HumanBytes(r.MemoryEstimateBytes))

	return b.String()
}

// FormatFloat applies the report precision policy: three decimals,
// NaN spelled out for undefined statistics.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// HumanBytes renders a byte count with binary units.
func HumanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func printableDelim(d string) string {
	switch d {
	case "\t":
		return `"\t"`
	default:
		return `"` + d + `"`
	}
}

// writeAligned lays out a header row plus generated data rows in
// aligned columns.
func writeAligned(b *strings.Builder, rows [][]string, fill func(*[][]string)) {
	fill(&rows)
	w := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
