package table

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// detectLines caps how much of the text the parser's own delimiter
// detection looks at.
const detectLines = 50

// Parse splits text into a Table. The header is the first non-empty
// line; the separator is re-derived from the text itself, falling back
// to hint (and then to comma) when no candidate splits the lines
// consistently. Rows with a field count different from the header are
// rejected with a ParseError.
func Parse(text string, hint rune) (*Table, error) {
	text = skipLeadingBlank(text)
	if text == "" {
		return nil, &EmptyDataError{Reason: "no rows or columns"}
	}

	delim := detectDelimiter(text, hint)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, wrapCSVErr(err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	var rows [][]Cell
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVErr(err)
		}

		cells := make([]Cell, len(record))
		for i, field := range record {
			cells[i] = newCell(field)
		}
		rows = append(rows, cells)
	}

	if len(rows) == 0 {
		return nil, &EmptyDataError{Reason: "no data rows after header"}
	}

	t := &Table{
		Columns:   columns,
		Rows:      rows,
		Delimiter: delim,
	}
	t.Dtypes = inferDtypes(t)
	return t, nil
}

// skipLeadingBlank drops blank and whitespace-only lines before the
// header so the first non-empty line names the columns.
func skipLeadingBlank(text string) string {
	for text != "" {
		nl := strings.IndexByte(text, '\n')
		var line string
		if nl < 0 {
			line = text
		} else {
			line = text[:nl]
		}
		if strings.TrimSpace(line) != "" {
			return text
		}
		if nl < 0 {
			return ""
		}
		text = text[nl+1:]
	}
	return ""
}

// detectDelimiter scores the candidate separators over the leading
// lines of the full text, independently of the sniffer. The hint only
// breaks the case where nothing splits consistently.
func detectDelimiter(text string, hint rune) rune {
	lines := leadingLines(text, detectLines)

	best := rune(0)
	bestScore := 0.0
	for _, cand := range []rune{',', ';', '\t', '|', ':'} {
		counts := make(map[int]int)
		for _, ln := range lines {
			counts[strings.Count(ln, string(cand))+1]++
		}
		modalFields, modalLines := 0, 0
		for fields, n := range counts {
			if n > modalLines || (n == modalLines && fields > modalFields) {
				modalFields, modalLines = fields, n
			}
		}
		if modalFields < 2 {
			continue
		}
		score := float64(modalLines) / float64(len(lines)) * float64(modalFields)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	if best != 0 {
		return best
	}
	if hint != 0 {
		return hint
	}
	return ','
}

func leadingLines(text string, max int) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var lines []string
	for _, ln := range raw {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
		if len(lines) == max {
			break
		}
	}
	return lines
}

func wrapCSVErr(err error) error {
	if err == io.EOF {
		return &EmptyDataError{Reason: "no rows or columns"}
	}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		cause := "malformed record"
		if csvErr.Err != nil {
			cause = csvErr.Err.Error()
		}
		return &ParseError{Line: csvErr.Line, Cause: cause}
	}
	return &ParseError{Cause: err.Error()}
}
