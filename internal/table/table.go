// Package table parses decoded CSV text into a typed tabular value.
package table

import "fmt"

// Dtype is the inferred semantic type of a column.
type Dtype string

const (
	Integer  Dtype = "integer"
	Float    Dtype = "float"
	Boolean  Dtype = "boolean"
	String   Dtype = "string"
	Datetime Dtype = "datetime"
	Mixed    Dtype = "mixed"
)

// Cell is a single field value. Missing marks blank fields and common
// null tokens; Raw keeps the original text for display and sizing.
type Cell struct {
	Raw     string
	Missing bool
}

// Table is an immutable parse result: ordered column names, one Dtype
// per column, and rows of equal length. Delimiter records the separator
// the parser actually split on, which may differ from the sniffer's
// advisory guess.
type Table struct {
	Columns   []string
	Dtypes    []Dtype
	Rows      [][]Cell
	Delimiter rune
}

// EmptyDataError reports input that decodes but contains no parsable
// rows or columns at all.
type EmptyDataError struct {
	Reason string
}

func (e *EmptyDataError) Error() string {
	return "empty data: " + e.Reason
}

// ParseError reports an irreconcilable structural failure, such as a
// row whose field count does not match the header.
type ParseError struct {
	Line  int
	Cause string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %s", e.Line, e.Cause)
	}
	return "parse error: " + e.Cause
}
