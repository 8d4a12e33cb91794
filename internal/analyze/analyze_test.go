package analyze

import (
	"errors"
	"reflect"
	"testing"

	"csvscope/internal/table"
)

func TestAnalyzeBasic(t *testing.T) {
	r, err := Analyze([]byte("a,b,c\n1,2,3\n4,5,6\n"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if r.Rows != 2 || r.Cols != 3 {
		t.Errorf("dimensions = %dx%d, want 2x3", r.Rows, r.Cols)
	}
	for i, dt := range r.Dtypes {
		if dt != table.Integer {
			t.Errorf("dtype[%d] = %q, want integer", i, dt)
		}
	}
	if r.OverallMissing != 0 || r.DuplicateCount != 0 {
		t.Errorf("missing/duplicates = %d/%d, want 0/0",
			r.OverallMissing, r.DuplicateCount)
	}
	if r.Encoding != "utf-8" {
		t.Errorf("encoding = %q, want utf-8", r.Encoding)
	}
}

func TestAnalyzeDuplicateRow(t *testing.T) {
	r, err := Analyze([]byte("a,b\n1,2\n1,2\n"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.DuplicateCount != 1 {
		t.Errorf("duplicates = %d, want 1", r.DuplicateCount)
	}
	if len(r.DuplicatePreview) != 1 || r.DuplicatePreview[0].Index != 2 {
		t.Errorf("duplicate preview = %+v, want exactly data row 2", r.DuplicatePreview)
	}
}

func TestAnalyzeSemicolon(t *testing.T) {
	r, err := Analyze([]byte("a;b\n1;2\n3;4\n"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.Cols != 2 {
		t.Errorf("cols = %d, want 2", r.Cols)
	}
	if r.DetectedDelimiter != ";" {
		t.Errorf("detected delimiter = %q, want ;", r.DetectedDelimiter)
	}
	if r.ParserDelimiter != ";" {
		t.Errorf("parser delimiter = %q, want ;", r.ParserDelimiter)
	}
}

func TestAnalyzeLatin1Fallback(t *testing.T) {
	input := append([]byte("name,n\ncaf"), 0xE9, ',', '1', '\n')
	r, err := Analyze(input)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.Encoding != "latin-1" {
		t.Errorf("encoding = %q, want latin-1", r.Encoding)
	}
	if r.Rows != 1 || r.Cols != 2 {
		t.Errorf("dimensions = %dx%d, want 1x2", r.Rows, r.Cols)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, input := range [][]byte{nil, []byte(""), []byte("   \n\t\n")} {
		_, err := Analyze(input)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestAnalyzeHeaderOnly(t *testing.T) {
	_, err := Analyze([]byte("a,b,c\n"))
	var emptyErr *table.EmptyDataError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("error = %v, want *table.EmptyDataError", err)
	}
}

func TestAnalyzeRaggedRows(t *testing.T) {
	_, err := Analyze([]byte("a,b\n1,2\n3,4,5\n"))
	var parseErr *table.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *table.ParseError", err)
	}
}

func TestAnalyzeMissingPctBounds(t *testing.T) {
	r, err := Analyze([]byte("a,b\n,\n,\n"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.OverallMissingPct < 0 || r.OverallMissingPct > 100 {
		t.Errorf("missing pct = %f, want within [0,100]", r.OverallMissingPct)
	}
	if r.OverallMissingPct != 100 {
		t.Errorf("missing pct = %f, want 100 for all-missing table", r.OverallMissingPct)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	input := []byte("a,b\n1,x\n2,y\n1,x\n")
	first, err := Analyze(input)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := Analyze(input)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two Analyze calls on the same input differ")
	}
}
