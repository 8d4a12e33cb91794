package profile

import (
	"math"
	"reflect"
	"testing"

	"csvscope/internal/table"
)

func mustParse(t *testing.T, text string) *table.Table {
	t.Helper()
	tbl, err := table.Parse(text, ',')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tbl
}

func TestBuildBasic(t *testing.T) {
	r := Build(mustParse(t, "a,b,c\n1,2,3\n4,5,6\n"))

	if r.Rows != 2 || r.Cols != 3 {
		t.Errorf("dimensions = %dx%d, want 2x3", r.Rows, r.Cols)
	}
	for i, dt := range r.Dtypes {
		if dt != table.Integer {
			t.Errorf("dtype[%d] = %q, want integer", i, dt)
		}
	}
	if r.OverallMissing != 0 {
		t.Errorf("overall missing = %d, want 0", r.OverallMissing)
	}
	if r.DuplicateCount != 0 {
		t.Errorf("duplicates = %d, want 0", r.DuplicateCount)
	}
	if len(r.NumericSummaries) != 3 {
		t.Errorf("numeric summaries = %d, want 3", len(r.NumericSummaries))
	}
}

func TestBuildDuplicates(t *testing.T) {
	r := Build(mustParse(t, "a,b\n1,2\n1,2\n3,4\n1,2\n"))

	if r.DuplicateCount != 2 {
		t.Errorf("duplicates = %d, want 2", r.DuplicateCount)
	}
	if len(r.DuplicatePreview) != 2 {
		t.Fatalf("duplicate preview = %d rows, want 2", len(r.DuplicatePreview))
	}
	if r.DuplicatePreview[0].Index != 2 {
		t.Errorf("first duplicate index = %d, want 2", r.DuplicatePreview[0].Index)
	}
	if !reflect.DeepEqual(r.DuplicatePreview[0].Cells, []string{"1", "2"}) {
		t.Errorf("first duplicate cells = %v, want [1 2]", r.DuplicatePreview[0].Cells)
	}
}

func TestBuildMissing(t *testing.T) {
	r := Build(mustParse(t, "a,b\n1,x\n,y\n3,z\n"))

	if r.MissingPerColumn[0] != 1 || r.MissingPerColumn[1] != 0 {
		t.Errorf("missing per column = %v, want [1 0]", r.MissingPerColumn)
	}
	if r.OverallMissing != 1 {
		t.Errorf("overall missing = %d, want 1", r.OverallMissing)
	}
	wantPct := 1.0 / 6.0 * 100.0
	if math.Abs(r.OverallMissingPct-wantPct) > 1e-9 {
		t.Errorf("overall missing pct = %f, want %f", r.OverallMissingPct, wantPct)
	}
	// Missing cells are excluded from inference.
	if r.Dtypes[0] != table.Integer {
		t.Errorf("dtype[a] = %q, want integer", r.Dtypes[0])
	}
}

func TestBuildNumericSummary(t *testing.T) {
	r := Build(mustParse(t, "v,tag\n1,a\n2,b\n3,c\n4,d\n"))

	if len(r.NumericSummaries) != 1 {
		t.Fatalf("numeric summaries = %d, want 1", len(r.NumericSummaries))
	}
	s := r.NumericSummaries[0]

	if s.Column != "v" || s.Count != 4 {
		t.Errorf("summary column/count = %s/%d, want v/4", s.Column, s.Count)
	}
	if s.Mean != 2.5 {
		t.Errorf("mean = %f, want 2.5", s.Mean)
	}
	// Sample std of 1..4 is sqrt(5/3).
	if math.Abs(s.Std-math.Sqrt(5.0/3.0)) > 1e-9 {
		t.Errorf("std = %f, want %f", s.Std, math.Sqrt(5.0/3.0))
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("min/max = %f/%f, want 1/4", s.Min, s.Max)
	}
	if s.Q25 != 1.75 || s.Q50 != 2.5 || s.Q75 != 3.25 {
		t.Errorf("quartiles = %f/%f/%f, want 1.75/2.5/3.25", s.Q25, s.Q50, s.Q75)
	}
}

func TestBuildStdUndefinedForSingleValue(t *testing.T) {
	r := Build(mustParse(t, "v,w\n7,1\n,2\n"))

	var vSummary *NumericSummary
	for i := range r.NumericSummaries {
		if r.NumericSummaries[i].Column == "v" {
			vSummary = &r.NumericSummaries[i]
		}
	}
	if vSummary == nil {
		t.Fatal("no summary for column v")
	}
	if !math.IsNaN(vSummary.Std) {
		t.Errorf("std = %f, want NaN for n=1", vSummary.Std)
	}
}

func TestBuildNoNumericColumns(t *testing.T) {
	r := Build(mustParse(t, "a,b\nx,y\nz,w\n"))
	if len(r.NumericSummaries) != 0 {
		t.Errorf("numeric summaries = %d, want 0", len(r.NumericSummaries))
	}
}

func TestBuildPreview(t *testing.T) {
	text := "a\n"
	for i := 0; i < 15; i++ {
		text += "1\n"
	}
	r := Build(mustParse(t, text))
	if len(r.Preview) != 10 {
		t.Errorf("preview rows = %d, want 10", len(r.Preview))
	}
}

func TestBuildIdempotent(t *testing.T) {
	tbl := mustParse(t, "a,b\n1,x\n2,y\n3,\n")
	first := Build(tbl)
	second := Build(tbl)
	if !reflect.DeepEqual(first, second) {
		t.Error("two Build calls on the same table differ")
	}
}

func TestMemoryEstimateMonotonic(t *testing.T) {
	small := Build(mustParse(t, "a,b\n1,x\n"))
	large := Build(mustParse(t, "a,b\n1,x\n2,y\n"))
	if large.MemoryEstimateBytes <= small.MemoryEstimateBytes {
		t.Errorf("estimate did not grow: %d -> %d",
			small.MemoryEstimateBytes, large.MemoryEstimateBytes)
	}

	shortText := Build(mustParse(t, "a\nx\n"))
	longText := Build(mustParse(t, "a\nxxxxxxxxxx\n"))
	if longText.MemoryEstimateBytes <= shortText.MemoryEstimateBytes {
		t.Errorf("estimate did not grow with text: %d -> %d",
			shortText.MemoryEstimateBytes, longText.MemoryEstimateBytes)
	}
}

func TestBuildZeroRowTable(t *testing.T) {
	// The parser rejects rowless input, but Build itself must stay
	// total over a manually constructed empty table.
	r := Build(&table.Table{
		Columns: []string{"a", "b"},
		Dtypes:  []table.Dtype{table.String, table.String},
	})
	if r.Rows != 0 || r.Cols != 2 {
		t.Errorf("dimensions = %dx%d, want 0x2", r.Rows, r.Cols)
	}
	if r.OverallMissingPct != 0 {
		t.Errorf("missing pct = %f, want 0", r.OverallMissingPct)
	}
}
