package render

import (
	"html/template"
	"io"

	"csvscope/internal/profile"
)

// HTML writes the report as a standalone HTML document. All cell
// content flows through html/template's contextual escaping, so
// user-supplied values cannot inject markup.
func HTML(w io.Writer, r *profile.Report, source string) error {
	return resultsTmpl.Execute(w, resultsData{Report: r, Source: source})
}

type resultsData struct {
	Report *profile.Report
	Source string
}

var resultsTmpl = template.Must(template.New("results").Funcs(template.FuncMap{
	"fmtFloat":   FormatFloat,
	"humanBytes": HumanBytes,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>CSV Analysis{{if .Source}}: {{.Source}}{{end}}</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; padding: 0 1rem; }
table { border-collapse: collapse; margin: 0.5rem 0 1.5rem; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.7rem; text-align: left; }
th { background: #f2f2f2; }
h2 { margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>CSV Analysis</h1>
<ul>
{{if .Source}}<li>File: {{.Source}}</li>{{end}}
<li>Encoding: {{.Report.Encoding}}</li>
<li>Detected delimiter: <code>{{.Report.DetectedDelimiter}}</code></li>
<li>Parser delimiter: <code>{{.Report.ParserDelimiter}}</code></li>
</ul>

<h2>Dimensions</h2>
<ul>
<li>Rows: {{.Report.Rows}}</li>
<li>Columns: {{.Report.Cols}}</li>
</ul>

<h2>Dtypes</h2>
<table>
<tr><th>Column</th><th>Dtype</th></tr>
{{range $i, $name := .Report.Columns}}
<tr><td>{{$name}}</td><td>{{index $.Report.Dtypes $i}}</td></tr>
{{end}}
</table>

<h2>Missing per column</h2>
<table>
<tr><th>Column</th><th>Missing</th></tr>
{{range $i, $name := .Report.Columns}}
<tr><td>{{$name}}</td><td>{{index $.Report.MissingPerColumn $i}}</td></tr>
{{end}}
</table>
<p>Overall missing: {{.Report.OverallMissing}} values ({{fmtFloat .Report.OverallMissingPct}}%)</p>

<h2>Duplicates</h2>
<p>Count: {{.Report.DuplicateCount}}</p>
{{if .Report.DuplicatePreview}}
<table>
<tr><th>Row</th>{{range .Report.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Report.DuplicatePreview}}
<tr><td>{{.Index}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
{{end}}

<h2>Numeric summary</h2>
{{if .Report.NumericSummaries}}
<table>
<tr><th>Column</th><th>Count</th><th>Mean</th><th>Std</th><th>Min</th><th>25%</th><th>50%</th><th>75%</th><th>Max</th></tr>
{{range .Report.NumericSummaries}}
<tr>
<td>{{.Column}}</td><td>{{.Count}}</td>
<td>{{fmtFloat .Mean}}</td><td>{{fmtFloat .Std}}</td>
<td>{{fmtFloat .Min}}</td><td>{{fmtFloat .Q25}}</td>
<td>{{fmtFloat .Q50}}</td><td>{{fmtFloat .Q75}}</td>
<td>{{fmtFloat .Max}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No numeric columns.</p>
{{end}}

<h2>Preview</h2>
<table>
<tr>{{range .Report.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Report.Preview}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>

<h2>Memory usage</h2>
<p>{{.Report.MemoryEstimateBytes}} bytes ({{humanBytes .Report.MemoryEstimateBytes}})</p>

<p><a href="/">Analyze another file</a></p>
</body>
</html>
`))
