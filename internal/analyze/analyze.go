// Package analyze is the core entry point: raw bytes in, Report out.
// It wires the decoder, the dialect sniffer, the table parser, and the
// profiler into a single stateless pipeline. The package takes no
// configuration; input bounding and timeouts belong to the callers.
package analyze

import (
	"bytes"
	"errors"

	"csvscope/internal/decode"
	"csvscope/internal/profile"
	"csvscope/internal/sniff"
	"csvscope/internal/table"
)

// ErrEmptyInput reports zero-byte or whitespace-only input, detected
// before any parsing is attempted.
var ErrEmptyInput = errors.New("input is empty")

// ErrDecode is reserved for encodings without a total fallback. The
// UTF-8 to Latin-1 chain cannot currently produce it, but surfaces may
// treat it as fatal if a future encoding is added.
var ErrDecode = errors.New("input could not be decoded")

// Analyze runs the full pipeline on raw. It is all-or-nothing: on any
// error no partial report is returned. Errors are one of ErrEmptyInput,
// *table.EmptyDataError, or *table.ParseError, all recoverable at the
// call site.
func Analyze(raw []byte) (*profile.Report, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyInput
	}

	decoded := decode.Bytes(raw)
	sniffed := sniff.Sniff(decoded.Text)

	tbl, err := table.Parse(decoded.Text, sniffed.Delimiter)
	if err != nil {
		return nil, err
	}

	report := profile.Build(tbl)
	report.Encoding = string(decoded.Encoding)
	report.DetectedDelimiter = string(sniffed.Delimiter)
	report.ParserDelimiter = string(tbl.Delimiter)
	return report, nil
}
