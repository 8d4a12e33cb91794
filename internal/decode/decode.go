// Package decode turns raw CSV bytes into text, selecting a character
// encoding. UTF-8 is tried strictly first; anything it rejects is
// transcribed as Latin-1, which is total over all byte values.
package decode

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding tags which character set produced the decoded text.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "latin-1"
)

// Result carries the decoded text together with the encoding that was
// applied. Fallback is true when UTF-8 validation failed and the
// Latin-1 path was taken, making the fallback a visible branch rather
// than a hidden recovery.
type Result struct {
	Text     string
	Encoding Encoding
	Fallback bool
}

// Bytes decodes raw input. It cannot fail: every byte sequence is valid
// Latin-1, so the fallback always produces a total transcription. Empty
// input decodes to the empty string under UTF-8.
func Bytes(raw []byte) Result {
	if utf8.Valid(raw) {
		return Result{Text: string(raw), Encoding: UTF8}
	}

	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		// ISO 8859-1 assigns a code point to every byte; the decoder
		// has no failure mode on arbitrary input.
		decoded = raw
	}
	return Result{Text: string(decoded), Encoding: Latin1, Fallback: true}
}
