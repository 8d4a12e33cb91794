// Package sniff guesses the field delimiter of a CSV text sample.
//
// Each candidate delimiter is scored by how consistently it splits the
// sample lines into the same multi-field shape. The result is advisory:
// the table parser runs its own detection over the full text and the
// two are allowed to disagree.
package sniff

import "strings"

// SampleSize is the number of leading characters considered.
const SampleSize = 10000

// maxLines caps how many sample lines feed the score.
const maxLines = 20

var candidates = []rune{',', ';', '\t', '|', ':'}

// Result is the sniffing outcome. Confident is false when no candidate
// produced a consistent multi-field split and the comma default was
// applied instead.
type Result struct {
	Delimiter rune
	Confident bool
}

// Sniff inspects up to the first SampleSize characters of text and
// returns the best-scoring candidate delimiter. It never fails: the
// comma default covers single-column and pathological input.
func Sniff(text string) Result {
	truncated := false
	if len(text) > SampleSize {
		text = text[:SampleSize]
		truncated = true
	}

	lines := sampleLines(text, truncated)
	if len(lines) == 0 {
		return Result{Delimiter: ','}
	}

	best := Result{Delimiter: ','}
	bestScore := 0.0
	for _, cand := range candidates {
		if score := scoreDelimiter(lines, cand); score > bestScore {
			bestScore = score
			best = Result{Delimiter: cand, Confident: true}
		}
	}
	return best
}

// sampleLines returns up to maxLines non-empty lines. A trailing line
// cut mid-way by the sample boundary is dropped so its partial field
// count cannot skew the score.
func sampleLines(text string, truncated bool) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if truncated && len(raw) > 1 {
		raw = raw[:len(raw)-1]
	}

	var lines []string
	for _, ln := range raw {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
		if len(lines) == maxLines {
			break
		}
	}
	return lines
}

// scoreDelimiter rewards candidates that split every line into the same
// number of fields, weighted by how many fields that is. A modal field
// count of one scores zero: a delimiter that never splits explains
// nothing.
func scoreDelimiter(lines []string, delim rune) float64 {
	counts := make(map[int]int)
	for _, ln := range lines {
		fields := strings.Count(ln, string(delim)) + 1
		counts[fields]++
	}

	modalFields, modalLines := 0, 0
	for fields, n := range counts {
		if n > modalLines || (n == modalLines && fields > modalFields) {
			modalFields = fields
			modalLines = n
		}
	}

	if modalFields < 2 {
		return 0
	}
	consistency := float64(modalLines) / float64(len(lines))
	return consistency * float64(modalFields)
}
