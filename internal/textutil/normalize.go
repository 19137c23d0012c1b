// Package textutil provides text normalization and Spanish-locale parsing
// helpers shared by the extractor and the classifier.
//
// All compiled patterns in this package are package-level *regexp.Regexp
// values; they hold no match state and are safe for concurrent use.
package textutil

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	splitDigitRe = regexp.MustCompile(`(\d)[ \t]+(\d{3})\b`)
	euroAfterRe  = regexp.MustCompile(`(\d)[ \t]*€`)
	euroBeforeRe = regexp.MustCompile(`€[ \t]*(\d)`)
)

// Normalize prepares raw OCR text for pattern matching: line endings become
// \n, runs of spaces and tabs collapse to a single space, digit groups that
// OCR split with whitespace are rejoined ("1 234" -> "1234") and stray
// spaces around the euro sign are removed. Line structure is preserved so
// line-oriented extractors still work.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = spaceRunRe.ReplaceAllString(line, " ")
		// Rejoin repeatedly: "1 234 567" needs two passes.
		for {
			joined := splitDigitRe.ReplaceAllString(line, "$1$2")
			if joined == line {
				break
			}
			line = joined
		}
		line = euroAfterRe.ReplaceAllString(line, "$1€")
		line = euroBeforeRe.ReplaceAllString(line, "€$1")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// Lines splits normalized text into its lines.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}
