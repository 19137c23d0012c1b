package textutil

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	spanishAmountRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?$`)
	usAmountRe      = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?$`)
	commaDecimalRe  = regexp.MustCompile(`^\d+,\d{1,2}$`)
	plainAmountRe   = regexp.MustCompile(`^\d+(?:\.\d{1,2})?$`)
)

// ParseAmount parses a monetary string in Spanish ("1.234,56"), US
// ("1,234.56") or bare comma-decimal ("123,45") notation, sniffed from the
// shape of the separators. The result is non-negative and rounded to two
// decimals; nil means the string is not a usable amount.
func ParseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, "EUR", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || strings.HasPrefix(s, "-") {
		return nil
	}

	var normalized string
	switch {
	case spanishAmountRe.MatchString(s):
		normalized = strings.ReplaceAll(s, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
	case usAmountRe.MatchString(s):
		normalized = strings.ReplaceAll(s, ",", "")
	case commaDecimalRe.MatchString(s):
		normalized = strings.ReplaceAll(s, ",", ".")
	case plainAmountRe.MatchString(s):
		normalized = s
	default:
		return nil
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || v < 0 {
		return nil
	}
	v = Round2(v)
	return &v
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
