package textutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// spanishMonths maps lowercase Spanish month names to month numbers. This is
// a property of the language, not tunable configuration, so it stays in code.
var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

var (
	numericDateRe = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{2,4})$`)
	spanishDateRe = regexp.MustCompile(`(?i)^(\d{1,2})\s+(?:de\s+)?([a-záéíóúñ]+)\s+(?:de(?:l)?\s+)?(\d{2,4})$`)
)

// SpanishMonth resolves a Spanish month name to its number.
func SpanishMonth(name string) (time.Month, bool) {
	m, ok := spanishMonths[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ParseDate parses a numeric ("15/01/2024", "15-01-24") or Spanish
// month-name ("15 de enero de 2024") date and returns it as yyyy-mm-dd.
// Two-digit years are assumed to be 20xx. Returns "" and false when the
// string is not a plausible calendar date.
func ParseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return buildDate(year, time.Month(month), day)
	}

	if m := spanishDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := SpanishMonth(m[2])
		if !ok {
			return "", false
		}
		year, _ := strconv.Atoi(m[3])
		return buildDate(year, month, day)
	}

	return "", false
}

func buildDate(year int, month time.Month, day int) (string, bool) {
	if year < 100 {
		year += 2000
	}
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return "", false
	}
	// Reject dates like 31/02 that time.Date would silently roll over.
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day), true
}

// YearInRange reports whether a yyyy-mm-dd date falls in the plausibility
// window [2000, 2100] used by validation.
func YearInRange(iso string) bool {
	if len(iso) < 4 {
		return false
	}
	year, err := strconv.Atoi(iso[:4])
	if err != nil {
		return false
	}
	return year >= 2000 && year <= 2100
}
