package extract

import (
	"strings"

	"github.com/dmerida/papeleo/internal/model"
)

// extractProvider assembles the issuer contact block. The name is resolved
// in three tiers: legal-form suffix lines first, then labeled lines, then a
// low-confidence scan of the first ten lines for a company-shaped line.
func extractProvider(text string, lines []string) model.Provider {
	return model.Provider{
		Name:    extractProviderName(text, lines),
		CIF:     extractTaxID(text),
		Address: extractAddress(text),
		Phone:   extractPhone(text),
		Email:   extractEmail(text),
	}
}

func extractProviderName(text string, lines []string) model.Field {
	if m := companySuffixRe.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if len(name) >= 3 && len(name) <= 100 {
			return model.Field{Value: name, Raw: name, Confidence: 0.85}
		}
	}

	if value, conf, ok := firstMatch(text, providerLabelPatterns); ok {
		name := strings.TrimSpace(value)
		if len(name) >= 3 && len(name) <= 100 {
			return model.Field{Value: name, Raw: name, Confidence: conf}
		}
	}

	// Fallback: the provider is usually in the letterhead.
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if len(line) < 3 || len(line) > 100 {
			continue
		}
		if companyShapeRe.MatchString(line) {
			return model.Field{Value: line, Raw: line, Confidence: 0.5}
		}
	}
	return model.Field{}
}

func extractAddress(text string) model.Field {
	value, conf, ok := firstMatch(text, addressPatterns)
	if !ok {
		return model.Field{}
	}
	addr := strings.TrimSpace(strings.TrimRight(value, " .,"))
	if len(addr) < 10 || len(addr) > 200 {
		return model.Field{}
	}
	return model.Field{Value: addr, Raw: value, Confidence: conf}
}

func extractPhone(text string) model.Field {
	value, conf, ok := firstMatch(text, phonePatterns)
	if !ok {
		return model.Field{}
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	if len(digits) < 9 || len(digits) > 15 {
		return model.Field{}
	}
	if strings.HasPrefix(strings.TrimSpace(value), "+") {
		digits = "+" + digits
	}
	return model.Field{Value: digits, Raw: value, Confidence: conf}
}

func extractEmail(text string) model.Field {
	m := emailRe.FindString(text)
	if m == "" {
		return model.Field{}
	}
	return model.Field{Value: strings.ToLower(m), Raw: m, Confidence: 0.95}
}

func extractPaymentMethod(text string) model.Field {
	value, conf, ok := firstMatch(text, paymentMethodPatterns)
	if !ok {
		return model.Field{}
	}
	return model.Field{Value: strings.TrimSpace(value), Raw: value, Confidence: conf}
}

func extractIBAN(text string) model.Field {
	value, conf, ok := firstMatch(text, ibanPatterns)
	if !ok {
		return model.Field{}
	}
	iban := strings.ToUpper(value)
	iban = strings.ReplaceAll(iban, " ", "")
	iban = strings.ReplaceAll(iban, "-", "")
	return model.Field{Value: iban, Raw: value, Confidence: conf}
}
