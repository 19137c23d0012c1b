package extract

import (
	"strconv"
	"strings"

	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/textutil"
)

// extractAmount finds a monetary amount using the given pattern list. A
// matched candidate that does not parse to a non-negative number is a soft
// miss and the next pattern is tried.
func extractAmount(text string, patterns []fieldPattern) model.AmountField {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := textutil.ParseAmount(m[1]); v != nil {
			return model.AmountField{Value: v, Confidence: p.confidence}
		}
	}
	return model.AmountField{}
}

// extractIVA finds the VAT amount and percentage independently. The
// percentage is also derived opportunistically from any "NN% IVA"
// substring even when the amount patterns found nothing.
func extractIVA(text string) model.IVAField {
	var iva model.IVAField

	for _, p := range ivaAmountPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := textutil.ParseAmount(m[1]); v != nil {
			iva.Amount = v
			iva.Confidence = p.confidence
			break
		}
	}

	for _, p := range ivaPercentPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", ".")
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 100 {
			iva.Percentage = &v
			if iva.Confidence < p.confidence {
				iva.Confidence = p.confidence
			}
			break
		}
	}

	return iva
}
