// Package extract implements the invoice data extractor: a deterministic,
// side-effect-free transformation from raw OCR text of a Spanish business
// document into a structured, confidence-tagged record.
package extract

import (
	"strings"
	"time"

	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/textutil"
)

// Extractor extracts structured invoice data from plain text. It holds no
// state; a single instance is safe for concurrent use.
type Extractor struct{}

// New creates a new Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract runs the full pipeline over raw document text. It never panics on
// malformed text; empty input yields a result with Success=false. Apart
// from ExtractedAt the result is a pure function of the input.
func (e *Extractor) Extract(text string) *model.ExtractionResult {
	result := &model.ExtractionResult{ExtractedAt: time.Now().UTC()}
	if strings.TrimSpace(text) == "" {
		result.Error = "no text provided"
		return result
	}

	normalized := textutil.Normalize(text)
	lines := textutil.Lines(normalized)

	result.Success = true
	result.DocumentType = detectDocumentType(normalized)
	result.InvoiceNumber = extractInvoiceNumber(normalized)
	result.InvoiceDate = extractDate(normalized, invoiceDatePatterns)
	result.DueDate = extractDate(normalized, dueDatePatterns)
	result.Provider = extractProvider(normalized, lines)
	result.Subtotal = extractAmount(normalized, subtotalPatterns)
	result.Total = extractAmount(normalized, totalPatterns)
	result.IVA = extractIVA(normalized)
	result.PaymentMethod = extractPaymentMethod(normalized)
	result.IBAN = extractIBAN(normalized)
	result.Concepts = extractConcepts(lines)
	result.Validation = buildValidation(result)
	result.Confidence = overallConfidence(result)

	return result
}

// extractInvoiceNumber finds the document reference, label-anchored
// patterns before bare codes. Accepted length is 3 to 30 characters.
func extractInvoiceNumber(text string) model.Field {
	value, conf, ok := firstMatch(text, invoiceNumberPatterns)
	if !ok {
		return model.Field{}
	}
	value = strings.TrimSpace(value)
	if len(value) < 3 || len(value) > 30 {
		return model.Field{}
	}
	return model.Field{Value: value, Raw: value, Confidence: conf}
}

// extractDate finds a date using the given pattern list and normalizes it
// to yyyy-mm-dd. A matched but unparsable candidate is a soft miss and the
// next pattern is tried.
func extractDate(text string, patterns []fieldPattern) model.Field {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if iso, ok := textutil.ParseDate(m[1]); ok {
			return model.Field{Value: iso, Raw: m[1], Confidence: p.confidence}
		}
	}
	return model.Field{}
}

// extractTaxID finds a CIF/NIF/NIE. Valid reflects shape only.
func extractTaxID(text string) model.TaxIDField {
	value, conf, ok := firstMatch(text, taxIDPatterns)
	if !ok {
		return model.TaxIDField{}
	}
	value = strings.ToUpper(strings.ReplaceAll(value, "-", ""))
	valid := cifShapeRe.MatchString(value) || nifShapeRe.MatchString(value) || nieShapeRe.MatchString(value)
	return model.TaxIDField{Value: value, Valid: valid, Confidence: conf}
}
