package extract

import (
	"math"

	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/textutil"
)

// buildValidation derives the boolean summary and the missing-critical
// list from the extracted fields. IsComplete depends only on the presence
// of the four critical fields, never on their confidence.
func buildValidation(r *model.ExtractionResult) model.Validation {
	v := model.Validation{
		HasCIF:           r.Provider.CIF.Found(),
		CIFValid:         r.Provider.CIF.Valid,
		HasDate:          r.InvoiceDate.Found(),
		HasTotal:         r.Total.Found(),
		HasProvider:      r.Provider.Name.Found(),
		HasInvoiceNumber: r.InvoiceNumber.Found(),
	}
	v.DateValid = v.HasDate && textutil.YearInRange(r.InvoiceDate.Value)

	if !v.HasCIF {
		v.MissingCritical = append(v.MissingCritical, model.CriticalCIF)
	}
	if !v.HasDate {
		v.MissingCritical = append(v.MissingCritical, model.CriticalDate)
	}
	if !v.HasTotal {
		v.MissingCritical = append(v.MissingCritical, model.CriticalTotal)
	}
	if !v.HasProvider {
		v.MissingCritical = append(v.MissingCritical, model.CriticalProvider)
	}

	if !v.HasInvoiceNumber {
		v.Warnings = append(v.Warnings, "número de factura no encontrado")
	}
	if r.IVA.Amount == nil && r.IVA.Percentage == nil {
		v.Warnings = append(v.Warnings, "IVA no encontrado")
	}
	if !r.Subtotal.Found() {
		v.Warnings = append(v.Warnings, "base imponible no encontrada")
	}
	if len(r.Concepts) == 0 {
		v.Warnings = append(v.Warnings, "sin líneas de detalle")
	}

	v.IsComplete = len(v.MissingCritical) == 0
	return v
}

// Confidence weights per field group. They sum to 100.
const (
	weightInvoiceNumber = 10
	weightDate          = 15
	weightProvider      = 20
	weightCIF           = 20
	weightTotal         = 25
	weightConcepts      = 10
)

// overallConfidence computes the 0-100 extraction score: each group weight
// scaled by that field's own confidence fraction.
func overallConfidence(r *model.ExtractionResult) int {
	score := 0.0
	score += weightInvoiceNumber * r.InvoiceNumber.Confidence
	score += weightDate * r.InvoiceDate.Confidence
	score += weightProvider * r.Provider.Name.Confidence
	score += weightCIF * r.Provider.CIF.Confidence
	score += weightTotal * r.Total.Confidence
	if len(r.Concepts) > 0 {
		score += weightConcepts * 0.7
	}
	return int(math.Round(score))
}
