// Package model defines the core domain models used throughout the application.
package model

import "time"

// DocumentType identifies the kind of business document the extractor detected.
type DocumentType string

// Document type constants, in detection priority order.
const (
	DocFactura  DocumentType = "factura"
	DocNomina   DocumentType = "nomina"
	DocAlbaran  DocumentType = "albaran"
	DocContrato DocumentType = "contrato"
	DocLegal    DocumentType = "legal"
	DocOtros    DocumentType = "otros"
)

// Label returns the display label for the document type.
func (d DocumentType) Label() string {
	switch d {
	case DocFactura:
		return "FACTURA"
	case DocNomina:
		return "NÓMINA"
	case DocAlbaran:
		return "ALBARÁN"
	case DocContrato:
		return "CONTRATO"
	case DocLegal:
		return "DOCUMENTO LEGAL"
	default:
		return "OTROS"
	}
}

// Field is a single extracted text value tagged with the confidence of the
// pattern that produced it. An empty Value means the field was not found.
type Field struct {
	Value      string  `json:"value"`
	Raw        string  `json:"raw,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Found reports whether the field was extracted.
func (f Field) Found() bool { return f.Value != "" }

// AmountField is an extracted monetary value in EUR. Value is nil when the
// field was not found or did not parse to a non-negative number.
type AmountField struct {
	Value      *float64 `json:"value"`
	Confidence float64  `json:"confidence"`
}

// Found reports whether the amount was extracted.
func (f AmountField) Found() bool { return f.Value != nil }

// TaxIDField is an extracted CIF/NIF/NIE. Valid reflects a format match
// against the official shapes only; the check-digit algorithm is
// deliberately not implemented.
type TaxIDField struct {
	Value      string  `json:"value"`
	Valid      bool    `json:"valid"`
	Confidence float64 `json:"confidence"`
}

// Found reports whether a tax ID was extracted.
func (f TaxIDField) Found() bool { return f.Value != "" }

// IVAField carries the extracted VAT amount and/or percentage. Either side
// may be nil independently of the other.
type IVAField struct {
	Amount     *float64 `json:"amount"`
	Percentage *float64 `json:"percentage"`
	Confidence float64  `json:"confidence"`
}

// Concept is a single invoice line item, in order of appearance.
type Concept struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Confidence  float64 `json:"confidence"`
}

// Provider holds the issuer contact block of a document.
type Provider struct {
	Name    Field      `json:"name"`
	CIF     TaxIDField `json:"cif"`
	Address Field      `json:"address"`
	Phone   Field      `json:"phone"`
	Email   Field      `json:"email"`
}

// Critical field labels reported in Validation.MissingCritical.
const (
	CriticalCIF      = "CIF/NIF"
	CriticalDate     = "Fecha"
	CriticalTotal    = "Importe total"
	CriticalProvider = "Proveedor"
)

// Validation summarizes which fields were found and which critical ones
// are missing.
type Validation struct {
	MissingCritical  []string `json:"missing_critical"`
	Warnings         []string `json:"warnings"`
	HasCIF           bool     `json:"has_cif"`
	CIFValid         bool     `json:"cif_valid"`
	HasDate          bool     `json:"has_date"`
	DateValid        bool     `json:"date_valid"`
	HasTotal         bool     `json:"has_total"`
	HasProvider      bool     `json:"has_provider"`
	HasInvoiceNumber bool     `json:"has_invoice_number"`
	IsComplete       bool     `json:"is_complete"`
}

// ExtractionResult is the full output of the invoice data extractor.
type ExtractionResult struct {
	ExtractedAt   time.Time    `json:"extracted_at"`
	Error         string       `json:"error,omitempty"`
	DocumentType  DocumentType `json:"document_type"`
	InvoiceNumber Field        `json:"invoice_number"`
	InvoiceDate   Field        `json:"invoice_date"`
	DueDate       Field        `json:"due_date"`
	PaymentMethod Field        `json:"payment_method"`
	IBAN          Field        `json:"iban"`
	Provider      Provider     `json:"provider"`
	Subtotal      AmountField  `json:"subtotal"`
	IVA           IVAField     `json:"iva"`
	Total         AmountField  `json:"total"`
	Concepts      []Concept    `json:"concepts"`
	Validation    Validation   `json:"validation"`
	Confidence    int          `json:"confidence"`
	Success       bool         `json:"success"`
}

// Document is a stored extraction run: the source file plus its result.
type Document struct {
	CreatedAt   time.Time        `json:"created_at"`
	ID          string           `json:"id"`
	SourcePath  string           `json:"source_path"`
	Result      ExtractionResult `json:"result"`
	NeedsReview bool             `json:"needs_review"`
}
