package extract

import "regexp"

// fieldPattern is one entry in an ordered, first-match-wins pattern list.
// Lists are evaluated top to bottom and the first pattern whose capture
// group yields a usable value decides the field; later patterns are never
// consulted. This keeps extraction deterministic and auditable, at the cost
// of occasionally picking a worse match than a scored ensemble would.
type fieldPattern struct {
	re         *regexp.Regexp
	confidence float64
}

// firstMatch evaluates patterns in order and returns the first capture.
func firstMatch(text string, patterns []fieldPattern) (value string, confidence float64, ok bool) {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return m[1], p.confidence, true
		}
	}
	return "", 0, false
}

var invoiceNumberPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)factura\s*(?:n[ºo°]?\.?|n[uú]m(?:ero)?\.?)?\s*:\s*([A-Za-z0-9][A-Za-z0-9/-]{1,28}[A-Za-z0-9])`), 0.9},
	{regexp.MustCompile(`(?i)factura\s+(?:n[ºo°]\.?|n[uú]m(?:ero)?\.?)\s*([A-Za-z0-9][A-Za-z0-9/-]{1,28}[A-Za-z0-9])`), 0.85},
	{regexp.MustCompile(`(?i)(?:documento|ref(?:erencia)?\.?)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/-]{1,28}[A-Za-z0-9])`), 0.75},
	{regexp.MustCompile(`\b([A-Z]{1,4}[-/]\d{2,4}[-/]\d{2,6})\b`), 0.5},
}

var invoiceDatePatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)fecha\s*(?:de\s+)?(?:emisi[oó]n|factura)?\s*:?\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`), 0.9},
	{regexp.MustCompile(`(?i)fecha\s*(?:de\s+)?(?:emisi[oó]n|factura)?\s*:?\s*(\d{1,2}\s+de\s+[a-záéíóúñ]+\s+de(?:l)?\s+\d{2,4})`), 0.9},
	{regexp.MustCompile(`\b(\d{1,2}[/.-]\d{1,2}[/.-]\d{4})\b`), 0.7},
	{regexp.MustCompile(`(?i)\b(\d{1,2}\s+de\s+[a-záéíóúñ]+\s+de(?:l)?\s+\d{4})\b`), 0.8},
}

var dueDatePatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)(?:fecha\s+de\s+)?vencimiento\s*:?\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`), 0.9},
	{regexp.MustCompile(`(?i)(?:fecha\s+de\s+)?vencimiento\s*:?\s*(\d{1,2}\s+de\s+[a-záéíóúñ]+\s+de(?:l)?\s+\d{2,4})`), 0.9},
	{regexp.MustCompile(`(?i)pagar\s+antes\s+de(?:l)?\s*:?\s*(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})`), 0.85},
}

// Official tax ID shapes. Valid means shape match only; the check-digit
// algorithm is deliberately not implemented.
var (
	cifShapeRe = regexp.MustCompile(`^[ABCDEFGHJKLMNPQRSUVW]\d{7}[0-9A-J]$`)
	nifShapeRe = regexp.MustCompile(`^\d{8}[A-Z]$`)
	nieShapeRe = regexp.MustCompile(`^[XYZ]\d{7}[A-Z]$`)
)

var taxIDPatterns = []fieldPattern{
	// The capture admits up to 11 characters so dash-separated ids
	// ("B-1234567-8") survive intact; the 9-character shape check runs
	// after separators are stripped.
	{regexp.MustCompile(`(?i)(?:C\.?I\.?F\.?|N\.?I\.?F\.?|N\.?I\.?E\.?)\s*:?\s*([A-Za-z0-9][-A-Za-z0-9]{7,11})`), 0.95},
	{regexp.MustCompile(`\b([ABCDEFGHJKLMNPQRSUVW]\d{7}[0-9A-J])\b`), 0.7},
	{regexp.MustCompile(`\b(\d{8}[A-Z])\b`), 0.6},
	{regexp.MustCompile(`\b([XYZ]\d{7}[A-Z])\b`), 0.7},
}

const amountCapture = `([0-9][0-9.,]*[0-9]|[0-9])`

var totalPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)\btotal\s+(?:factura|a\s+pagar)\s*:?\s*` + amountCapture), 0.95},
	{regexp.MustCompile(`(?i)(?:importe\s+)?\btotal\b\s*:?\s*` + amountCapture), 0.9},
	{regexp.MustCompile(amountCapture + `€`), 0.5},
	{regexp.MustCompile(`€` + amountCapture), 0.5},
}

var subtotalPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)base\s+imponible\s*:?\s*` + amountCapture), 0.9},
	{regexp.MustCompile(`(?i)subtotal\s*:?\s*` + amountCapture), 0.85},
	{regexp.MustCompile(`(?i)importe\s+neto\s*:?\s*` + amountCapture), 0.8},
}

var ivaAmountPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)(?:cuota\s+)?I\.?V\.?A\.?[^\n%]*:\s*` + amountCapture + `€?`), 0.85},
	{regexp.MustCompile(`(?i)I\.?V\.?A\.?\s*(?:\(\s*\d{1,2}\s*%\s*\))?\s+` + amountCapture + `€`), 0.7},
}

var ivaPercentPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)I\.?V\.?A\.?\s*\(?\s*(\d{1,2}(?:[.,]\d{1,2})?)\s*%`), 0.9},
	// Opportunistic: any "NN% IVA" substring, even when the primary
	// patterns found nothing.
	{regexp.MustCompile(`(?i)(\d{1,2}(?:[.,]\d{1,2})?)\s*%\s*(?:de\s+)?I\.?V\.?A\.?`), 0.8},
}

var providerLabelPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)raz[oó]n\s+social\s*:\s*([^\n]{3,100})`), 0.9},
	{regexp.MustCompile(`(?i)(?:proveedor|emisor)\s*:\s*([^\n]{3,100})`), 0.85},
}

// companySuffixRe matches a line that looks like a company name ending in a
// Spanish legal form (S.L., S.A., S.L.U., S.COOP., C.B., ...).
var companySuffixRe = regexp.MustCompile(`(?im)^([A-ZÁÉÍÓÚÑ][^\n]{1,90}\s+(?:S\.?L\.?U?|S\.?A\.?U?|S\.?COOP|S\.?C\.?P?|C\.?B)\.?)\s*$`)

// companyShapeRe is the last-resort shape for the first-lines scan: a
// capitalized, mostly alphabetic line.
var companyShapeRe = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][A-Za-zÁÉÍÓÚÑáéíóúñ&.,\s-]{2,99}$`)

var addressPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)(?:direcci[oó]n|domicilio)\s*:\s*([^\n]{10,200})`), 0.9},
	{regexp.MustCompile(`(?i)\b((?:calle|c/|avda\.?|avenida|plaza|pza\.?|paseo|camino|carretera)\s+[^\n]{5,190})`), 0.8},
	{regexp.MustCompile(`\b(\d{5}\s+[A-ZÁÉÍÓÚÑ][A-Za-zÁÉÍÓÚÑáéíóúñ ]{2,60})\b`), 0.6},
}

var phonePatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)(?:tel[eé]fono|tfno\.?|tel\.?|m[oó]vil)\s*:?\s*(\+?[0-9][0-9 .-]{7,18}[0-9])`), 0.9},
	{regexp.MustCompile(`\b((?:\+34[ .-]?)?[6789]\d{2}[ .-]?\d{3}[ .-]?\d{3})\b`), 0.6},
}

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

var paymentMethodPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)(?:forma|m[eé]todo|modo)\s+de\s+pago\s*:\s*([^\n]{3,60})`), 0.9},
	{regexp.MustCompile(`(?i)\b(transferencia(?:\s+bancaria)?|domiciliaci[oó]n(?:\s+bancaria)?|tarjeta(?:\s+de\s+cr[eé]dito)?|efectivo|recibo\s+domiciliado)\b`), 0.6},
}

var ibanPatterns = []fieldPattern{
	{regexp.MustCompile(`(?i)IBAN\s*:?\s*([A-Z]{2}[0-9][0-9A-Z -]{13,40})`), 0.9},
	{regexp.MustCompile(`\b(ES\d{2}(?:[ -]?\d{4}){5})\b`), 0.85},
}

// conceptLineRe matches one "qty description price" invoice line.
var conceptLineRe = regexp.MustCompile(`^(\d{1,4}(?:[.,]\d{1,2})?)\s+(.{3,80}?)\s+([0-9][0-9.,]*[0-9])\s*€?$`)
