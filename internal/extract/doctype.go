package extract

import (
	"strings"

	"github.com/dmerida/papeleo/internal/model"
)

// docTypeGroup is one ordered keyword group for document type detection.
type docTypeGroup struct {
	docType  model.DocumentType
	keywords []string
}

// docTypeGroups is evaluated in order and the first group with a matching
// keyword wins. The ordering is a deliberate tie-break: a document that
// mentions both "factura" and "contrato" is a FACTURA.
var docTypeGroups = []docTypeGroup{
	{model.DocFactura, []string{"factura", "invoice", "fra.", "factura simplificada"}},
	{model.DocNomina, []string{"nómina", "nomina", "recibo de salarios", "recibo individual de salarios", "payroll"}},
	{model.DocAlbaran, []string{"albarán", "albaran", "nota de entrega", "delivery note"}},
	{model.DocContrato, []string{"contrato", "contract", "acuerdo de"}},
	{model.DocLegal, []string{"burofax", "juzgado", "demanda", "requerimiento", "notificación judicial", "acta notarial"}},
}

// detectDocumentType classifies normalized text into a document type.
func detectDocumentType(text string) model.DocumentType {
	lower := strings.ToLower(text)
	for _, group := range docTypeGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.docType
			}
		}
	}
	return model.DocOtros
}
