package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmerida/papeleo/internal/model"
)

const sampleInvoice = `ACME SUMINISTROS S.L.
CIF: B12345678
Calle Mayor 1, 28001 Madrid
FACTURA Nº: F-2024-0088
Fecha: 15/01/2024
BASE IMPONIBLE: 100,00€
IVA 21%
TOTAL: 121,00€`

func TestExtract_FullInvoice(t *testing.T) {
	result := New().Extract(sampleInvoice)

	require.True(t, result.Success)
	assert.Equal(t, model.DocFactura, result.DocumentType)
	assert.Equal(t, "F-2024-0088", result.InvoiceNumber.Value)
	assert.Equal(t, "2024-01-15", result.InvoiceDate.Value)
	assert.Equal(t, "B12345678", result.Provider.CIF.Value)
	assert.True(t, result.Provider.CIF.Valid)
	assert.Equal(t, "ACME SUMINISTROS S.L.", result.Provider.Name.Value)

	require.NotNil(t, result.Subtotal.Value)
	assert.InDelta(t, 100.00, *result.Subtotal.Value, 0.001)
	require.NotNil(t, result.IVA.Percentage)
	assert.InDelta(t, 21, *result.IVA.Percentage, 0.001)
	assert.Nil(t, result.IVA.Amount)
	require.NotNil(t, result.Total.Value)
	assert.InDelta(t, 121.00, *result.Total.Value, 0.001)

	assert.True(t, result.Validation.IsComplete)
	assert.Empty(t, result.Validation.MissingCritical)
	assert.True(t, result.Validation.DateValid)
	assert.Greater(t, result.Confidence, 60)
}

func TestExtract_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		result := New().Extract(input)
		assert.False(t, result.Success)
		assert.Equal(t, "no text provided", result.Error)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := New()
	first := e.Extract(sampleInvoice)
	second := e.Extract(sampleInvoice)

	// ExtractedAt is the only clock-dependent field.
	first.ExtractedAt = second.ExtractedAt
	assert.Equal(t, first, second)
}

func TestExtract_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"€€€€€",
		strings.Repeat("1 ", 5000),
		"CIF: \nTOTAL: \nFecha:",
		"factura factura factura",
		"\x00\x01\x02",
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() { New().Extract(input) })
	}
}

func TestDetectDocumentType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.DocumentType
	}{
		{name: "factura", text: "FACTURA Nº 12", want: model.DocFactura},
		{name: "nomina", text: "RECIBO DE SALARIOS enero", want: model.DocNomina},
		{name: "albaran", text: "ALBARÁN de entrega", want: model.DocAlbaran},
		{name: "contrato", text: "CONTRATO de servicios", want: model.DocContrato},
		{name: "legal", text: "citación del JUZGADO de primera instancia", want: model.DocLegal},
		{name: "default otros", text: "sin palabras clave", want: model.DocOtros},
		{name: "factura wins over contrato", text: "CONTRATO anexo a la factura 99", want: model.DocFactura},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectDocumentType(tt.text))
		})
	}
}

func TestExtract_CompletenessInvariant(t *testing.T) {
	lines := map[string]string{
		model.CriticalCIF:      "CIF: B12345678",
		model.CriticalDate:     "Fecha: 15/01/2024",
		model.CriticalTotal:    "TOTAL: 121,00€",
		model.CriticalProvider: "ACME SUMINISTROS S.L.",
	}

	for missing := range lines {
		t.Run("missing "+missing, func(t *testing.T) {
			var b strings.Builder
			for label, line := range lines {
				if label == missing {
					continue
				}
				b.WriteString(line + "\n")
			}
			result := New().Extract(b.String())

			require.True(t, result.Success)
			assert.False(t, result.Validation.IsComplete)
			assert.Contains(t, result.Validation.MissingCritical, missing)
		})
	}
}

func TestExtractTaxID(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantValue string
		wantValid bool
	}{
		{name: "labeled CIF", text: "CIF: B12345678", wantValue: "B12345678", wantValid: true},
		{name: "labeled NIF", text: "NIF: 12345678Z", wantValue: "12345678Z", wantValid: true},
		{name: "NIE shape", text: "N.I.E.: X1234567L", wantValue: "X1234567L", wantValid: true},
		{name: "bare CIF in text", text: "emitida por B87654321 en Madrid", wantValue: "B87654321", wantValid: true},
		{name: "lowercase normalized", text: "cif: b12345678", wantValue: "B12345678", wantValid: true},
		{name: "dashes stripped", text: "CIF: B-1234567-8", wantValue: "B12345678", wantValid: true},
		{name: "dashed NIE", text: "N.I.E.: X-1234567-L", wantValue: "X1234567L", wantValid: true},
		{name: "too long after stripping", text: "CIF: B-1234567-89", wantValue: "B123456789", wantValid: false},
		{name: "wrong shape flagged invalid", text: "CIF: BB123456", wantValue: "BB123456", wantValid: false},
		{name: "absent", text: "sin identificador", wantValue: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTaxID(tt.text)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValue == "" {
				assert.Zero(t, got.Confidence)
			}
		})
	}
}

func TestExtract_DueDateAndSpanishMonths(t *testing.T) {
	text := `FACTURA 2024-100
ACME CONSULTORES S.A.
CIF: A12345678
Fecha: 15 de enero de 2024
Vencimiento: 15/02/2024
TOTAL: 50,00€`

	result := New().Extract(text)
	assert.Equal(t, "2024-01-15", result.InvoiceDate.Value)
	assert.Equal(t, "2024-02-15", result.DueDate.Value)
}

func TestExtract_Concepts(t *testing.T) {
	text := `FACTURA Nº: 77
ACME SUMINISTROS S.L.
2 Tornillos acero 2,50
1 Caja herramientas 15,00€
10 Arandelas 0,10
TOTAL: 21,00€`

	result := New().Extract(text)
	require.Len(t, result.Concepts, 3)

	// Order of appearance is preserved.
	assert.Equal(t, "Tornillos acero", result.Concepts[0].Description)
	assert.InDelta(t, 2, result.Concepts[0].Quantity, 0.001)
	assert.InDelta(t, 2.50, result.Concepts[0].UnitPrice, 0.001)
	assert.Equal(t, "Caja herramientas", result.Concepts[1].Description)
	assert.Equal(t, "Arandelas", result.Concepts[2].Description)
	assert.InDelta(t, 0.10, result.Concepts[2].UnitPrice, 0.001)
}

func TestExtract_ContactFields(t *testing.T) {
	text := `TALLERES GARCÍA S.L.
CIF: B11223344
Dirección: Avenida de la Paz 42, 28922 Alcorcón
Teléfono: 912 345 678
Email: Facturacion@TalleresGarcia.es
Forma de pago: Transferencia bancaria
IBAN: ES91 2100 0418 4502 0005 1332
FACTURA Nº: TG-2024-001
Fecha: 01/03/2024
TOTAL: 250,00€`

	result := New().Extract(text)

	assert.Equal(t, "Avenida de la Paz 42, 28922 Alcorcón", result.Provider.Address.Value)
	assert.Equal(t, "912345678", result.Provider.Phone.Value)
	assert.Equal(t, "facturacion@talleresgarcia.es", result.Provider.Email.Value)
	assert.Equal(t, "Transferencia bancaria", result.PaymentMethod.Value)
	assert.Equal(t, "ES9121000418450200051332", result.IBAN.Value)
}

func TestExtract_NegativeAmountsDiscarded(t *testing.T) {
	result := New().Extract("FACTURA\nTOTAL: -50,00")
	assert.Nil(t, result.Total.Value)
}

func TestOverallConfidence_Empty(t *testing.T) {
	result := New().Extract("texto sin ningún campo reconocible xyz")
	assert.GreaterOrEqual(t, result.Confidence, 0)
	assert.LessOrEqual(t, result.Confidence, 100)
}
