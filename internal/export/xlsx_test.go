package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dmerida/papeleo/internal/model"
)

func sampleDocs() []model.Document {
	subtotal := 100.0
	total := 121.0
	return []model.Document{
		{
			ID:          "doc-1",
			SourcePath:  "/tmp/facturas/enero.pdf",
			NeedsReview: true,
			Result: model.ExtractionResult{
				Success:       true,
				DocumentType:  model.DocFactura,
				InvoiceNumber: model.Field{Value: "F-2024-0088", Confidence: 0.9},
				InvoiceDate:   model.Field{Value: "2024-01-15", Confidence: 0.9},
				Provider: model.Provider{
					Name: model.Field{Value: "ACME SUMINISTROS S.L.", Confidence: 0.8},
					CIF:  model.TaxIDField{Value: "B12345678", Valid: true, Confidence: 0.95},
				},
				Subtotal:   model.AmountField{Value: &subtotal, Confidence: 0.9},
				Total:      model.AmountField{Value: &total, Confidence: 0.9},
				Confidence: 81,
			},
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	classifications := []model.EmailClassification{
		{EmailID: "e1", Category: model.CategoryFactura, SubCategory: "factura_proveedor", Priority: model.PriorityAlta, Confidence: 0.9},
	}

	f, err := BuildWorkbook(sampleDocs(), classifications)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	get := func(sheet, cell string) string {
		v, cellErr := f.GetCellValue(sheet, cell)
		require.NoError(t, cellErr)
		return v
	}

	assert.Equal(t, "Fecha", get(documentsSheet, "A1"))
	assert.Equal(t, "2024-01-15", get(documentsSheet, "A2"))
	assert.Equal(t, "F-2024-0088", get(documentsSheet, "B2"))
	assert.Equal(t, "FACTURA", get(documentsSheet, "C2"))
	assert.Equal(t, "ACME SUMINISTROS S.L.", get(documentsSheet, "D2"))
	assert.Equal(t, "B12345678", get(documentsSheet, "E2"))
	assert.Equal(t, "121", get(documentsSheet, "H2"))
	assert.Equal(t, "SÍ", get(documentsSheet, "J2"))

	assert.Equal(t, "Categoría", get(emailsSheet, "B1"))
	assert.Equal(t, "factura", get(emailsSheet, "B2"))
	assert.Equal(t, "alta", get(emailsSheet, "D2"))
}

func TestBuildWorkbook_Empty(t *testing.T) {
	f, err := BuildWorkbook(nil, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	v, err := f.GetCellValue(documentsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Fecha", v)

	v, err = f.GetCellValue(documentsSheet, "A2")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registro.xlsx")
	writer := NewXLSXWriter(path)

	require.NoError(t, writer.Write(context.Background(), sampleDocs()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	v, err := f.GetCellValue(documentsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "F-2024-0088", v)
}
