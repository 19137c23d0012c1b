// Package export produces XLSX workbooks from stored triage data.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dmerida/papeleo/internal/model"
)

const (
	documentsSheet = "Facturas"
	emailsSheet    = "Correos"
)

var documentHeaders = []string{
	"Fecha",
	"Nº Factura",
	"Tipo",
	"Proveedor",
	"CIF/NIF",
	"Base Imponible",
	"IVA",
	"Total",
	"Confianza",
	"Revisar",
	"Archivo",
}

var emailHeaders = []string{
	"Email",
	"Categoría",
	"Subcategoría",
	"Prioridad",
	"Confianza",
}

// BuildWorkbook renders documents and email classifications into a workbook
// with one sheet per data set. Either slice may be empty.
func BuildWorkbook(docs []model.Document, classifications []model.EmailClassification) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", documentsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(emailsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	writeRow(f, documentsSheet, 1, toAny(documentHeaders))
	for i, doc := range docs {
		writeRow(f, documentsSheet, i+2, documentRow(doc))
	}

	writeRow(f, emailsSheet, 1, toAny(emailHeaders))
	for i, cls := range classifications {
		writeRow(f, emailsSheet, i+2, []any{
			cls.EmailID,
			string(cls.Category),
			cls.SubCategory,
			string(cls.Priority),
			cls.Confidence,
		})
	}

	// Widen the text-heavy columns
	_ = f.SetColWidth(documentsSheet, "A", "B", 14)
	_ = f.SetColWidth(documentsSheet, "D", "D", 32)
	_ = f.SetColWidth(documentsSheet, "K", "K", 48)
	_ = f.SetColWidth(emailsSheet, "A", "A", 28)

	index, err := f.GetSheetIndex(documentsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	return f, nil
}

func documentRow(doc model.Document) []any {
	r := doc.Result

	review := ""
	if doc.NeedsReview {
		review = "SÍ"
	}

	return []any{
		r.InvoiceDate.Value,
		r.InvoiceNumber.Value,
		r.DocumentType.Label(),
		r.Provider.Name.Value,
		r.Provider.CIF.Value,
		amountCell(r.Subtotal.Value),
		amountCell(r.IVA.Amount),
		amountCell(r.Total.Value),
		r.Confidence,
		review,
		doc.SourcePath,
	}
}

func amountCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// XLSXWriter writes the invoice register to an XLSX file on disk.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates a writer that saves the workbook at path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write renders docs into a workbook and saves it.
func (w *XLSXWriter) Write(ctx context.Context, docs []model.Document) error {
	return w.WriteAll(ctx, docs, nil)
}

// WriteAll renders both documents and email classifications and saves the
// workbook.
func (w *XLSXWriter) WriteAll(_ context.Context, docs []model.Document, classifications []model.EmailClassification) error {
	started := time.Now()

	f, err := BuildWorkbook(docs, classifications)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("Exported workbook",
		"path", w.path,
		"documents", len(docs),
		"emails", len(classifications),
		"elapsed", time.Since(started))
	return nil
}
