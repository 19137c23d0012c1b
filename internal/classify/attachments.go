package classify

import (
	"path/filepath"
	"strings"

	"github.com/dmerida/papeleo/internal/model"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
	".heic": true,
}

// AnalyzeAttachments partitions an email's attachments into triage buckets.
// Invoice-named PDFs appear in both PDFs and Invoices; every attachment
// lands in exactly one of PDFs, Images or Others.
func (c *Classifier) AnalyzeAttachments(e model.Email) model.AttachmentAnalysis {
	analysis := model.AttachmentAnalysis{Total: len(e.Attachments)}

	for _, a := range e.Attachments {
		name := strings.ToLower(a.Filename)
		ext := filepath.Ext(name)
		switch {
		case ext == ".pdf":
			analysis.PDFs = append(analysis.PDFs, a)
			if matchAny(name, c.rules.InvoiceFilename) {
				analysis.Invoices = append(analysis.Invoices, a)
			}
		case imageExtensions[ext]:
			analysis.Images = append(analysis.Images, a)
		default:
			analysis.Others = append(analysis.Others, a)
		}
	}
	return analysis
}
