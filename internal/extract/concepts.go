package extract

import (
	"strings"

	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/textutil"
)

// extractConcepts collects "qty description price" line items, one concept
// per accepted line, in order of appearance. Lines are not merged,
// deduplicated or reconciled against the extracted totals.
func extractConcepts(lines []string) []model.Concept {
	var concepts []model.Concept
	for _, line := range lines {
		m := conceptLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		description := strings.TrimSpace(m[2])
		if !containsLetter(description) {
			continue
		}
		qty := textutil.ParseAmount(m[1])
		price := textutil.ParseAmount(m[3])
		if qty == nil || price == nil {
			continue
		}
		concepts = append(concepts, model.Concept{
			Quantity:    *qty,
			Description: description,
			UnitPrice:   *price,
			Confidence:  0.7,
		})
	}
	return concepts
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x00C0 {
			return true
		}
	}
	return false
}
