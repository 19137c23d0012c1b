package classify

import (
	"regexp"
	"strings"

	"github.com/dmerida/papeleo/internal/model"
)

const (
	minSentenceLen = 20
	maxSummaryLen  = 150
	maxEntities    = 5
)

var (
	// Sentence boundaries: punctuation followed by whitespace or end of
	// text, so decimal points ("1.234,56") do not split a sentence.
	sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+|[.!?]+$|\n+`)
	euroAmountRe    = regexp.MustCompile(`\d+(?:[.,]\d{3})*(?:[.,]\d{1,2})?\s*(?:€|euros?\b)`)
	summaryDateRe   = regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`)
	// Longest label first: "ref" alone would otherwise match inside
	// "referencia" and capture the tail as the code.
	referenceRe = regexp.MustCompile(`(?i)\b(?:referencia|ref\.?|pedido|expediente)\s*:?\s*([A-Za-z0-9][A-Za-z0-9/-]{3,19})`)
)

// Summarize builds a heuristic summary of an email: a leading sentence, a
// single action label and any key entities (euro amounts, dates,
// reference-like codes) spotted in the body. No model call is involved.
func (c *Classifier) Summarize(e model.Email) model.EmailSummary {
	body := strings.TrimSpace(e.Body())
	return model.EmailSummary{
		Summary:        leadingSentence(body, e.Subject),
		ActionRequired: c.actionRequired(strings.ToLower(e.Subject + " " + body)),
		KeyEntities:    keyEntities(body),
	}
}

// leadingSentence picks the first sentence longer than minSentenceLen,
// capped at maxSummaryLen runes. Falls back to the body, then the subject.
func leadingSentence(body, subject string) string {
	for _, s := range sentenceSplitRe.Split(body, -1) {
		s = strings.TrimSpace(s)
		if len([]rune(s)) > minSentenceLen {
			return truncate(s, maxSummaryLen)
		}
	}
	if body != "" {
		return truncate(body, maxSummaryLen)
	}
	return truncate(strings.TrimSpace(subject), maxSummaryLen)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// actionRequired resolves a single action label, first matching keyword set
// wins, same ordered-cascade style as the classifier.
func (c *Classifier) actionRequired(text string) string {
	checks := []struct {
		label    string
		keywords []string
	}{
		{"respuesta_urgente", c.rules.Summary.Urgency},
		{"requiere_respuesta", c.rules.Summary.Response},
		{"gestionar_pago", c.rules.Summary.Payment},
		{"revisar_adjunto", c.rules.Summary.Attachment},
	}
	for _, check := range checks {
		if matchAny(text, check.keywords) {
			return check.label
		}
	}
	return ""
}

// keyEntities extracts euro amounts, dates and reference-like codes via
// three independent regexes, each optional.
func keyEntities(body string) []model.Entity {
	var entities []model.Entity

	for _, m := range euroAmountRe.FindAllString(body, maxEntities) {
		entities = append(entities, model.Entity{Type: "importe", Value: strings.TrimSpace(m)})
	}
	for _, m := range summaryDateRe.FindAllString(body, maxEntities) {
		entities = append(entities, model.Entity{Type: "fecha", Value: m})
	}
	for _, m := range referenceRe.FindAllStringSubmatch(body, maxEntities) {
		entities = append(entities, model.Entity{Type: "referencia", Value: m[1]})
	}
	return entities
}
