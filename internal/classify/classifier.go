// Package classify implements the rule-based email classifier: a strict
// priority cascade over keyword tables plus attachment and summary helpers.
// Everything here is a pure function of the email content.
package classify

import (
	"strings"

	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/rules"
)

// branch is one step of the classification cascade: a predicate plus the
// classification it produces. Branches are evaluated in order and the first
// match wins; ordering is the core design decision, since several branches
// can match the same email.
type branch struct {
	matches func(e model.Email, text string) bool
	build   func(e model.Email, text string) model.EmailClassification
}

// Classifier assigns exactly one category per email. A Classifier is
// immutable after construction and safe for concurrent use.
type Classifier struct {
	rules    rules.Ruleset
	branches []branch
}

// New creates a classifier over the given ruleset.
func New(rs rules.Ruleset) *Classifier {
	c := &Classifier{rules: rs}
	c.branches = []branch{
		{c.matchesFactura, c.buildFactura},
		{c.matchesMarketing, c.buildMarketing},
		{c.matchesRRHH, c.buildRRHH},
		{c.matchesProveedor, c.buildProveedor},
		{c.matchesInterno, c.buildInterno},
		{c.matchesGestoria, c.buildGestoria},
		{c.matchesCliente, c.buildCliente},
	}
	return c
}

// Classify runs the cascade. It always returns a classification; the
// fallback is otros/baja with the pendiente_revision tag.
func (c *Classifier) Classify(e model.Email) model.EmailClassification {
	text := strings.ToLower(e.Subject + " " + e.Body())

	for _, b := range c.branches {
		if b.matches(e, text) {
			cls := b.build(e, text)
			cls.EmailID = e.ID
			return cls
		}
	}

	return model.EmailClassification{
		EmailID:    e.ID,
		Category:   model.CategoryOtros,
		Priority:   model.PriorityBaja,
		Tags:       []string{"pendiente_revision"},
		Confidence: 0.5,
	}
}

// matchAny reports whether the text contains any of the keywords.
func matchAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// hasInvoiceAttachment reports whether the email carries a PDF whose
// filename matches the invoice filename keywords.
func (c *Classifier) hasInvoiceAttachment(e model.Email) bool {
	for _, a := range e.Attachments {
		name := strings.ToLower(a.Filename)
		if strings.HasSuffix(name, ".pdf") && matchAny(name, c.rules.InvoiceFilename) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchesFactura(e model.Email, text string) bool {
	return c.hasInvoiceAttachment(e) || matchAny(text, c.rules.Keywords.Factura)
}

func (c *Classifier) buildFactura(e model.Email, _ string) model.EmailClassification {
	subCategory := "factura_cliente"
	if c.rules.IsProviderDomain(e.SenderDomain()) {
		subCategory = "factura_proveedor"
	}
	return model.EmailClassification{
		Category:    model.CategoryFactura,
		SubCategory: subCategory,
		Priority:    model.PriorityAlta,
		Tags:        []string{"factura", subCategory},
		Confidence:  0.9,
	}
}

func (c *Classifier) matchesMarketing(_ model.Email, text string) bool {
	return matchAny(text, c.rules.Keywords.Marketing)
}

func (c *Classifier) buildMarketing(_ model.Email, _ string) model.EmailClassification {
	return model.EmailClassification{
		Category:    model.CategoryMarketing,
		SubCategory: "publicidad",
		Priority:    model.PriorityBaja,
		Tags:        []string{"marketing"},
		Confidence:  0.85,
	}
}

// rrhhSubCategories resolves the HR sub-category with a secondary
// single-keyword lookup, first match wins.
var rrhhSubCategories = []struct {
	keyword     string
	subCategory string
}{
	{"nómina", "nomina"},
	{"nomina", "nomina"},
	{"vacaciones", "vacaciones"},
	{"contrato", "contrato"},
	{"baja", "baja"},
}

func (c *Classifier) matchesRRHH(_ model.Email, text string) bool {
	return matchAny(text, c.rules.Keywords.RRHH)
}

func (c *Classifier) buildRRHH(_ model.Email, text string) model.EmailClassification {
	subCategory := "general"
	for _, s := range rrhhSubCategories {
		if strings.Contains(text, s.keyword) {
			subCategory = s.subCategory
			break
		}
	}
	return model.EmailClassification{
		Category:    model.CategoryRRHH,
		SubCategory: subCategory,
		Priority:    model.PriorityMedia,
		Tags:        []string{"rrhh", subCategory},
		Confidence:  0.8,
	}
}

func (c *Classifier) matchesProveedor(e model.Email, text string) bool {
	return c.rules.IsProviderDomain(e.SenderDomain()) || matchAny(text, c.rules.Keywords.Pedidos)
}

func (c *Classifier) buildProveedor(e model.Email, text string) model.EmailClassification {
	subCategory := "general"
	if matchAny(text, c.rules.Keywords.Pedidos) {
		subCategory = "pedido"
	}
	return model.EmailClassification{
		Category:    model.CategoryProveedor,
		SubCategory: subCategory,
		Priority:    model.PriorityMedia,
		Tags:        []string{"proveedor", subCategory},
		Confidence:  0.75,
	}
}

func (c *Classifier) matchesInterno(e model.Email, _ string) bool {
	return c.rules.CompanyDomain != "" && e.SenderDomain() == c.rules.CompanyDomain
}

func (c *Classifier) buildInterno(_ model.Email, _ string) model.EmailClassification {
	return model.EmailClassification{
		Category:    model.CategoryInterno,
		SubCategory: "comunicacion_interna",
		Priority:    model.PriorityMedia,
		Tags:        []string{"interno"},
		Confidence:  0.9,
	}
}

func (c *Classifier) matchesGestoria(_ model.Email, text string) bool {
	return matchAny(text, c.rules.Keywords.Gestoria)
}

func (c *Classifier) buildGestoria(_ model.Email, _ string) model.EmailClassification {
	return model.EmailClassification{
		Category:    model.CategoryGestoria,
		SubCategory: "fiscal",
		Priority:    model.PriorityAlta,
		Tags:        []string{"gestoria", "fiscal"},
		Confidence:  0.7,
	}
}

func (c *Classifier) matchesCliente(_ model.Email, text string) bool {
	return matchAny(text, c.rules.Keywords.Cliente)
}

func (c *Classifier) buildCliente(_ model.Email, _ string) model.EmailClassification {
	return model.EmailClassification{
		Category:    model.CategoryCliente,
		SubCategory: "consulta",
		Priority:    model.PriorityMedia,
		Tags:        []string{"cliente"},
		Confidence:  0.6,
	}
}
