// Package rules holds the tunable data tables behind email classification:
// keyword sets, the provider-domain allowlist and the company's own domain.
// The tables ship with compiled-in defaults and can be overridden from a
// YAML file without touching the classifier code.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordSets are the per-category keyword tables consumed by the
// classification cascade. All matching is case-insensitive.
type KeywordSets struct {
	Factura   []string `yaml:"factura"`
	Marketing []string `yaml:"marketing"`
	RRHH      []string `yaml:"rrhh"`
	Pedidos   []string `yaml:"pedidos"`
	Gestoria  []string `yaml:"gestoria"`
	Cliente   []string `yaml:"cliente"`
}

// SummaryKeywords drive the action-required label of the summary heuristic,
// checked in struct field order with first match winning.
type SummaryKeywords struct {
	Urgency    []string `yaml:"urgency"`
	Response   []string `yaml:"response"`
	Payment    []string `yaml:"payment"`
	Attachment []string `yaml:"attachment"`
}

// Ruleset is the complete classification rule configuration.
type Ruleset struct {
	CompanyDomain   string          `yaml:"company_domain"`
	ProviderDomains []string        `yaml:"provider_domains"`
	InvoiceFilename []string        `yaml:"invoice_filename"`
	Keywords        KeywordSets     `yaml:"keywords"`
	Summary         SummaryKeywords `yaml:"summary"`
}

// Default returns the built-in ruleset.
func Default() Ruleset {
	return Ruleset{
		CompanyDomain: "miempresa.es",
		ProviderDomains: []string{
			"endesa.es",
			"iberdrola.es",
			"naturgy.es",
			"movistar.es",
			"vodafone.es",
			"orange.es",
			"amazon.es",
			"telefonica.com",
			"correos.es",
			"seur.es",
		},
		InvoiceFilename: []string{"factura", "invoice", "fra"},
		Keywords: KeywordSets{
			Factura: []string{
				"factura", "invoice", "recibo", "cargo", "importe a pagar",
				"nº de factura", "total a pagar",
			},
			Marketing: []string{
				"newsletter", "unsubscribe", "darse de baja", "promoción",
				"descuento", "oferta", "no-reply", "noreply", "marketing",
				"boletín", "suscripción",
			},
			RRHH: []string{
				"nómina", "nomina", "vacaciones", "contrato laboral",
				"baja médica", "permiso retribuido", "alta en seguridad social",
				"convenio", "despido", "finiquito",
			},
			Pedidos: []string{
				"pedido", "envío", "entrega", "albarán", "seguimiento",
				"tracking", "expedición", "su compra",
			},
			Gestoria: []string{
				"gestor", "gestoría", "asesor", "asesoría", "fiscal",
				"modelo 303", "modelo 111", "hacienda", "agencia tributaria",
				"deloitte", "kpmg", "pwc",
			},
			Cliente: []string{
				"pedido", "reserva", "consulta", "presupuesto", "disponibilidad",
				"me gustaría", "quisiera",
			},
		},
		Summary: SummaryKeywords{
			Urgency:    []string{"urgente", "inmediato", "hoy mismo", "cuanto antes", "asap"},
			Response:   []string{"responder", "respuesta", "confirmar", "confirme", "por favor"},
			Payment:    []string{"pago", "pagar", "transferencia", "vencimiento", "abonar"},
			Attachment: []string{"adjunto", "adjunta", "anexo", "documento"},
		},
	}
}

// Load reads a YAML override file and merges it over the defaults: fields
// present in the file replace the default table, absent fields keep it.
func Load(path string) (Ruleset, error) {
	rs := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return rs, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return rs, fmt.Errorf("failed to parse rules file: %w", err)
	}
	rs.normalize()
	return rs, nil
}

// Marshal renders the ruleset as YAML, used by "papeleo rules init".
func (r Ruleset) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules: %w", err)
	}
	return data, nil
}

// normalize lowercases every table entry so matching stays case-insensitive
// regardless of how the override file was written.
func (r *Ruleset) normalize() {
	r.CompanyDomain = strings.ToLower(strings.TrimSpace(r.CompanyDomain))
	lowerAll(r.ProviderDomains)
	lowerAll(r.InvoiceFilename)
	lowerAll(r.Keywords.Factura)
	lowerAll(r.Keywords.Marketing)
	lowerAll(r.Keywords.RRHH)
	lowerAll(r.Keywords.Pedidos)
	lowerAll(r.Keywords.Gestoria)
	lowerAll(r.Keywords.Cliente)
	lowerAll(r.Summary.Urgency)
	lowerAll(r.Summary.Response)
	lowerAll(r.Summary.Payment)
	lowerAll(r.Summary.Attachment)
}

func lowerAll(items []string) {
	for i, s := range items {
		items[i] = strings.ToLower(strings.TrimSpace(s))
	}
}

// IsProviderDomain reports whether the domain is on the provider allowlist.
func (r Ruleset) IsProviderDomain(domain string) bool {
	domain = strings.ToLower(domain)
	for _, d := range r.ProviderDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}
