package model

import (
	"strings"
	"time"
)

// Attachment is a single attachment on an email.
type Attachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// Email is a normalized inbound email as exported from the mailbox.
type Email struct {
	ReceivedAt     time.Time    `json:"received_at,omitempty"`
	ID             string       `json:"id"`
	Subject        string       `json:"subject"`
	BodyPreview    string       `json:"body_preview,omitempty"`
	Snippet        string       `json:"snippet,omitempty"`
	SenderEmail    string       `json:"sender_email"`
	Attachments    []Attachment `json:"attachments,omitempty"`
	HasAttachments bool         `json:"has_attachments,omitempty"`
}

// Body returns the best available body text: the full preview when present,
// otherwise the snippet.
func (e Email) Body() string {
	if e.BodyPreview != "" {
		return e.BodyPreview
	}
	return e.Snippet
}

// SenderDomain returns the lowercased domain of the sender address, or ""
// when the address has no @.
func (e Email) SenderDomain() string {
	_, domain, found := strings.Cut(e.SenderEmail, "@")
	if !found {
		return ""
	}
	return strings.ToLower(domain)
}

// EmailCategory is the single category assigned to an email.
type EmailCategory string

// Email categories, in cascade priority order.
const (
	CategoryFactura   EmailCategory = "factura"
	CategoryMarketing EmailCategory = "marketing"
	CategoryRRHH      EmailCategory = "rrhh"
	CategoryProveedor EmailCategory = "proveedor"
	CategoryInterno   EmailCategory = "interno"
	CategoryGestoria  EmailCategory = "gestoria"
	CategoryCliente   EmailCategory = "cliente"
	CategoryOtros     EmailCategory = "otros"
)

// Priority is the triage priority assigned to an email.
type Priority string

// Priority levels.
const (
	PriorityAlta  Priority = "alta"
	PriorityMedia Priority = "media"
	PriorityBaja  Priority = "baja"
)

// EmailClassification is the output of the email classifier. It is a pure
// function of the email content, so it carries no timestamp; the storage
// layer records when it was persisted.
type EmailClassification struct {
	EmailID     string        `json:"email_id"`
	Category    EmailCategory `json:"category"`
	SubCategory string        `json:"sub_category"`
	Priority    Priority      `json:"priority"`
	Tags        []string      `json:"tags"`
	Confidence  float64       `json:"confidence"`
}

// AttachmentAnalysis partitions an email's attachments into triage buckets.
// An invoice-named PDF appears in both PDFs and Invoices.
type AttachmentAnalysis struct {
	PDFs     []Attachment `json:"pdfs"`
	Invoices []Attachment `json:"invoices"`
	Images   []Attachment `json:"images"`
	Others   []Attachment `json:"others"`
	Total    int          `json:"total"`
}

// Entity is a key entity spotted in an email body.
type Entity struct {
	Type  string `json:"type"` // importe, fecha or referencia
	Value string `json:"value"`
}

// EmailSummary is the heuristic summary of an email.
type EmailSummary struct {
	Summary        string   `json:"summary"`
	ActionRequired string   `json:"action_required,omitempty"`
	KeyEntities    []Entity `json:"key_entities,omitempty"`
}
