// Package tui implements the interactive review queue for extractions that
// were flagged for manual attention.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmerida/papeleo/internal/cli"
	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/service"
)

// reviewedMsg reports the result of approving a document.
type reviewedMsg struct {
	err error
	id  string
}

// Model is the bubbletea model for the review queue.
type Model struct {
	storage  service.Storage
	ctx      context.Context
	err      error
	docs     []model.Document
	keys     KeyMap
	help     help.Model
	cursor   int
	approved int
	quitting bool
}

// NewModel creates a review queue over the given documents.
func NewModel(ctx context.Context, storage service.Storage, docs []model.Document) Model {
	return Model{
		ctx:     ctx,
		storage: storage,
		docs:    docs,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.docs)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Approve):
			if len(m.docs) > 0 {
				return m, m.approveCmd(m.docs[m.cursor].ID)
			}
		}

	case reviewedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.approved++
		m.docs = removeDoc(m.docs, msg.id)
		if m.cursor >= len(m.docs) && m.cursor > 0 {
			m.cursor = len(m.docs) - 1
		}
		if len(m.docs) == 0 {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) approveCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.storage.MarkReviewed(m.ctx, id)
		return reviewedMsg{id: id, err: err}
	}
}

func removeDoc(docs []model.Document, id string) []model.Document {
	out := docs[:0]
	for _, doc := range docs {
		if doc.ID != id {
			out = append(out, doc)
		}
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return cli.FormatSuccess(fmt.Sprintf("Revisión terminada: %d documentos aprobados\n", m.approved))
	}
	if len(m.docs) == 0 {
		return cli.FormatInfo("No hay documentos pendientes de revisión\n")
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Documentos pendientes de revisión"))
	b.WriteString("\n\n")

	for i, doc := range m.docs {
		line := fmt.Sprintf("%s  %s  (confianza %d)",
			doc.Result.DocumentType.Label(),
			doc.SourcePath,
			doc.Result.Confidence)
		if i == m.cursor {
			b.WriteString(cli.BoldStyle.Render("> " + line))
		} else {
			b.WriteString(cli.SubtleStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView(m.docs[m.cursor]))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(cli.FormatError(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) detailView(doc model.Document) string {
	r := doc.Result

	rows := []string{
		detailRow("Nº Factura", r.InvoiceNumber.Value),
		detailRow("Fecha", r.InvoiceDate.Value),
		detailRow("Proveedor", r.Provider.Name.Value),
		detailRow("CIF/NIF", r.Provider.CIF.Value),
		detailRow("Total", formatAmount(r.Total.Value)),
	}
	if len(r.Validation.MissingCritical) > 0 {
		rows = append(rows, cli.WarningStyle.Render(
			"Faltan: "+strings.Join(r.Validation.MissingCritical, ", ")))
	}

	return cli.RenderBox("Detalle", lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func detailRow(label, value string) string {
	if value == "" {
		value = cli.SubtleStyle.Render("—")
	}
	return fmt.Sprintf("%-12s %s", label+":", value)
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f€", *v)
}
