package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/storage"
)

func setupModel(t *testing.T) (Model, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	docs := []model.Document{
		{ID: "doc-1", SourcePath: "/tmp/a.pdf", NeedsReview: true},
		{ID: "doc-2", SourcePath: "/tmp/b.pdf", NeedsReview: true},
	}
	for i := range docs {
		require.NoError(t, store.SaveDocument(context.Background(), &docs[i]))
	}

	return NewModel(context.Background(), store, docs), store
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigation(t *testing.T) {
	m, _ := setupModel(t)

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	// Cursor stops at the end of the list
	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestApprove(t *testing.T) {
	m, store := setupModel(t)
	ctx := context.Background()

	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	reviewed, ok := msg.(reviewedMsg)
	require.True(t, ok)
	require.NoError(t, reviewed.err)
	assert.Equal(t, "doc-1", reviewed.id)

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.False(t, got.NeedsReview)

	updated, _ := m.Update(reviewed)
	m = updated.(Model)
	assert.Equal(t, 1, m.approved)
	require.Len(t, m.docs, 1)
	assert.Equal(t, "doc-2", m.docs[0].ID)
}

func TestApproveLastDocumentQuits(t *testing.T) {
	m, _ := setupModel(t)
	m.docs = m.docs[:1]

	updated, cmd := m.Update(reviewedMsg{id: "doc-1"})
	m = updated.(Model)
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestQuitKeys(t *testing.T) {
	m, _ := setupModel(t)

	for _, key := range []string{"q"} {
		updated, cmd := m.Update(keyMsg(key))
		quit := updated.(Model)
		assert.True(t, quit.quitting)
		assert.NotNil(t, cmd)
	}
}

func TestView(t *testing.T) {
	m, _ := setupModel(t)

	view := m.View()
	assert.Contains(t, view, "/tmp/a.pdf")
	assert.Contains(t, view, "/tmp/b.pdf")
	assert.Contains(t, view, "aprobar")

	empty := NewModel(context.Background(), nil, nil)
	assert.Contains(t, empty.View(), "No hay documentos")
}
