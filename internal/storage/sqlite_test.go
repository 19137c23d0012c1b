package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmerida/papeleo/internal/common"
	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/service"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func testDocument(id string, needsReview bool) *model.Document {
	total := 121.0
	return &model.Document{
		ID:          id,
		SourcePath:  "/tmp/facturas/" + id + ".pdf",
		NeedsReview: needsReview,
		CreatedAt:   time.Now().UTC(),
		Result: model.ExtractionResult{
			Success:       true,
			DocumentType:  model.DocFactura,
			InvoiceNumber: model.Field{Value: "F-2024-0001", Confidence: 0.9},
			Total:         model.AmountField{Value: &total, Confidence: 0.9},
			Confidence:    81,
		},
	}
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates database and parent directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteStorage("")
		assert.ErrorIs(t, err, ErrEmptyString)
	})
}

func TestMigrate(t *testing.T) {
	store := setupTestStorage(t)

	var version int
	err := store.db.QueryRow("PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running migrations again is a no-op
	require.NoError(t, store.Migrate(context.Background()))
}

func TestSaveAndGetDocument(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	doc := testDocument("doc-1", true)
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.SourcePath, got.SourcePath)
	assert.True(t, got.NeedsReview)
	assert.Equal(t, model.DocFactura, got.Result.DocumentType)
	assert.Equal(t, "F-2024-0001", got.Result.InvoiceNumber.Value)
	require.NotNil(t, got.Result.Total.Value)
	assert.InDelta(t, 121.0, *got.Result.Total.Value, 0.001)
	assert.Equal(t, 81, got.Result.Confidence)
}

func TestSaveDocument_Duplicate(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	doc := testDocument("doc-1", false)
	require.NoError(t, store.SaveDocument(ctx, doc))

	err := store.SaveDocument(ctx, doc)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestSaveDocument_Invalid(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	err := store.SaveDocument(ctx, nil)
	assert.ErrorIs(t, err, ErrNilParameter)

	err = store.SaveDocument(ctx, &model.Document{SourcePath: "/tmp/a.pdf"})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestGetDocument_NotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListDocuments(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1", true)))
	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-2", false)))
	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-3", true)))

	t.Run("no filter returns everything", func(t *testing.T) {
		docs, err := store.ListDocuments(ctx, service.DocumentFilter{})
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("filter by needs_review", func(t *testing.T) {
		needsReview := true
		docs, err := store.ListDocuments(ctx, service.DocumentFilter{NeedsReview: &needsReview})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
		for _, doc := range docs {
			assert.True(t, doc.NeedsReview)
		}
	})

	t.Run("filter by doc type", func(t *testing.T) {
		docs, err := store.ListDocuments(ctx, service.DocumentFilter{DocType: model.DocNomina})
		require.NoError(t, err)
		assert.Empty(t, docs)

		docs, err = store.ListDocuments(ctx, service.DocumentFilter{DocType: model.DocFactura})
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("limit", func(t *testing.T) {
		docs, err := store.ListDocuments(ctx, service.DocumentFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestMarkReviewed(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc-1", true)))
	require.NoError(t, store.MarkReviewed(ctx, "doc-1"))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.False(t, got.NeedsReview)

	err = store.MarkReviewed(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
