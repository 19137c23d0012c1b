package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmerida/papeleo/internal/common"
	"github.com/dmerida/papeleo/internal/model"
)

func testEmail(id string) model.Email {
	return model.Email{
		ID:          id,
		SenderEmail: "facturacion@endesa.es",
		Subject:     "Factura enero",
		BodyPreview: "Adjuntamos la factura del mes de enero.",
		ReceivedAt:  time.Now().UTC(),
		Attachments: []model.Attachment{
			{Filename: "factura_enero.pdf", MimeType: "application/pdf"},
		},
		HasAttachments: true,
	}
}

func TestSaveEmail(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	email := testEmail("email-1")
	require.NoError(t, store.SaveEmail(ctx, email))

	// Saving the same email twice is a no-op
	require.NoError(t, store.SaveEmail(ctx, email))

	err := store.SaveEmail(ctx, model.Email{SenderEmail: "a@b.es"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestSaveAndGetClassification(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEmail(ctx, testEmail("email-1")))

	cls := &model.EmailClassification{
		EmailID:     "email-1",
		Category:    model.CategoryFactura,
		SubCategory: "factura_proveedor",
		Priority:    model.PriorityAlta,
		Tags:        []string{"endesa.es"},
		Confidence:  0.9,
	}
	require.NoError(t, store.SaveClassification(ctx, cls))

	got, err := store.GetClassification(ctx, "email-1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFactura, got.Category)
	assert.Equal(t, "factura_proveedor", got.SubCategory)
	assert.Equal(t, model.PriorityAlta, got.Priority)
	assert.Equal(t, []string{"endesa.es"}, got.Tags)
	assert.InDelta(t, 0.9, got.Confidence, 0.001)
}

func TestSaveClassification_Replaces(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveEmail(ctx, testEmail("email-1")))

	first := &model.EmailClassification{
		EmailID:    "email-1",
		Category:   model.CategoryOtros,
		Priority:   model.PriorityBaja,
		Confidence: 0.5,
	}
	require.NoError(t, store.SaveClassification(ctx, first))

	second := &model.EmailClassification{
		EmailID:    "email-1",
		Category:   model.CategoryGestoria,
		Priority:   model.PriorityAlta,
		Confidence: 0.7,
	}
	require.NoError(t, store.SaveClassification(ctx, second))

	got, err := store.GetClassification(ctx, "email-1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGestoria, got.Category)
}

func TestSaveClassification_Invalid(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		cls  *model.EmailClassification
		name string
	}{
		{name: "nil", cls: nil},
		{name: "missing email ID", cls: &model.EmailClassification{Category: model.CategoryOtros, Priority: model.PriorityBaja}},
		{name: "missing category", cls: &model.EmailClassification{EmailID: "e1", Priority: model.PriorityBaja}},
		{name: "unknown priority", cls: &model.EmailClassification{EmailID: "e1", Category: model.CategoryOtros, Priority: "urgente"}},
		{name: "confidence out of range", cls: &model.EmailClassification{EmailID: "e1", Category: model.CategoryOtros, Priority: model.PriorityBaja, Confidence: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.SaveClassification(ctx, tt.cls))
		})
	}
}

func TestGetClassification_NotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetClassification(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListClassifications(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	seed := []model.EmailClassification{
		{EmailID: "e1", Category: model.CategoryFactura, Priority: model.PriorityAlta, Confidence: 0.9},
		{EmailID: "e2", Category: model.CategoryMarketing, Priority: model.PriorityBaja, Confidence: 0.85},
		{EmailID: "e3", Category: model.CategoryFactura, Priority: model.PriorityAlta, Confidence: 0.9},
	}
	for i := range seed {
		require.NoError(t, store.SaveEmail(ctx, testEmail(seed[i].EmailID)))
		require.NoError(t, store.SaveClassification(ctx, &seed[i]))
	}

	all, err := store.ListClassifications(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	facturas, err := store.ListClassifications(ctx, model.CategoryFactura)
	require.NoError(t, err)
	assert.Len(t, facturas, 2)
}

func TestCountByCategory(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	seed := []model.EmailClassification{
		{EmailID: "e1", Category: model.CategoryFactura, Priority: model.PriorityAlta, Confidence: 0.9},
		{EmailID: "e2", Category: model.CategoryFactura, Priority: model.PriorityAlta, Confidence: 0.9},
		{EmailID: "e3", Category: model.CategoryOtros, Priority: model.PriorityBaja, Confidence: 0.5},
	}
	for i := range seed {
		require.NoError(t, store.SaveEmail(ctx, testEmail(seed[i].EmailID)))
		require.NoError(t, store.SaveClassification(ctx, &seed[i]))
	}

	counts, err := store.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[model.CategoryFactura])
	assert.Equal(t, 1, counts[model.CategoryOtros])
	assert.Zero(t, counts[model.CategoryGestoria])
}
