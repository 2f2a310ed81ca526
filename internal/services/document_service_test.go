package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"ca-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDocumentStore struct {
	CreateVersionFn func(ctx context.Context, d *models.Document) error
	GetFn           func(ctx context.Context, id int) (*models.Document, error)
	DeleteFn        func(ctx context.Context, id int) error
}

func (m *mockDocumentStore) CreateVersion(ctx context.Context, d *models.Document) error {
	return m.CreateVersionFn(ctx, d)
}
func (m *mockDocumentStore) Get(ctx context.Context, id int) (*models.Document, error) {
	return m.GetFn(ctx, id)
}
func (m *mockDocumentStore) List(ctx context.Context, f models.DocumentFilter, limit, offset int) ([]*models.Document, int, error) {
	return nil, 0, nil
}
func (m *mockDocumentStore) SetVisibility(ctx context.Context, id int, visible bool) error {
	return nil
}
func (m *mockDocumentStore) Delete(ctx context.Context, id int) error { return m.DeleteFn(ctx, id) }

type mockDocumentTypeStore struct {
	GetFn func(ctx context.Context, id int) (*models.DocumentType, error)
}

func (m *mockDocumentTypeStore) Create(ctx context.Context, t *models.DocumentType) error { return nil }
func (m *mockDocumentTypeStore) Get(ctx context.Context, id int) (*models.DocumentType, error) {
	return m.GetFn(ctx, id)
}
func (m *mockDocumentTypeStore) List(ctx context.Context) ([]*models.DocumentType, error) {
	return nil, nil
}
func (m *mockDocumentTypeStore) Update(ctx context.Context, t *models.DocumentType) error { return nil }
func (m *mockDocumentTypeStore) Delete(ctx context.Context, id int) error                 { return nil }

func TestUpload_ValidatesInput(t *testing.T) {
	svc := NewDocumentService(&mockDocumentStore{}, &mockDocumentTypeStore{}, &mockFileStore{})

	_, err := svc.Upload(context.Background(), 0, 0, 1, "", "", 0, strings.NewReader(""))
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "customer_id")
	assert.Contains(t, ve.Fields, "document_type_id")
	assert.Contains(t, ve.Fields, "file")
}

func TestUpload_RejectsUnknownDocumentType(t *testing.T) {
	types := &mockDocumentTypeStore{
		GetFn: func(ctx context.Context, id int) (*models.DocumentType, error) {
			return nil, ErrNotFound
		},
	}
	svc := NewDocumentService(&mockDocumentStore{}, types, &mockFileStore{})

	_, err := svc.Upload(context.Background(), 4, 99, 1, "pan.pdf", "application/pdf", 10, strings.NewReader("x"))
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "document_type_id")
}

func TestUpload_StoresFileThenRecordsVersion(t *testing.T) {
	var uploadedKey string
	var created *models.Document

	docs := &mockDocumentStore{
		CreateVersionFn: func(ctx context.Context, d *models.Document) error {
			created = d
			d.Version = 3
			d.Status = models.DocumentStatusLatest
			return nil
		},
	}
	types := &mockDocumentTypeStore{
		GetFn: func(ctx context.Context, id int) (*models.DocumentType, error) {
			return &models.DocumentType{ID: id, Name: "PAN Card"}, nil
		},
	}
	files := &mockFileStore{
		UploadFn: func(ctx context.Context, key string, body io.Reader, contentType string) error {
			uploadedKey = key
			return nil
		},
	}
	svc := NewDocumentService(docs, types, files)

	doc, err := svc.Upload(context.Background(), 4, 2, 9, "pan.pdf", "application/pdf", 1024, strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uploadedKey, "documents/4/2/"))
	assert.True(t, strings.HasSuffix(uploadedKey, ".pdf"))
	assert.Equal(t, uploadedKey, created.FileKey)
	assert.Equal(t, 9, created.UploadedBy)
	assert.Equal(t, int64(1024), created.SizeBytes)
	assert.Equal(t, models.DocumentStatusLatest, doc.Status)
}

func TestUpload_FileErrorSkipsVersionRow(t *testing.T) {
	docs := &mockDocumentStore{
		CreateVersionFn: func(ctx context.Context, d *models.Document) error {
			t.Fatal("no version row may be written when the upload fails")
			return nil
		},
	}
	types := &mockDocumentTypeStore{
		GetFn: func(ctx context.Context, id int) (*models.DocumentType, error) {
			return &models.DocumentType{ID: id}, nil
		},
	}
	files := &mockFileStore{
		UploadFn: func(ctx context.Context, key string, body io.Reader, contentType string) error {
			return errors.New("bucket unavailable")
		},
	}
	svc := NewDocumentService(docs, types, files)

	_, err := svc.Upload(context.Background(), 4, 2, 9, "pan.pdf", "application/pdf", 10, strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
}

func TestDeleteDocument_SwallowsFileDeleteError(t *testing.T) {
	rowDeleted := false
	docs := &mockDocumentStore{
		GetFn: func(ctx context.Context, id int) (*models.Document, error) {
			return &models.Document{ID: id, FileKey: "documents/4/2/abc.pdf"}, nil
		},
		DeleteFn: func(ctx context.Context, id int) error {
			rowDeleted = true
			return nil
		},
	}
	files := &mockFileStore{
		DeleteFn: func(ctx context.Context, key string) error {
			return errors.New("object gone already")
		},
	}
	svc := NewDocumentService(docs, &mockDocumentTypeStore{}, files)

	err := svc.DeleteDocument(context.Background(), 12)
	require.NoError(t, err)
	assert.True(t, rowDeleted)
}
