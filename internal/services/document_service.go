package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"ca-backend/internal/models"
	"ca-backend/internal/storage"
)

// DocumentStore is the repository surface for document versions.
type DocumentStore interface {
	CreateVersion(ctx context.Context, d *models.Document) error
	Get(ctx context.Context, id int) (*models.Document, error)
	List(ctx context.Context, f models.DocumentFilter, limit, offset int) ([]*models.Document, int, error)
	SetVisibility(ctx context.Context, id int, visible bool) error
	Delete(ctx context.Context, id int) error
}

// DocumentTypeStore is the repository surface for document types.
type DocumentTypeStore interface {
	Create(ctx context.Context, t *models.DocumentType) error
	Get(ctx context.Context, id int) (*models.DocumentType, error)
	List(ctx context.Context) ([]*models.DocumentType, error)
	Update(ctx context.Context, t *models.DocumentType) error
	Delete(ctx context.Context, id int) error
}

type DocumentService struct {
	Repo     DocumentStore
	TypeRepo DocumentTypeStore
	Files    storage.FileStore
}

func NewDocumentService(repo DocumentStore, typeRepo DocumentTypeStore, files storage.FileStore) *DocumentService {
	return &DocumentService{Repo: repo, TypeRepo: typeRepo, Files: files}
}

// Upload stores the file and records a new version row. The previous Latest
// version for the same customer and type is flipped to Superseded in the
// same transaction as the insert, so there is always exactly one Latest.
func (s *DocumentService) Upload(ctx context.Context, customerID, documentTypeID, uploadedBy int,
	filename, contentType string, size int64, body io.Reader) (*models.Document, error) {

	fields := map[string]string{}
	if customerID <= 0 {
		fields["customer_id"] = "customer_id is required"
	}
	if documentTypeID <= 0 {
		fields["document_type_id"] = "document_type_id is required"
	}
	if filename == "" {
		fields["file"] = "file is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.TypeRepo.Get(ctx, documentTypeID); err != nil {
		return nil, NewValidationError("document_type_id", "unknown document type")
	}

	key := fmt.Sprintf("documents/%d/%d/%d%s", customerID, documentTypeID, time.Now().UnixNano(), path.Ext(filename))
	if err := s.Files.Upload(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	doc := &models.Document{
		CustomerID:     customerID,
		DocumentTypeID: documentTypeID,
		FileName:       filename,
		FileKey:        key,
		ContentType:    contentType,
		SizeBytes:      size,
		UploadedBy:     uploadedBy,
	}
	if err := s.Repo.CreateVersion(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, id int) (*models.Document, error) {
	return s.Repo.Get(ctx, id)
}

// Download returns the stored file stream for a document version.
func (s *DocumentService) Download(ctx context.Context, id int) (*models.Document, io.ReadCloser, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	body, _, err := s.Files.Download(ctx, doc.FileKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch document file: %w", err)
	}
	return doc, body, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context, f models.DocumentFilter, limit, offset int) ([]*models.Document, int, error) {
	return s.Repo.List(ctx, f, limit, offset)
}

func (s *DocumentService) SetVisibility(ctx context.Context, id int, visible bool) (*models.Document, error) {
	if err := s.Repo.SetVisibility(ctx, id, visible); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

// DeleteDocument removes the version row and best-effort deletes the file.
func (s *DocumentService) DeleteDocument(ctx context.Context, id int) error {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Files.Delete(ctx, doc.FileKey); err != nil {
		// Orphaned objects are cleaned up by a storage lifecycle rule.
		return nil
	}
	return nil
}

func (s *DocumentService) CreateDocumentType(ctx context.Context, req *models.CreateDocumentTypeRequest) (*models.DocumentType, error) {
	if req.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	t := &models.DocumentType{Name: req.Name, Description: req.Description}
	if err := s.TypeRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *DocumentService) ListDocumentTypes(ctx context.Context) ([]*models.DocumentType, error) {
	return s.TypeRepo.List(ctx)
}

func (s *DocumentService) UpdateDocumentType(ctx context.Context, id int, req *models.CreateDocumentTypeRequest) (*models.DocumentType, error) {
	if req.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	t := &models.DocumentType{ID: id, Name: req.Name, Description: req.Description}
	if err := s.TypeRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.TypeRepo.Get(ctx, id)
}

func (s *DocumentService) DeleteDocumentType(ctx context.Context, id int) error {
	return s.TypeRepo.Delete(ctx, id)
}
