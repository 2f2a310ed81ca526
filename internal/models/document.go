package models

import "time"

// Document status values. Uploads never mutate a stored file: each upload
// creates a new version and flips the previous Latest row to Superseded.
const (
	DocumentStatusLatest     = "Latest"
	DocumentStatusSuperseded = "Superseded"
)

type DocumentType struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateDocumentTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Document struct {
	ID                int       `json:"id"`
	CustomerID        int       `json:"customer_id"`
	DocumentTypeID    int       `json:"document_type_id"`
	Version           int       `json:"version"`
	Status            string    `json:"status"`
	VisibleToCustomer bool      `json:"visible_to_customer"`
	FileName          string    `json:"file_name"`
	FileKey           string    `json:"file_key"`
	ContentType       string    `json:"content_type"`
	SizeBytes         int64     `json:"size_bytes"`
	UploadedBy        int       `json:"uploaded_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// DocumentFilter narrows paginated document listings.
type DocumentFilter struct {
	CustomerID     int
	DocumentTypeID int
	LatestOnly     bool
}
