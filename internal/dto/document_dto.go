package dto

import (
	"time"

	"github.com/google/uuid"

	"sdch/pkg/tier"
)

// UploadDocumentResponse is returned both by the upload endpoint and by
// the document-show endpoint; the two surfaces share one shape.
type UploadDocumentResponse struct {
	DocId      uuid.UUID              `json:"doc_id"`
	Filename   string                 `json:"filename"`
	FileSize   int64                  `json:"file_size"`
	MimeType   string                 `json:"mime_type,omitempty"`
	TokenCount int                    `json:"token_count"`
	Tier       tier.Result            `json:"tier"`
	Budget     map[string]interface{} `json:"budget"`
	PageCount  *int                   `json:"page_count,omitempty"`
	RowCount   *int                   `json:"row_count,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ShowDocumentRequest carries a path-bound document id, mirroring the
// teacher's request-struct convention. DocumentController.Show does not
// use it: it passes the parsed id to the service directly.
type ShowDocumentRequest struct {
	Id uuid.UUID
}

type ListDocumentsResponse struct {
	Documents []UploadDocumentResponse `json:"documents"`
}
