package entity

import (
	"time"

	"github.com/google/uuid"
)

// Status is the document lifecycle state: received -> loading ->
// (ready | failed).
type Status string

const (
	StatusReceived Status = "received"
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusFailed   Status = "failed"
)

// Document is the canonical record for one uploaded file: its source
// format, resolved tier, and a path reference to the extracted text file
// managed by the relational store.
type Document struct {
	Id                 uuid.UUID
	Filename           string
	FileSizeBytes      int64
	MimeType           string
	Format             string
	CanonicalTextPath  string
	TokenCount         int
	Tier               int
	PageCount          *int
	RowCount           *int
	Status             Status
	FailureReason      string
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
