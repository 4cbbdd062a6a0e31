package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is the GORM-mapped row for an uploaded document. The canonical
// text itself is not a column: it lives on disk under the configured
// upload directory, referenced here by path, since no object-storage
// dependency appears anywhere in the example corpus this module was
// grounded on.
type Document struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename          string         `gorm:"type:varchar(255);not null"`
	FileSizeBytes     int64          `gorm:"not null"`
	MimeType          string         `gorm:"type:varchar(127)"`
	Format            string         `gorm:"type:varchar(16);not null"`
	CanonicalTextPath string         `gorm:"type:text;not null"`
	TokenCount        int            `gorm:"not null;default:0"`
	Tier              int            `gorm:"not null;default:0"`
	PageCount         *int
	RowCount          *int
	Status            string         `gorm:"type:varchar(16);not null;default:'received'"`
	FailureReason     string         `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
