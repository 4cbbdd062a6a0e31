package model

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Chunk is the GORM-mapped row for one chunk of a document's canonical
// text. The embedding column is declared without a fixed dimension
// (`vector`, not `vector(n)`): tier-4 documents may be embedded by either
// the 1536-dimension primary provider or the 384-dimension fallback, and a
// single fixed-width column can't hold both across different documents.
type Chunk struct {
	DocumentId  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Index       int             `gorm:"primaryKey;column:chunk_index"`
	Text        string          `gorm:"type:text;not null"`
	TokenCount  int             `gorm:"not null"`
	SectionHint string          `gorm:"type:varchar(255)"`
	Embedding   pgvector.Vector `gorm:"type:vector"`
}

func (Chunk) TableName() string {
	return "chunks"
}
