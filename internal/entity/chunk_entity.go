package entity

import "github.com/google/uuid"

// Chunk is a persisted, token-bounded fragment of a document's canonical
// text, identified by (DocumentId, Index). Embedding is nil until a tier-4
// document has been embedded.
type Chunk struct {
	DocumentId  uuid.UUID
	Index       int
	Text        string
	TokenCount  int
	SectionHint string
	Embedding   []float32
}
