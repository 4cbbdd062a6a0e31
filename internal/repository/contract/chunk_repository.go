package contract

import (
	"context"

	"github.com/google/uuid"

	"sdch/internal/entity"
)

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.Chunk, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
}
