package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sdch/internal/entity"
	"sdch/internal/mapper"
	"sdch/internal/model"
	"sdch/internal/repository/contract"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{db: db, mapper: mapper.NewChunkMapper()}
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *ChunkRepositoryImpl) FindByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Order("chunk_index ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.Chunk{}).Error
}
