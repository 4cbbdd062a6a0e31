package mapper

import (
	"github.com/pgvector/pgvector-go"

	"sdch/internal/entity"
	"sdch/internal/model"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}

	var embedding []float32
	if c.Embedding.Slice() != nil {
		embedding = c.Embedding.Slice()
	}

	return &entity.Chunk{
		DocumentId:  c.DocumentId,
		Index:       c.Index,
		Text:        c.Text,
		TokenCount:  c.TokenCount,
		SectionHint: c.SectionHint,
		Embedding:   embedding,
	}
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}

	var embedding pgvector.Vector
	if c.Embedding != nil {
		embedding = pgvector.NewVector(c.Embedding)
	}

	return &model.Chunk{
		DocumentId:  c.DocumentId,
		Index:       c.Index,
		Text:        c.Text,
		TokenCount:  c.TokenCount,
		SectionHint: c.SectionHint,
		Embedding:   embedding,
	}
}

func (m *ChunkMapper) ToEntities(chunks []*model.Chunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChunkMapper) ToModels(chunks []*entity.Chunk) []*model.Chunk {
	models := make([]*model.Chunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
