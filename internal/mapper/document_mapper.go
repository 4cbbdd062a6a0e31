package mapper

import (
	"time"

	"sdch/internal/entity"
	"sdch/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:                d.Id,
		Filename:          d.Filename,
		FileSizeBytes:     d.FileSizeBytes,
		MimeType:          d.MimeType,
		Format:            d.Format,
		CanonicalTextPath: d.CanonicalTextPath,
		TokenCount:        d.TokenCount,
		Tier:              d.Tier,
		PageCount:         d.PageCount,
		RowCount:          d.RowCount,
		Status:            entity.Status(d.Status),
		FailureReason:     d.FailureReason,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:                d.Id,
		Filename:          d.Filename,
		FileSizeBytes:     d.FileSizeBytes,
		MimeType:          d.MimeType,
		Format:            d.Format,
		CanonicalTextPath: d.CanonicalTextPath,
		TokenCount:        d.TokenCount,
		Tier:              d.Tier,
		PageCount:         d.PageCount,
		RowCount:          d.RowCount,
		Status:            string(d.Status),
		FailureReason:     d.FailureReason,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
