// FILE: internal/service/query_service.go
package service

import (
	"context"
	"os"

	"sdch/internal/dto"
	"sdch/internal/entity"
	"sdch/internal/repository/specification"
	"sdch/internal/repository/unitofwork"
	"sdch/pkg/assembler"
	"sdch/pkg/sdcherr"
	"sdch/pkg/tier"
)

type IQueryService interface {
	Query(ctx context.Context, req *dto.QueryDocumentRequest) (*dto.QueryDocumentResponse, error)
}

type queryService struct {
	uowFactory unitofwork.RepositoryFactory
	assembler  *assembler.Assembler
}

func NewQueryService(uowFactory unitofwork.RepositoryFactory, asm *assembler.Assembler) IQueryService {
	return &queryService{uowFactory: uowFactory, assembler: asm}
}

func (s *queryService) Query(ctx context.Context, req *dto.QueryDocumentRequest) (*dto.QueryDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: req.DocId})
	if err != nil {
		return nil, sdcherr.New(sdcherr.StoreError, "failed to load document", err)
	}
	if doc == nil {
		return nil, sdcherr.New(sdcherr.DocumentNotFound, "document not found", nil)
	}
	if doc.Status != entity.StatusReady {
		return nil, sdcherr.New(sdcherr.DocumentNotReady, "document is not ready for querying", nil)
	}

	canonicalText, err := s.readCanonicalText(doc)
	if err != nil {
		return nil, sdcherr.New(sdcherr.StoreError, "failed to read canonical text", err)
	}

	assemblerDoc := assembler.Document{
		ID:            doc.Id.String(),
		CanonicalText: canonicalText,
		TokenCount:    doc.TokenCount,
		Tier:          tier.Tier(doc.Tier),
	}

	result, err := s.assembler.Assemble(ctx, assemblerDoc, req.Query, req.TopK)
	if err != nil {
		return nil, err
	}

	chunksUsed := make([]dto.ChunkUsedResponse, 0, len(result.ChunksUsed))
	for _, c := range result.ChunksUsed {
		chunksUsed = append(chunksUsed, dto.ChunkUsedResponse{Index: c.Index, Tokens: c.Tokens, Score: c.Score})
	}

	return &dto.QueryDocumentResponse{
		DocId:            doc.Id,
		Query:            req.Query,
		Tier:             result.Tier,
		AssembledContext: result.AssembledContext,
		TokenCount:       result.TokenCount,
		ChunksUsed:       chunksUsed,
		StrategyNotes:    result.StrategyNotes,
		Budget:           result.Budget.AsDict(),
	}, nil
}

func (s *queryService) readCanonicalText(doc *entity.Document) (string, error) {
	data, err := os.ReadFile(doc.CanonicalTextPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
