// FILE: internal/service/document_service.go
package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"sdch/internal/dto"
	"sdch/internal/entity"
	"sdch/internal/pkg/serverutils"
	"sdch/internal/repository/specification"
	"sdch/internal/repository/unitofwork"
	"sdch/pkg/budget"
	"sdch/pkg/loader"
	"sdch/pkg/sdcherr"
	"sdch/pkg/tier"
	"sdch/pkg/tokenizer"
)

// DocumentUploadedMessage is published after a document's canonical text
// and row are persisted, carrying everything index_builder_service needs
// to build and cache the tier-appropriate artifact.
type DocumentUploadedMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

const DocumentUploadedTopic = "document.uploaded"

type IDocumentService interface {
	Upload(ctx context.Context, filename, mimeHint string, data []byte) (*dto.UploadDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context) (*dto.ListDocumentsResponse, error)
}

type documentService struct {
	uowFactory  unitofwork.RepositoryFactory
	publisher   message.Publisher
	uploadDir   string
	maxFileSize int64
	thresholds  tier.Thresholds
	budgetCfg   budget.Config
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisher message.Publisher,
	uploadDir string,
	maxFileSizeMB int,
	thresholds tier.Thresholds,
	budgetCfg budget.Config,
) IDocumentService {
	return &documentService{
		uowFactory:  uowFactory,
		publisher:   publisher,
		uploadDir:   uploadDir,
		maxFileSize: int64(maxFileSizeMB) * 1024 * 1024,
		thresholds:  thresholds,
		budgetCfg:   budgetCfg,
	}
}

func (s *documentService) Upload(ctx context.Context, filename, mimeHint string, data []byte) (*dto.UploadDocumentResponse, error) {
	if int64(len(data)) > s.maxFileSize {
		return nil, sdcherr.New(sdcherr.Oversize, "file exceeds the configured size limit", nil)
	}

	format, err := loader.DetectFormat(filename, mimeHint)
	if err != nil {
		return nil, err
	}

	result, err := loader.Load(data, filename, mimeHint)
	if err != nil {
		return nil, err
	}

	tokenCount, err := tokenizer.Count(result.Text)
	if err != nil {
		return nil, sdcherr.New(sdcherr.TokenizerError, "failed to count tokens", err)
	}
	docTier := tier.Classify(tokenCount, s.thresholds)

	doc := entity.Document{
		Id:            uuid.New(),
		Filename:      filename,
		FileSizeBytes: int64(len(data)),
		MimeType:      mimeHint,
		Format:        string(format),
		TokenCount:    tokenCount,
		Tier:          int(docTier),
		PageCount:     result.PageCount,
		RowCount:      result.RowCount,
		Status:        entity.StatusLoading,
		CreatedAt:     time.Now(),
	}

	path, err := s.persistCanonicalText(doc.Id, result.Text)
	if err != nil {
		return nil, sdcherr.New(sdcherr.StoreError, "failed to persist canonical text", err)
	}
	doc.CanonicalTextPath = path

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, sdcherr.New(sdcherr.StoreError, "failed to create document row", err)
	}

	if docTier >= tier.Tier3 {
		if err := s.publishUploaded(doc.Id); err != nil {
			doc.Status = entity.StatusFailed
			doc.FailureReason = "failed to enqueue index build: " + err.Error()
			_ = uow.DocumentRepository().Update(ctx, &doc)
		}
	} else {
		doc.Status = entity.StatusReady
		if err := uow.DocumentRepository().Update(ctx, &doc); err != nil {
			return nil, sdcherr.New(sdcherr.StoreError, "failed to mark document ready", err)
		}
	}

	return s.toUploadResponse(&doc), nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, sdcherr.New(sdcherr.StoreError, "failed to load document", err)
	}
	if doc == nil {
		return nil, serverutils.NewAppError(404, "document not found")
	}
	return s.toUploadResponse(doc), nil
}

func (s *documentService) List(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true}, specification.Pagination{Limit: 100})
	if err != nil {
		return nil, sdcherr.New(sdcherr.StoreError, "failed to list documents", err)
	}

	resp := make([]dto.UploadDocumentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, *s.toUploadResponse(d))
	}
	return &dto.ListDocumentsResponse{Documents: resp}, nil
}

func (s *documentService) persistCanonicalText(id uuid.UUID, text string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.uploadDir, id.String()+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *documentService) publishUploaded(id uuid.UUID) error {
	payload, err := json.Marshal(DocumentUploadedMessage{DocumentId: id})
	if err != nil {
		return err
	}
	msg := message.NewMessage(id.String(), payload)
	return s.publisher.Publish(DocumentUploadedTopic, msg)
}

func (s *documentService) toUploadResponse(d *entity.Document) *dto.UploadDocumentResponse {
	bud := budget.Allocate(s.budgetCfg, d.TokenCount)
	return &dto.UploadDocumentResponse{
		DocId:      d.Id,
		Filename:   d.Filename,
		FileSize:   d.FileSizeBytes,
		MimeType:   d.MimeType,
		TokenCount: d.TokenCount,
		Tier:       tier.Describe(tier.Tier(d.Tier)),
		Budget:     bud.AsDict(),
		PageCount:  d.PageCount,
		RowCount:   d.RowCount,
		CreatedAt:  d.CreatedAt,
	}
}
