// FILE: internal/service/index_builder_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"sdch/internal/entity"
	"sdch/internal/repository/specification"
	"sdch/internal/repository/unitofwork"
	"sdch/internal/websocket"
	"sdch/pkg/assembler"
	"sdch/pkg/tier"
)

// IIndexBuilderService consumes document.uploaded messages and materializes
// the chunk/embedding artifact a tier 3 or tier 4 document needs before it
// can be queried, then flips the document to ready or failed.
type IIndexBuilderService interface {
	Consume(ctx context.Context) error
}

type indexBuilderService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	builder    *assembler.Builder
	hub        *websocket.Hub
}

func NewIndexBuilderService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	builder *assembler.Builder,
	hub *websocket.Hub,
) IIndexBuilderService {
	return &indexBuilderService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		builder:    builder,
		hub:        hub,
	}
}

func (s *indexBuilderService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexBuilderService) processMessage(ctx context.Context, msg *message.Message) {
	var payload DocumentUploadedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] failed to unmarshal document.uploaded message: %v", err)
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] failed to load document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if doc == nil {
		log.Printf("[WARN] document %s not found, acking", payload.DocumentId)
		msg.Ack()
		return
	}

	text, err := os.ReadFile(doc.CanonicalTextPath)
	if err != nil {
		s.markFailed(ctx, doc, "failed to read canonical text: "+err.Error())
		msg.Nack()
		return
	}

	assemblerDoc := assembler.Document{
		ID:            doc.Id.String(),
		CanonicalText: string(text),
		TokenCount:    doc.TokenCount,
		Tier:          tier.Tier(doc.Tier),
	}

	if _, err := s.builder.Build(ctx, assemblerDoc); err != nil {
		s.markFailed(ctx, doc, "failed to build index: "+err.Error())
		msg.Nack()
		return
	}

	doc.Status = entity.StatusReady
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		log.Printf("[ERROR] failed to mark document %s ready: %v", doc.Id, err)
		msg.Nack()
		return
	}

	s.hub.Send(doc.Id, websocket.StatusEvent{Status: string(entity.StatusReady), Tier: doc.Tier})
	msg.Ack()
}

func (s *indexBuilderService) markFailed(ctx context.Context, doc *entity.Document, reason string) {
	doc.Status = entity.StatusFailed
	doc.FailureReason = reason
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		log.Printf("[ERROR] failed to mark document %s failed: %v", doc.Id, err)
	}
	s.hub.Send(doc.Id, websocket.StatusEvent{Status: string(entity.StatusFailed), FailureReason: reason})
}
