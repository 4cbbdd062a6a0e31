package service_test

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdch/internal/entity"
	"sdch/internal/repository/contract"
	"sdch/internal/repository/specification"
	"sdch/internal/repository/unitofwork"
	"sdch/internal/service"
	"sdch/pkg/budget"
	"sdch/pkg/tier"
)

type fakeDocumentRepository struct {
	docs map[uuid.UUID]*entity.Document
}

func newFakeDocumentRepository() *fakeDocumentRepository {
	return &fakeDocumentRepository{docs: make(map[uuid.UUID]*entity.Document)}
}

func (r *fakeDocumentRepository) Create(_ context.Context, doc *entity.Document) error {
	r.docs[doc.Id] = doc
	return nil
}

func (r *fakeDocumentRepository) Update(_ context.Context, doc *entity.Document) error {
	r.docs[doc.Id] = doc
	return nil
}

func (r *fakeDocumentRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, d := range r.docs {
		if matchesByID(d, specs) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepository) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Document, error) {
	out := make([]*entity.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDocumentRepository) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.docs)), nil
}

func matchesByID(d *entity.Document, specs []specification.Specification) bool {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok && byID.ID != d.Id {
			return false
		}
	}
	return true
}

type fakeUnitOfWork struct {
	repo *fakeDocumentRepository
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                { return nil }
func (u *fakeUnitOfWork) Rollback() error              { return nil }
func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.repo
}
func (u *fakeUnitOfWork) ChunkRepository() contract.ChunkRepository { return nil }

type fakeRepositoryFactory struct {
	repo *fakeDocumentRepository
}

func (f *fakeRepositoryFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{repo: f.repo}
}

type capturingPublisher struct {
	published []*message.Message
}

func (p *capturingPublisher) Publish(topic string, messages ...*message.Message) error {
	p.published = append(p.published, messages...)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func newTestDocumentService(t *testing.T, publisher message.Publisher) (service.IDocumentService, *fakeDocumentRepository) {
	repo := newFakeDocumentRepository()
	factory := &fakeRepositoryFactory{repo: repo}
	svc := service.NewDocumentService(factory, publisher, t.TempDir(), 50, tier.DefaultThresholds(), budget.DefaultConfig())
	return svc, repo
}

func TestUploadSmallDocumentBecomesReadyImmediately(t *testing.T) {
	publisher := &capturingPublisher{}
	svc, repo := newTestDocumentService(t, publisher)

	resp, err := svc.Upload(context.Background(), "note.txt", "text/plain", []byte("a short plain text document"))
	require.NoError(t, err)
	assert.Equal(t, "note.txt", resp.Filename)
	assert.NotNil(t, resp.Budget)

	stored := repo.docs[resp.DocId]
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusReady, stored.Status)
	assert.Empty(t, publisher.published, "tier-1 documents never publish a build message")
}

func TestUploadOversizeDocumentRejected(t *testing.T) {
	svc, _ := newTestDocumentService(t, &capturingPublisher{})

	_, err := svc.Upload(context.Background(), "huge.txt", "text/plain", make([]byte, 60*1024*1024))
	require.Error(t, err)
}

func TestShowReturnsNotFoundForUnknownDocument(t *testing.T) {
	svc, _ := newTestDocumentService(t, &capturingPublisher{})

	_, err := svc.Show(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestListReturnsAllDocuments(t *testing.T) {
	svc, _ := newTestDocumentService(t, &capturingPublisher{})

	_, err := svc.Upload(context.Background(), "one.txt", "text/plain", []byte("first document"))
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), "two.txt", "text/plain", []byte("second document"))
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Documents, 2)
}
