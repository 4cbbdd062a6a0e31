package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdch/internal/entity"
	"sdch/internal/dto"
	"sdch/internal/pkg/logger"
	"sdch/internal/service"
	"sdch/pkg/assembler"
	"sdch/pkg/budget"
	"sdch/pkg/indexcache"
	"sdch/pkg/sdcherr"
	"sdch/pkg/tier"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }
func (noopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(string) (*logger.LogEntry, error) { return nil, nil }

func newTestAssembler() *assembler.Assembler {
	cache := indexcache.New(nil, noopLogger{})
	builder := assembler.NewBuilder(cache, nil)
	return assembler.New(builder, budget.DefaultConfig(), tier.DefaultThresholds())
}

func newTestQueryService(t *testing.T) (service.IQueryService, *fakeDocumentRepository) {
	repo := newFakeDocumentRepository()
	factory := &fakeRepositoryFactory{repo: repo}
	return service.NewQueryService(factory, newTestAssembler()), repo
}

func seedReadyDocument(t *testing.T, repo *fakeDocumentRepository, text string) *entity.Document {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	doc := &entity.Document{
		Id:                uuid.New(),
		Filename:          "doc.txt",
		CanonicalTextPath: path,
		TokenCount:        len(text) / 4,
		Tier:              int(tier.Tier1),
		Status:            entity.StatusReady,
		CreatedAt:         time.Now(),
	}
	repo.docs[doc.Id] = doc
	return doc
}

func TestQueryAgainstReadyTier1Document(t *testing.T) {
	svc, repo := newTestQueryService(t)
	doc := seedReadyDocument(t, repo, "The quarterly report shows steady growth across all regions.")

	resp, err := svc.Query(context.Background(), &dto.QueryDocumentRequest{DocId: doc.Id, Query: "growth", TopK: 0})
	require.NoError(t, err)
	assert.Equal(t, doc.Id, resp.DocId)
	assert.NotEmpty(t, resp.AssembledContext)
	assert.NotNil(t, resp.Budget)
}

func TestQueryAgainstUnknownDocument(t *testing.T) {
	svc, _ := newTestQueryService(t)

	_, err := svc.Query(context.Background(), &dto.QueryDocumentRequest{DocId: uuid.New(), Query: "anything"})
	require.Error(t, err)
	se, ok := sdcherr.As(err)
	require.True(t, ok)
	assert.Equal(t, sdcherr.DocumentNotFound, se.Kind)
}

func TestQueryAgainstDocumentNotYetReady(t *testing.T) {
	svc, repo := newTestQueryService(t)
	doc := seedReadyDocument(t, repo, "loading content")
	doc.Status = entity.StatusLoading
	repo.docs[doc.Id] = doc

	_, err := svc.Query(context.Background(), &dto.QueryDocumentRequest{DocId: doc.Id, Query: "content"})
	require.Error(t, err)
	se, ok := sdcherr.As(err)
	require.True(t, ok)
	assert.Equal(t, sdcherr.DocumentNotReady, se.Kind)
}
