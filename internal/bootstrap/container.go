package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sdch/internal/config"
	"sdch/internal/controller"
	"sdch/internal/handler"
	"sdch/internal/pkg/logger"
	"sdch/internal/repository/unitofwork"
	"sdch/internal/service"
	"sdch/internal/websocket"
	"sdch/pkg/assembler"
	"sdch/pkg/budget"
	"sdch/pkg/embedding"
	"sdch/pkg/indexcache"
	"sdch/pkg/tier"
)

const documentUploadedTopic = service.DocumentUploadedTopic

type Container struct {
	DocumentController    controller.IDocumentController
	QueryController       controller.IQueryController
	HealthController      controller.IHealthController
	DocumentStatusHandler *handler.DocumentStatusHandler
	WebSocketHub          *websocket.Hub
	IndexBuilderService   service.IIndexBuilderService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] failed to parse Redis URL: %v, using direct addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/document_status.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	var primary embedding.Provider
	if cfg.Keys.OpenAI != "" {
		primary = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
		log.Printf("[INFO] primary embedder: OpenAI")
	} else {
		log.Printf("[INFO] no OPENAI_API_KEY configured, tier-4 documents embed with the fallback provider only")
	}
	fallback := embedding.NewOllamaProvider(cfg.Embedding.OllamaBaseURL, cfg.Embedding.OllamaModel)
	gateway := &embedding.Gateway{Primary: primary, Fallback: fallback}

	indexCache := indexcache.New(rdb, sysLogger)
	builder := assembler.NewBuilder(indexCache, gateway)

	budgetCfg := budget.Config{
		TotalWindow:      cfg.Budget.TotalWindow,
		ReservedSystem:   cfg.Budget.ReservedSystem,
		ReservedHistory:  cfg.Budget.ReservedHistory,
		ReservedResponse: cfg.Budget.ReservedResponse,
	}
	thresholds := tier.Thresholds{
		Tau1: cfg.Tier.Tau1MaxTokens,
		Tau2: cfg.Tier.Tau2MaxTokens,
		Tau3: cfg.Tier.Tau3MaxTokens,
	}
	asm := assembler.New(builder, budgetCfg, thresholds)

	documentService := service.NewDocumentService(uowFactory, pubSub, cfg.App.UploadDir, cfg.App.MaxFileSizeMB, thresholds, budgetCfg)
	queryService := service.NewQueryService(uowFactory, asm)
	indexBuilderService := service.NewIndexBuilderService(pubSub, documentUploadedTopic, uowFactory, builder, wsHub)

	if err := indexBuilderService.Consume(context.Background()); err != nil {
		log.Fatalf("[FATAL] failed to start index builder consumer: %v", err)
	}

	return &Container{
		DocumentController:    controller.NewDocumentController(documentService),
		QueryController:       controller.NewQueryController(queryService),
		HealthController:      controller.NewHealthController(db, rdb),
		DocumentStatusHandler: handler.NewDocumentStatusHandler(wsHub, wsLogger),
		WebSocketHub:          wsHub,
		IndexBuilderService:   indexBuilderService,
	}
}
