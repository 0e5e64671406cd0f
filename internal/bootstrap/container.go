package bootstrap

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"finbot-be/internal/config"
	"finbot-be/internal/controller"
	"finbot-be/internal/handler"
	"finbot-be/internal/pkg/logger"
	"finbot-be/internal/repository/memory"
	"finbot-be/internal/service"
	"finbot-be/pkg/embedding"
	"finbot-be/pkg/extractor"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	SessionController  controller.ISessionController
	HealthController   controller.IHealthController

	// Background consumers (exposed for main.go to run)
	IngestAuditHandler *handler.IngestAuditHandler

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. In-process event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// 3. Providers
	embedder := embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	scraper := extractor.NewScraper()

	// 4. Repositories
	sessionRepo := memory.NewSessionRepository(embedder, sysLogger, cfg.Rag.SnapshotPath)

	// 5. Services
	ragService := service.NewRagService(
		sessionRepo,
		embedder,
		pubSub,
		sysLogger,
		cfg.Rag.MinChunkLength,
		cfg.Rag.DefaultTopK,
	)
	documentService := service.NewDocumentService(
		ragService,
		scraper,
		sysLogger,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
	)
	answerService := service.NewAnswerService(ragService, nil, sysLogger)

	return &Container{
		ChatController:     controller.NewChatController(answerService),
		DocumentController: controller.NewDocumentController(documentService, ragService),
		SessionController:  controller.NewSessionController(ragService),
		HealthController:   controller.NewHealthController(),
		IngestAuditHandler: handler.NewIngestAuditHandler(pubSub, sysLogger),
		Logger:             sysLogger,
	}
}
