package bootstrap

import (
	"context"
	"log"

	"ai-interview-be/internal/config"
	"ai-interview-be/internal/controller"
	"ai-interview-be/internal/handler"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/unitofwork"
	"ai-interview-be/internal/service"
	"ai-interview-be/internal/session"

	pktNats "ai-interview-be/pkg/nats"

	"ai-interview-be/pkg/interviewer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	InterviewController controller.IInterviewController
	DocumentController  controller.IDocumentController

	// WebSocket session entry point
	SessionHandler  *handler.SessionHandler
	SessionRegistry *session.Registry

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// 3. Model client
	model, err := interviewer.NewGeminiClient(context.Background(), cfg.Keys.GoogleGemini, cfg.Ai.Model)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Gemini client: %v", err)
	}
	log.Printf("[INFO] Using interviewer model: %s", model.Model())

	// 4. Session infrastructure
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	registry := session.NewRegistry(rdb, sysLogger)
	registry.Run(context.Background())

	publisherService := service.NewPublisherService(cfg.App.EvaluationTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EvaluationTopic,
		uowFactory,
		auditLogger,
	)

	sessionStore := service.NewSessionStore(uowFactory)
	// Keep the interface nil when NATS is down; a typed nil pointer would
	// defeat the orchestrator's nil check.
	var lifecycle session.LifecyclePublisher
	if natsPub != nil {
		lifecycle = natsPub
	}
	orchestrator := session.NewOrchestrator(
		registry,
		sessionStore,
		model,
		publisherService,
		lifecycle,
		sysLogger,
		cfg.Ai.SessionMinutes,
	)

	// 5. Services
	interviewService := service.NewInterviewService(uowFactory, model, natsPub)
	documentService := service.NewDocumentService(sysLogger)

	// 6. Controllers & Handlers
	return &Container{
		InterviewController: controller.NewInterviewController(interviewService),
		DocumentController:  controller.NewDocumentController(documentService),
		SessionHandler:      handler.NewSessionHandler(orchestrator, sysLogger),
		SessionRegistry:     registry,
		ConsumerService:     consumerService,
	}
}
