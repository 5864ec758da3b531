package bootstrap

import (
	"context"
	"log"
	"os"

	"ai-schemadesign-be/internal/config"
	"ai-schemadesign-be/internal/controller"
	"ai-schemadesign-be/internal/handler"
	"ai-schemadesign-be/internal/pkg/logger"
	"ai-schemadesign-be/internal/repository/memory"
	"ai-schemadesign-be/internal/repository/unitofwork"
	"ai-schemadesign-be/internal/service"
	"ai-schemadesign-be/internal/websocket"
	"ai-schemadesign-be/pkg/embedding"
	"ai-schemadesign-be/pkg/llm/factory"
	pktNats "ai-schemadesign-be/pkg/nats"
	"ai-schemadesign-be/pkg/schema/codegen"
	"ai-schemadesign-be/pkg/schema/diff"
	"ai-schemadesign-be/pkg/schema/intent"
	"ai-schemadesign-be/pkg/schema/synth"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ThreadController     controller.IThreadController
	CredentialController controller.ICredentialController
	AuthController       controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ThreadIndexerService service.IThreadIndexerService

	// WebSockets & thread events
	ThreadEventHandler *handler.ThreadEventHandler
	WebSocketHub       *websocket.Hub
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

	// Model trace log, separate from the structured app log so prompt sizes
	// and call timings can be grepped in isolation.
	traceFile, err := os.OpenFile(cfg.Ai.LLMTraceFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[WARN] Cannot open LLM trace file, falling back to stderr: %v", err)
		traceFile = os.Stderr
	}
	llmTrace := log.New(traceFile, "", log.LstdFlags)

	// 3. AI plumbing
	embeddingProvider := embedding.NewGeminiProvider(cfg.Ai.GoogleGeminiKey)

	providerFactory, err := factory.NewProviderFactory(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider factory: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory session storage
	sessionRepo := memory.NewSessionRepository()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/thread_events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Ai.IndexThreadTopic)
	credentialService := service.NewCredentialService(uowFactory, cfg.Auth.CredentialSecret)
	authService := service.NewAuthService(cfg.Auth.AccessPasswordHash)

	chatService := service.NewSchemaChatService(
		uowFactory,
		sessionRepo,
		credentialService,
		providerFactory,
		intent.NewValidator(llmTrace),
		synth.NewSynthesizer(llmTrace),
		diff.NewDiffer(llmTrace),
		codegen.NewGenerator(llmTrace),
		cfg.Ai.SchemaDialects,
		publisherService,
		embeddingProvider,
		natsPub,
		sysLogger,
	)

	indexerService := service.NewThreadIndexerService(
		pubSub,
		cfg.Ai.IndexThreadTopic,
		uowFactory,
		embeddingProvider,
		providerFactory,
		credentialService,
	)

	// Notification worker: NATS thread events to connected UIs
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	threadEventHandler := handler.NewThreadEventHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		ThreadEventHandler:   threadEventHandler,
		WebSocketHub:         wsHub,
		ThreadController:     controller.NewThreadController(chatService),
		CredentialController: controller.NewCredentialController(credentialService),
		AuthController:       controller.NewAuthController(authService),

		ThreadIndexerService: indexerService,
	}
}
