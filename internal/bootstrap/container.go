package bootstrap

import (
	"log"

	"keepwise-be/internal/config"
	"keepwise-be/internal/controller"
	"keepwise-be/internal/migrations"
	"keepwise-be/internal/pkg/logger"
	"keepwise-be/internal/pkg/serverutils"
	"keepwise-be/internal/repository/contract"
	"keepwise-be/internal/repository/document"
	"keepwise-be/internal/repository/implementation"
	"keepwise-be/internal/service"
	"keepwise-be/internal/websocket"
	"keepwise-be/pkg/database"
	pktNats "keepwise-be/pkg/nats"
	"keepwise-be/pkg/summarizer"
	"keepwise-be/pkg/summarizer/ollama"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	NoteController      controller.INoteController
	SummarizeController controller.ISummarizeController

	// Shared infrastructure
	TokenService   service.ITokenService
	AuthMiddleware fiber.Handler
	Hub            *websocket.Hub
	Logger         logger.ILogger
}

func NewContainer(cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 1. Note store (strategy picked by configuration)
	noteRepository, rdb, err := newNoteRepository(cfg)
	if err != nil {
		return nil, err
	}

	// 2. Redis for the live feed. The store's own client is reused when the
	// document driver is active; otherwise connect only if configured.
	if rdb == nil && cfg.App.RedisURL != "" {
		rdb, err = database.NewRedisClient(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v (feed stays single-instance)", err)
			rdb = nil
		}
	}

	// 3. NATS event bus (optional)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 4. Live note feed
	feedLogger := logger.NewIsolatedLogger("logs/feed.log")
	hub := websocket.NewHub(rdb, feedLogger)
	go hub.Run()

	// 5. Summarizer fallback provider
	var summarizeProvider summarizer.Provider
	if cfg.Summarizer.Provider == "ollama" {
		summarizeProvider = ollama.NewOllamaProvider(cfg.Summarizer.OllamaBaseURL, cfg.Summarizer.OllamaModel)
		log.Printf("[INFO] Using Summarizer Provider: OLLAMA (%s)", cfg.Summarizer.OllamaModel)
	}

	// 6. Services
	tokenService := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenCacheTTL)
	if cfg.Auth.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET not set. Authentication disabled; all requests share the anonymous identity.")
	}

	noteService := service.NewNoteService(noteRepository, natsPub, hub, sysLogger)
	summarizeService := service.NewSummarizeService(summarizeProvider)

	return &Container{
		NoteController:      controller.NewNoteController(noteService),
		SummarizeController: controller.NewSummarizeController(summarizeService),
		TokenService:        tokenService,
		AuthMiddleware:      serverutils.AuthMiddleware(tokenService),
		Hub:                 hub,
		Logger:              sysLogger,
	}, nil
}

func newNoteRepository(cfg *config.Config) (contract.NoteRepository, *redis.Client, error) {
	driver := cfg.Store.Driver
	// A connection string implies postgres unless the driver says otherwise.
	if driver == "sqlite" && cfg.Store.DSN != "" {
		driver = "postgres"
	}

	if driver == "redis" {
		url := cfg.App.RedisURL
		if url == "" {
			url = "redis://localhost:6379"
		}
		rdb, err := database.NewRedisClient(url)
		if err != nil {
			return nil, nil, err
		}
		log.Println("[INFO] Note store: redis (document)")
		return document.NewNoteRepository(rdb), rdb, nil
	}

	db, err := database.NewGormDB(driver, cfg.Store.DSN, cfg.Store.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(db); err != nil {
		return nil, nil, err
	}
	log.Printf("[INFO] Note store: %s (relational)", driver)
	return implementation.NewNoteRepository(db), nil, nil
}
