package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardscan/backend/internal/api"
	"cardscan/backend/internal/api/handlers"
	"cardscan/backend/internal/auth"
	"cardscan/backend/internal/config"
	"cardscan/backend/internal/db"
	"cardscan/backend/internal/extract"
	"cardscan/backend/internal/health"
	"cardscan/backend/internal/logger"
	"cardscan/backend/internal/repository"
	"cardscan/backend/internal/scheduler"
	"cardscan/backend/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load and validate configuration first (before logger)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger with configuration
	logger.Init(cfg.Logger)

	logger.Info().
		Str("environment", cfg.Logger.Environment).
		Str("log_level", cfg.Logger.Level).
		Msg("configuration loaded successfully")

	// Run migrations before connecting to database
	logger.Info().Msg("running database migrations")
	if err := db.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize database
	ctx := context.Background()
	database, err := db.NewDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("database connected successfully")

	// Initialize extraction pipeline
	extractLog := logger.Component("extract")
	extractor := extract.New(extract.Config{
		DefaultRegion:  cfg.Extract.DefaultRegion,
		MinPhoneDigits: cfg.Extract.MinPhoneDigits,
		Logger:         &extractLog,
	})

	// Initialize repositories and services
	cardRepo := repository.NewCardRepository(database)

	var outbox *service.OutboxService
	if cfg.Sync.Enabled {
		outbox = service.NewOutboxService(cfg.Sync.OutboxPath, logger.Component("outbox"))
	}

	cardService := service.NewCardService(cardRepo, extractor, outbox, logger.Component("cards"))

	// Initialize handlers
	scanHandler := handlers.NewScanHandler(cardService)
	cardHandler := handlers.NewCardHandler(cardService)

	var syncHandler *handlers.SyncHandler
	if outbox != nil {
		syncHandler = handlers.NewSyncHandler(outbox, cardRepo)
	}

	// Initialize and start the outbox flush scheduler
	if outbox != nil {
		cronScheduler, err := scheduler.New(outbox, cardRepo, cfg.Sync.FlushCronSpec, logger.Component("scheduler"))
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create scheduler")
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	// Set up Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.CORSMiddleware(cfg.CORS))
	router.Use(api.ErrorHandlerMiddleware())

	// Health check endpoint
	router.GET("/health", health.Handler(database, cfg.Database.HealthTimeout))

	// API routes
	v1 := router.Group("/api/v1")
	v1.Use(auth.APIKeyMiddleware(cfg))
	v1.Use(auth.UserIDMiddleware())
	{
		// Scan routes
		scans := v1.Group("/scans")
		{
			scans.POST("", scanHandler.CreateScan)
			scans.POST("/classify", scanHandler.ClassifyScan)
		}

		// Card routes
		cards := v1.Group("/cards")
		{
			cards.POST("", scanHandler.CreateCard)
			cards.GET("", cardHandler.ListCards)
			cards.DELETE("", cardHandler.DeleteCards)
			cards.GET("/:id", cardHandler.GetCard)
			cards.PUT("/:id", cardHandler.UpdateCard)
			cards.DELETE("/:id", cardHandler.DeleteCard)
		}

		// Outbox routes
		if syncHandler != nil {
			syncRoutes := v1.Group("/sync")
			{
				syncRoutes.GET("/outbox", syncHandler.GetOutbox)
				syncRoutes.POST("/outbox/flush", syncHandler.FlushOutbox)
			}
		}
	}

	// Start server with configured bind address
	addr := cfg.GetBindAddress()
	// Use a listener so we can discover the selected port when PORT=0
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", addr).Msg("failed to bind listener")
	}

	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		_ = ln.Close()
		logger.Fatal().Msg("failed to determine TCP address")
	}
	selectedPort := tcpAddr.Port

	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info().
			Int("port", selectedPort).
			Str("addr", cfg.Server.Host).
			Msg("starting server")
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	// Give outstanding requests a configured timeout to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")

	// Print the selected port on graceful exit for supervising processes
	fmt.Printf("PORT=%d\n", selectedPort)
}
