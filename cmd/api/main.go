package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/pitch-assistant-team/pitch-assistant/pkg/validator"

	"github.com/pitch-assistant-team/pitch-assistant/internal/adapter/handler"
	"github.com/pitch-assistant-team/pitch-assistant/internal/adapter/repository"
	"github.com/pitch-assistant-team/pitch-assistant/internal/infrastructure/cache"
	"github.com/pitch-assistant-team/pitch-assistant/internal/infrastructure/database"
	"github.com/pitch-assistant-team/pitch-assistant/internal/infrastructure/storage"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/analysis"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/generation"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/interactive"
	"github.com/pitch-assistant-team/pitch-assistant/internal/usecase/practice"
	pkgai "github.com/pitch-assistant-team/pitch-assistant/pkg/ai"
	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
	"github.com/pitch-assistant-team/pitch-assistant/pkg/jwt"
)

// @title           Pitch Assistant API
// @version         1.0
// @description     API for generating presentations with AI and practicing their delivery

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply schema migrations only when explicitly enabled in config.
	// Production deployments should run sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run sql-migrate in CI/CD for schema changes")
	}

	// Initialize crawl cache, falling back to in-memory when Redis is not
	// reachable
	log.Println("📦 Connecting to Redis...")
	var crawlCache cache.Store
	redisStore, err := cache.NewRedisStore(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory cache", err)
		crawlCache = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		crawlCache = redisStore
	}

	// Initialize object storage
	log.Println("🗄️  Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	presentationRepo := repository.NewPresentationRepository(db)
	slideRepo := repository.NewSlideRepository(db)
	sessionRepo := repository.NewPracticeSessionRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI clients...")
	openaiClient := pkgai.NewOpenAIClient(&cfg.OpenAI)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	assemblyClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	log.Println("✨ Initializing services...")
	crawler := generation.NewCrawler(&cfg.Crawler)
	resolver := generation.NewResolver(crawler, crawlCache, cfg.Crawler.CacheTTL, logger)
	generationService := generation.NewService(presentationRepo, slideRepo, openaiClient, openaiClient, minioClient, resolver, cfg, logger)
	analysisService := analysis.NewService(openaiClient, logger)
	practiceService := practice.NewService(sessionRepo, slideRepo, assemblyClient, minioClient, analysisService, logger)
	interactiveService := interactive.NewService(slideRepo, openaiClient, groqClient, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	generationHandler := handler.NewGeneration(generationService, logger)
	presentationHandler := handler.NewPresentation(presentationRepo, slideRepo, logger)
	practiceHandler := handler.NewPractice(practiceService, sessionRepo, logger)
	interactiveHandler := handler.NewInteractive(interactiveService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, generationHandler, presentationHandler, practiceHandler, interactiveHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server exited")
}
