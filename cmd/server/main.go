package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/config"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/handler"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/repository"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/service"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/utils"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting property search service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit))

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Build the catalog: generator knobs from config, optionally overlaid
	// by a fixture file. A catalog that cannot be built is fatal.
	fixture := repository.DefaultFixture()
	fixture.Size = cfg.Catalog.Size
	fixture.Seed = cfg.Catalog.Seed
	if err := fixture.LoadFile(cfg.Catalog.FixturePath); err != nil {
		logger.Fatal("failed to load catalog fixture",
			zap.String("path", cfg.Catalog.FixturePath),
			zap.Error(err))
	}
	catalog, err := repository.NewCatalog(fixture.Generate(time.Now()))
	if err != nil {
		logger.Fatal("failed to build catalog", zap.Error(err))
	}
	logger.Info("catalog ready", zap.Int("properties", catalog.Size()))

	// Initialize OpenAI client when configured; everything works without it
	var aiClient service.AIClient
	if cfg.OpenAI.Enabled {
		aiClient = service.NewOpenAIClient(&cfg.OpenAI, logger)
		logger.Info("OpenAI client initialized",
			zap.String("api_base", cfg.OpenAI.APIBase),
			zap.String("chat_model", cfg.OpenAI.ChatModel))
	} else {
		logger.Info("OpenAI disabled, interpretation and summaries use the rule layer",
			zap.String("hint", "set OPENAI_API_KEY to enable model-backed paths"))
	}

	// Initialize services
	aiTimeout := time.Duration(cfg.OpenAI.Timeout) * time.Second
	interpreter := service.NewQueryInterpreter(aiClient, aiTimeout, logger)
	ranker := service.NewRanker(cfg.Search.DefaultPerPage, cfg.Search.MaxPerPage)
	searchService := service.NewSearchService(catalog, interpreter, ranker, logger)
	summaryService := service.NewSummaryService(catalog, aiClient, aiTimeout, logger)
	chatService := service.NewChatService(interpreter, logger)

	// Initialize handlers
	searchHandler := handler.NewSearchHandler(searchService)
	propertyHandler := handler.NewPropertyHandler(searchService)
	interpretHandler := handler.NewInterpretHandler(interpreter)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	chatHandler := handler.NewChatHandler(chatService)
	feedbackHandler := handler.NewFeedbackHandler(searchService)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = strings.Split(cfg.Server.AllowedMethods, ",")
	corsConfig.AllowHeaders = strings.Split(cfg.Server.AllowedHeaders, ",")
	router.Use(cors.New(corsConfig))

	// Liveness and version endpoints
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "property-search-engine",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/search", searchHandler.Search)
		apiV1.GET("/facets", searchHandler.Facets)
		apiV1.GET("/properties/:id", propertyHandler.Get)
		apiV1.GET("/interpret", interpretHandler.Interpret)
		apiV1.POST("/summary", summaryHandler.Summarize)
		apiV1.POST("/chat", chatHandler.Chat)
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Start server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
