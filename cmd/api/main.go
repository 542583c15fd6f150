package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/adapters/cache"
	"github.com/farmguru/backend/internal/adapters/database"
	"github.com/farmguru/backend/internal/adapters/events"
	"github.com/farmguru/backend/internal/adapters/providers/ai"
	"github.com/farmguru/backend/internal/adapters/providers/speech"
	"github.com/farmguru/backend/internal/adapters/search"
	"github.com/farmguru/backend/internal/adapters/storage"
	"github.com/farmguru/backend/internal/api/handlers"
	"github.com/farmguru/backend/internal/api/middleware"
	"github.com/farmguru/backend/internal/api/routes"
	"github.com/farmguru/backend/internal/application/services"
	"github.com/farmguru/backend/internal/domain/providers"
	"github.com/farmguru/backend/internal/domain/repositories"
	"github.com/farmguru/backend/internal/infrastructure/clients/postgres"
	"github.com/farmguru/backend/internal/infrastructure/clients/redis"
	"github.com/farmguru/backend/internal/infrastructure/clients/typesense"
	"github.com/farmguru/backend/internal/infrastructure/observability"
	"github.com/farmguru/backend/pkg/config"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// PostgreSQL is the only hard dependency
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional: without it the service runs uncached and the
	// escalation stream is disabled
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without caching")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, falling back to Postgres full-text search")
		typesenseClient = nil
	} else {
		log.Info().Msg("Typesense client initialized")
	}

	// Database adapters
	queryLogAdapter := database.NewQueryLogAdapter(pgClient)
	documentAdapter := database.NewDocumentAdapter(pgClient)
	weatherAdapter := database.NewWeatherAdapter(pgClient)
	marketAdapter := database.NewMarketAdapter(pgClient)
	schemeAdapter := database.NewSchemeAdapter(pgClient)
	communityAdapter := database.NewCommunityAdapter(pgClient)
	imageAdapter := database.NewImageAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)

	var searchRepo repositories.DocumentSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	} else {
		log.Info().Msg("event bus disabled (Redis not available)")
	}

	imageStore := storage.NewLocalStore(cfg.Storage.BaseDir, cfg.Storage.PublicURL)

	// Answer synthesis degrades to the fallback resolver when no
	// provider is configured
	answerProvider := ai.NewAnswerProvider(ctx, &cfg.LLM)
	if answerProvider == nil {
		log.Warn().Msg("no answer provider configured, every query resolves via fallback")
	}

	speechProvider := speech.NewSpeechProvider(ctx, &cfg.Speech, cfg.LLM.GeminiAPIKey)

	// Services
	queryService := services.NewQueryService(
		answerProvider,
		searchRepo,
		documentAdapter,
		queryLogAdapter,
		imageAdapter,
		eventBus,
		metrics,
	)
	weatherService := services.NewWeatherService(weatherAdapter)
	marketService := services.NewMarketService(marketAdapter)
	schemeService := services.NewSchemeService(schemeAdapter, userAdapter)
	advisoryService := services.NewAdvisoryService(searchRepo, documentAdapter)
	communityService := services.NewCommunityService(communityAdapter)
	imageService := services.NewImageService(imageStore, imageAdapter)

	// Handlers
	queryHandler := handlers.NewQueryHandler(queryService)
	imageHandler := handlers.NewImageHandler(imageService)
	transcribeHandler := handlers.NewTranscribeHandler(speechProvider)
	weatherHandler := handlers.NewWeatherHandler(weatherService)
	marketHandler := handlers.NewMarketHandler(marketService)
	schemeHandler := handlers.NewSchemeHandler(schemeService)
	advisoryHandler := handlers.NewAdvisoryHandler(advisoryService)
	communityHandler := handlers.NewCommunityHandler(communityService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Info().Msg("cache middleware initialized")
	}

	router := routes.NewRouter(
		queryHandler,
		imageHandler,
		transcribeHandler,
		weatherHandler,
		marketHandler,
		schemeHandler,
		advisoryHandler,
		communityHandler,
		sseHandler,
		cacheMiddleware,
		metrics,
		cfg.Storage.BaseDir,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout stays unset: it would sever the escalation stream
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
