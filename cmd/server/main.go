package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/adapter/cache"
	handlers "github.com/AREOPAGO7/ZOOJ-sub001/internal/adapter/handler/http"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/adapter/publisher"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/config"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/service"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/infrastructure/catalog"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/infrastructure/database"
	grpcServer "github.com/AREOPAGO7/ZOOJ-sub001/internal/infrastructure/grpc"
	httpServer "github.com/AREOPAGO7/ZOOJ-sub001/internal/infrastructure/http"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/usecase"
	"github.com/AREOPAGO7/ZOOJ-sub001/pkg/logger"
	"github.com/AREOPAGO7/ZOOJ-sub001/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log.LoggerConfig())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zapLogger = zapLogger.With(zap.String("service", cfg.Service.Name))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	repos, db, err := database.Open(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	if db != nil {
		defer func() {
			if err := database.Close(db, zapLogger); err != nil {
				zapLogger.Error("Failed to close database connection", zap.Error(err))
			}
		}()
	}

	// Seed the quiz catalog
	if cfg.Catalog.SeedPath != "" {
		if err := seedCatalog(ctx, cfg.Catalog.SeedPath, repos.Catalog, zapLogger); err != nil {
			zapLogger.Fatal("Failed to seed quiz catalog", zap.Error(err))
		}
	}

	// Redis backs the shared answer cache and result events when enabled
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = messaging.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				zapLogger.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		zapLogger.Info("Redis connection established", zap.String("addr", cfg.Redis.Addr))
	}

	var answerCache repository.AnswerCache = cache.NewMemoryCache()
	if cfg.Cache.Driver == config.CacheRedis {
		answerCache = cache.NewRedisCache(redisClient)
	}

	resultPublisher := publisher.NewNoopPublisher()
	if redisClient != nil {
		resultPublisher = publisher.NewRedisResultPublisher(
			messaging.NewRedisClient(redisClient), cfg.Redis.ResultChannel, zapLogger)
	}

	// Initialize usecases
	tieBreaker, err := service.NewTieBreaker(cfg.Scoring.TieBreakPolicy, cfg.Scoring.EvenPicksFirst)
	if err != nil {
		zapLogger.Fatal("Invalid scoring configuration", zap.Error(err))
	}

	quizService := usecase.NewQuizService(
		repos.Quiz,
		repos.Answer,
		repos.Result,
		repos.Couple,
		answerCache,
		resultPublisher,
		service.NewScorer(tieBreaker),
		cfg.Cache.AnswerTTL,
		zapLogger,
	)
	insightService := usecase.NewInsightService(repos.Quiz, repos.Result, repos.Couple, zapLogger)

	var reconciler *usecase.ResultReconciler
	if cfg.Scoring.ReconcileEnabled {
		reconciler = usecase.NewResultReconciler(repos.Answer, quizService, cfg.Scoring.ReconcileInterval, zapLogger)
		if err := reconciler.Start(ctx); err != nil {
			zapLogger.Fatal("Failed to start result reconciler", zap.Error(err))
		}
	}

	// Start HTTP server
	httpSrv := httpServer.NewServer(
		httpServer.WithAddress(cfg.Server.HTTP.Host, cfg.Server.HTTP.Port),
		httpServer.WithLogger(zapLogger),
		httpServer.WithServiceName(cfg.Service.Name),
		httpServer.WithJWTSecret(cfg.Supabase.JWTSecret),
		httpServer.WithAllowedOrigins(allowedOrigins(cfg.Service.ClientURL)...),
	)
	httpSrv.RegisterRoutes(func(g *echo.Group) {
		handlers.NewQuizHandler(zapLogger, quizService).Register(g)
		handlers.NewInsightHandler(zapLogger, insightService).Register(g)
	})

	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Start gRPC server
	grpcSrv := grpcServer.NewServer(
		grpcServer.WithAddress(cfg.Server.GRPC.Host, cfg.Server.GRPC.Port),
		grpcServer.WithLogger(zapLogger),
	)
	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Error("gRPC server error", zap.Error(err))
		}
	}()

	zapLogger.Info("Service started",
		zap.String("environment", cfg.Service.Environment),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Int("http_port", cfg.Server.HTTP.Port),
		zap.Int("grpc_port", cfg.Server.GRPC.Port))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down servers...")

	if reconciler != nil {
		reconciler.Stop()
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}
	if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	zapLogger.Info("Servers shutdown complete")
}

func seedCatalog(ctx context.Context, path string, writer repository.CatalogWriter, zapLogger *zap.Logger) error {
	if writer == nil {
		zapLogger.Warn("Storage backend cannot be seeded; skipping catalog", zap.String("path", path))
		return nil
	}
	quizzes, err := catalog.Load(path)
	if err != nil {
		return err
	}
	return catalog.Seed(ctx, writer, quizzes, zapLogger)
}

func allowedOrigins(clientURL string) []string {
	if clientURL == "" {
		return nil
	}
	return []string{clientURL}
}
