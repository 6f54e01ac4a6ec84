package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/quiz-app/internal/config"
	"github.com/yourusername/quiz-app/internal/domain/repository"
	"github.com/yourusername/quiz-app/internal/handler"
	"github.com/yourusername/quiz-app/internal/middleware"
	redisRepo "github.com/yourusername/quiz-app/internal/repository/redis"
	"github.com/yourusername/quiz-app/internal/repository/sqlstore"
	"github.com/yourusername/quiz-app/internal/service"
	"github.com/yourusername/quiz-app/pkg/database"
	"github.com/yourusername/quiz-app/pkg/logger"
	"github.com/yourusername/quiz-app/pkg/monitoring"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		// логгер еще не настроен
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg); err != nil {
		os.Stderr.WriteString("Failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Log.Info("Конфигурация загружена", zap.String("path", configPath), zap.String("driver", cfg.Database.Driver))

	gin.SetMode(cfg.Server.Mode)
	monitoring.Init()

	// Хранилище
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.MigrateDB(db, cfg.Database.Driver); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	userRepo := sqlstore.NewUserRepo(db)
	testRepo := sqlstore.NewTestRepo(db)
	historyRepo := sqlstore.NewHistoryRepo(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sqlstore.Seed(ctx, userRepo, testRepo); err != nil {
		logger.Log.Fatal("Failed to seed database", zap.Error(err))
	}

	// Redis необязателен: без него кеш списка тестов выключен, лимитер работает в памяти
	var cacheRepo repository.CacheRepository = redisRepo.NoopCacheRepo{}
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		repo, err := redisRepo.NewCacheRepo(redisClient, "quiz:")
		if err != nil {
			logger.Log.Fatal("Failed to create cache repository", zap.Error(err))
		}
		cacheRepo = repo
	}

	// Сервисы
	userService := service.NewUserService(userRepo)
	testService := service.NewTestService(testRepo, cacheRepo, cfg.Redis.CacheTTL())
	historyService := service.NewHistoryService(historyRepo)
	catalogService := service.NewCatalogService(testService, historyService)

	var rateLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		rlCfg := middleware.RateLimitConfig{
			MaxRequests: cfg.RateLimit.MaxRequests,
			Window:      cfg.RateLimit.Window(),
			KeyPrefix:   middleware.DefaultAPIRateLimitConfig().KeyPrefix,
		}
		if cfg.Redis.Enabled {
			rateLimit = middleware.NewRateLimiter(cacheRepo).LimitByIP(rlCfg)
		} else {
			rateLimit = middleware.NewLocalRateLimiter(rlCfg).Middleware()
		}
	}

	router := handler.NewRouter(handler.RouterDeps{
		Users:        handler.NewUserHandler(userService),
		Tests:        handler.NewTestHandler(testService),
		History:      handler.NewHistoryHandler(historyService, time.Local),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Health:       handler.NewHealthHandler(db),
		RateLimit:    rateLimit,
		AllowOrigins: cfg.Server.AllowOrigins,
		StaticDir:    cfg.Server.StaticDir,
	})

	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		logger.Log.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	// HTTP сервер с тайм-аутами
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Failed to start server", zap.Error(err))
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Log.Info("Server exited properly")
}
