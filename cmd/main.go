package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/radio_room_system/internal/config"
	v1 "github.com/shenikar/radio_room_system/internal/handler/http/v1"
	"github.com/shenikar/radio_room_system/internal/repository"
	"github.com/shenikar/radio_room_system/internal/service"
	"github.com/shenikar/radio_room_system/internal/webhook"
	"github.com/shenikar/radio_room_system/pkg/logger"
	"github.com/shenikar/radio_room_system/pkg/postgres"
	redisclient "github.com/shenikar/radio_room_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/radio_room_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Radio Room System API
// @version 1.0
// @description Shared-state radio room console: team directory, field links, inbox, log and holds.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище снапшота и outbox
	store := repository.NewFileStore(cfg.SnapshotPath)
	outbox := repository.NewFileOutbox(cfg.OutboxPath)
	opts := []service.Option{}

	// Архив brogliaccio в PostgreSQL (необязательно)
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	switch {
	case errors.Is(err, postgres.ErrDisabled):
		log.Info("DATABASE_URL not set, log archive disabled")
	case err != nil:
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	default:
		defer dbpool.Close()
		log.Info("Running database migrations...")
		if err := postgres.Migrate(cfg.DatabaseURL, "migrations"); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Info("Successfully connected to PostgreSQL")
		opts = append(opts, service.WithArchive(repository.NewPostgresArchive(dbpool)))
	}

	// Redis: оповещения об изменениях и очередь вебхуков (необязательно)
	var wake <-chan string
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	switch {
	case errors.Is(err, redisclient.ErrDisabled):
		log.Info("REDIS_ADDR not set, relying on file polling only")
	case err != nil:
		log.Fatalf("Failed to connect to Redis: %v", err)
	default:
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		notifier := repository.NewRedisNotifier(redisClient, log)
		wake, err = notifier.Subscribe(ctx)
		if err != nil {
			log.Fatalf("Failed to subscribe to change notifications: %v", err)
		}
		opts = append(opts, service.WithNotifier(notifier))

		if cfg.WebhookURL != "" {
			opts = append(opts, service.WithPublisher(webhook.NewRedisPublisher(redisClient)))
			webhook.NewWorker(redisClient, log, cfg).Start(ctx)
		}
	}

	// Инициализация сессии
	session := service.NewSession(store, outbox, log, cfg, opts...)
	if err := session.Open(ctx); err != nil {
		log.Fatalf("Failed to open snapshot: %v", err)
	}
	for _, w := range session.Warnings() {
		log.Warn(w)
	}

	monitor := service.NewMonitor(session, cfg.SyncInterval, log, wake)
	monitor.OnReload(func() {
		log.Info("Snapshot reloaded after external change")
	})
	monitor.Start(ctx)

	// Инициализация хэндлеров
	handler := v1.NewHandler(session, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.WithField("snapshot", cfg.SnapshotPath).Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if n := session.PendingWrites(); n > 0 {
		log.WithField("pending_writes", n).Warn("Shutting down with unsaved changes in outbox")
	}
	log.Info("Server gracefully stopped")
}
