package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/municipal_incidents/internal/auth"
	"github.com/shenikar/municipal_incidents/internal/authz"
	"github.com/shenikar/municipal_incidents/internal/config"
	v1 "github.com/shenikar/municipal_incidents/internal/handler/http/v1"
	"github.com/shenikar/municipal_incidents/internal/notify"
	"github.com/shenikar/municipal_incidents/internal/repository"
	"github.com/shenikar/municipal_incidents/internal/service"
	"github.com/shenikar/municipal_incidents/internal/storage"
	"github.com/shenikar/municipal_incidents/internal/webhook"
	"github.com/shenikar/municipal_incidents/pkg/logger"
	"github.com/shenikar/municipal_incidents/pkg/postgres"
	redisclient "github.com/shenikar/municipal_incidents/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/municipal_incidents/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Municipal Incidents API
// @version 1.0
// @description Incident lifecycle engine for municipal service requests.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Политика действий
	policy, err := authz.NewPolicy()
	if err != nil {
		log.Fatalf("Failed to build action policy: %v", err)
	}

	// Уведомления и хранилище доказательств
	mailer := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	dispatcher := notify.NewDispatcher(mailer, cfg.MailSupportAddress, cfg.MailNoReplyAddress, log)
	evidenceStorage := storage.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL)

	// Вебхуки включаются только при заданном WEBHOOK_URL
	var publisher service.EventPublisher
	if cfg.WebhookURL != "" {
		publisher = webhook.NewRedisWebhookPublisher(redisClient)
		webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	} else {
		log.Info("WEBHOOK_URL not set, state change feed disabled")
	}

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
	directoryRepo := repository.NewDirectoryRepository(dbpool)

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, directoryRepo, policy, dispatcher, evidenceStorage, publisher, log, cfg)
	directoryService := service.NewDirectoryService(directoryRepo, log)

	// Инициализация хэндлеров
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	handler := v1.NewHandler(incidentService, directoryService, tokens, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.MaxMultipartMemory = cfg.EvidenceMaxBytes
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
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

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

	log.Info("Server gracefully stopped")
}
