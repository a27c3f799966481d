package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/savrasov/soar_incident_api/internal/config"
	v1 "github.com/savrasov/soar_incident_api/internal/handler/http/v1"
	"github.com/savrasov/soar_incident_api/internal/repository"
	"github.com/savrasov/soar_incident_api/internal/service"
	"github.com/savrasov/soar_incident_api/internal/webhook"
	"github.com/savrasov/soar_incident_api/pkg/logger"
	"github.com/sirupsen/logrus"

	_ "github.com/savrasov/soar_incident_api/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title SOAR Incident Mock API Simulator
// @version 2.0
// @description Security automation demo API for incident management.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	// Очередь событий и воркер доставки вебхуков
	webhookQueue := webhook.NewQueue(cfg.WebhookQueueSize)
	webhookWorker := webhook.NewWebhookWorker(webhookQueue, log, cfg)
	webhookWorker.Start(ctx)

	// Инициализация in-memory хранилища с демонстрационными данными
	incidentRepo := repository.NewIncidentRepository()
	log.Info("In-memory incident store seeded with demo data")

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, log, webhookQueue)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/")
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
