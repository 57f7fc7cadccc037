package main

import (
	"awards-backend/controller"
	"awards-backend/dal"
	_ "awards-backend/docs"
	"awards-backend/metrics"
	"awards-backend/models"
	"awards-backend/utils"
	"awards-backend/utils/logger"
	"awards-backend/worker"
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title Awards Nominations API
// @version 1.0
// @description Public nomination intake for the awards program and a read-only reviewer console.
// @description Submit nominations with POST /nominations. Reviewer endpoints need a token from POST /admin/login.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme.
func main() {
	Init()

	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Infof("Starting %s %s (%s)", config.AppName, config.AppVersion, config.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dal.NewDynamoDBClient(ctx, config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	appMetrics := metrics.New(registry)

	infraWorker, err := worker.NewService(config, db, appLogger, appMetrics)
	if err != nil {
		appLogger.Fatalf("Failed to create provisioning worker: %v", err)
	}
	if err := infraWorker.Start(); err != nil {
		appLogger.Fatalf("Failed to start provisioning worker: %v", err)
	}
	defer infraWorker.Stop()

	gin.SetMode(gin.ReleaseMode)
	if config.AppEnv == "development" {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	c := controller.NewController(ctx, config, appLogger, db, appMetrics, registry, infraWorker)
	c.RegisterRoutes(r)

	go cleanupRevokedTokens(ctx, c)

	srv := &http.Server{
		Addr:              net.JoinHostPort(config.AppHost, config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Server shutdown failed: %v", err)
	}
}

func cleanupRevokedTokens(ctx context.Context, c *controller.Controller) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.JWTManager().CleanupExpiredTokens()
		}
	}
}
