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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spop-ops/commander/api/audit"
	"github.com/spop-ops/commander/api/config"
	"github.com/spop-ops/commander/api/controller"
	"github.com/spop-ops/commander/api/dao"
	"github.com/spop-ops/commander/api/db"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/realtime"
	"github.com/spop-ops/commander/api/router"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize MySQL
	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize MySQL", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize utilities
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService()
	notifier := util.NewChangeNotifier(dao.NewActivityDAO(db.DB), cacheService, eventBus)
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize services
	services, err := service.InitializeServices(db.DB, auditService, validationUtil, cacheService, notifier)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Initialize controllers
	controllers := controller.InitializeControllers(services)

	// Wire the real-time hub into the event bus
	hub := realtime.NewHub()
	hub.BindEventBus(eventBus)
	realtimeSource := service.NewRealtimeSource(services)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, hub, realtimeSource, 100, time.Minute) // 100 requests per minute

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
