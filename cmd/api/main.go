package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "taxengine/api/swagger" // swagger docs
	"taxengine/internal/cache"
	"taxengine/internal/config"
	"taxengine/internal/database"
	"taxengine/internal/handler"
	"taxengine/internal/logger"
	"taxengine/internal/metrics"
	"taxengine/internal/middleware"
	"taxengine/internal/repository"
	"taxengine/internal/service"
	"taxengine/internal/websocket"
)

// @title           Tax Engine API
// @version         1.0
// @description     Tax profiles and tax calculation for the staffing platform.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewConnection(cfg.Database.DSN(), log)
	if err != nil {
		log.Fatalw("database connection failed", "error", err)
	}
	log.Infow("connected to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run(ctx)

	// Set up dependencies (Repository -> Service -> Handler)
	profileRepo := repository.NewTaxProfileRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)
	profileCache := cache.Initialize(cfg, log)

	profileService := service.NewTaxProfileService(profileRepo, auditRepo, txManager, profileCache, wsHub, cfg, log)
	calculationService := service.NewTaxCalculationService(profileService, log)
	auditService := service.NewAuditService(auditRepo)

	profileHandler := handler.NewTaxProfileHandler(profileService)
	calculationHandler := handler.NewTaxCalculationHandler(calculationService)
	auditHandler := handler.NewAuditHandler(auditService)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = log.GetGinLogger()
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.LoggingMiddleware(log))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	secret := []byte(cfg.Auth.JWTSecret)
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret, middleware.RoleAdmin, middleware.RoleManager, middleware.RoleStaff)
	})

	profileHandler.RegisterRoutes(router.Group(""), secret)
	calculationHandler.RegisterRoutes(router.Group(""), secret)
	auditHandler.RegisterRoutes(router.Group(""), secret)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}
