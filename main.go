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

	"tennis-stats-api/config"
	_ "tennis-stats-api/docs" // Swagger docs
	"tennis-stats-api/packages/auth"
	authServices "tennis-stats-api/packages/auth/services"
	"tennis-stats-api/packages/core"
	"tennis-stats-api/pkg/cache"
	"tennis-stats-api/pkg/logger"
	"tennis-stats-api/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Tennis Stats API
// @version         1.0
// @description     Team based tennis statistics: players, matches, sets, per-set statistics, analytics and live input.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	db := config.MustConnectDatabase(cfg, log)

	queryCache, closeCache := setupCache(cfg, log)
	defer closeCache()

	metricsManager := metrics.NewManager()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger(log), metricsManager.GinMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Team-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	emails := authServices.NewEmailService(cfg.MailDSN, cfg.MailSender, logger.WithComponent("email"))
	authModule := auth.NewModule(db, cfg.JWTSecret, emails, logger.WithComponent("auth"))
	authModule.SetupRoutes(r)

	coreModule := core.NewModule(db, core.Options{
		Cache:             queryCache,
		CacheTTL:          cfg.CacheTTL(),
		Metrics:           metricsManager,
		MinMatches:        cfg.TopPlayersMinMatches,
		LiveSessionTTL:    cfg.LiveSessionTTL(),
		LiveSweepSchedule: cfg.LiveSweepSchedule,
	}, logger.WithComponent("core"))
	coreModule.SetupRoutes(r, authModule.JWTMiddleware(), authModule.RequireMembership())

	if err := coreModule.StartScheduler(); err != nil {
		log.WithError(err).Fatal("Failed to start scheduler")
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(metricsManager.Handler()))
	r.GET("/health", healthHandler(db))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Waits for implicit saves started by live sessions.
	coreModule.StopScheduler()
	log.Info("Server exited")
}

// setupCache prefers Redis and falls back to process memory when Redis is
// not configured or unreachable at startup.
func setupCache(cfg *config.Config, log *logrus.Logger) (cache.Cache, func()) {
	if cfg.RedisURL == "" {
		log.Info("Redis not configured, using in-memory cache")
		return cache.NewMemoryCache(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, logger.WithComponent("cache"))
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, using in-memory cache")
		return cache.NewMemoryCache(), func() {}
	}
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.WithError(err).Warn("Failed to close redis client")
		}
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Message:  "Server is running",
				Database: "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{
			Message:  "Server is running",
			Database: "connected",
		})
	}
}
