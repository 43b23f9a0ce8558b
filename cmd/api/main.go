package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/gymadmin/gym-api/api/swagger"
	"github.com/gymadmin/gym-api/internal/handler"
	"github.com/gymadmin/gym-api/internal/middleware"
	"github.com/gymadmin/gym-api/internal/repository"
	"github.com/gymadmin/gym-api/internal/service"
	"github.com/gymadmin/gym-api/pkg/cache"
	"github.com/gymadmin/gym-api/pkg/config"
	"github.com/gymadmin/gym-api/pkg/database"
	"github.com/gymadmin/gym-api/pkg/logger"
	corsmiddleware "github.com/gymadmin/gym-api/pkg/middleware/cors"
	reqidmiddleware "github.com/gymadmin/gym-api/pkg/middleware/requestid"
)

// @title Gym Admin API
// @version 1.0.0
// @description Gym membership, class and attendance management service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheStore service.CacheStore
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, lookup cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheStore = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheStore, metricsSvc, cfg.Cache.LookupTTL, logr, cacheStore != nil)

	validate := validator.New()

	membershipRepo := repository.NewMembershipRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	classRepo := repository.NewClassRepository(db)
	clientRepo := repository.NewClientRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	membershipSvc := service.NewMembershipService(membershipRepo, clientRepo, cacheSvc, validate, logr)
	trainerSvc := service.NewTrainerService(trainerRepo, classRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, trainerRepo, clientRepo, validate, logr)
	clientSvc := service.NewClientService(clientRepo, membershipRepo, classRepo, cacheSvc, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, clientRepo, membershipRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(clientRepo, logr)

	membershipHandler := handler.NewMembershipHandler(membershipSvc)
	trainerHandler := handler.NewTrainerHandler(trainerSvc)
	classHandler := handler.NewClassHandler(classSvc)
	clientHandler := handler.NewClientHandler(clientSvc, exportSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/memberships", membershipHandler.List)
		api.POST("/memberships", membershipHandler.Create)
		api.PUT("/memberships/:id", membershipHandler.Update)
		api.DELETE("/memberships/:id", membershipHandler.Delete)

		api.GET("/trainers", trainerHandler.List)
		api.POST("/trainers", trainerHandler.Create)
		api.PUT("/trainers/:id", trainerHandler.Update)
		api.DELETE("/trainers/:id", trainerHandler.Delete)

		api.GET("/classes", classHandler.List)
		api.POST("/classes", classHandler.Create)
		api.PUT("/classes/:id", classHandler.Update)
		api.DELETE("/classes/:id", classHandler.Delete)

		api.GET("/clients", clientHandler.List)
		api.POST("/clients", clientHandler.Create)
		api.PUT("/clients/:id", clientHandler.Update)
		api.DELETE("/clients/:id", clientHandler.Delete)
		api.GET("/clients/expiration/:dni", clientHandler.Expiration)
		api.GET("/clients/export", clientHandler.Export)

		api.GET("/attendances/search", attendanceHandler.Search)
		api.POST("/attendances", attendanceHandler.Register)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
