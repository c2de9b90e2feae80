package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/campus-complaint-portal/internal/handler"
	"github.com/noah-isme/campus-complaint-portal/internal/middleware"
	"github.com/noah-isme/campus-complaint-portal/internal/repository"
	"github.com/noah-isme/campus-complaint-portal/internal/service"
	"github.com/noah-isme/campus-complaint-portal/pkg/cache"
	"github.com/noah-isme/campus-complaint-portal/pkg/config"
	"github.com/noah-isme/campus-complaint-portal/pkg/database"
	"github.com/noah-isme/campus-complaint-portal/pkg/logger"
	"github.com/noah-isme/campus-complaint-portal/pkg/middleware/requestid"
	"github.com/noah-isme/campus-complaint-portal/pkg/middleware/secureheaders"
)

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		SessionSecret: cfg.Session.Secret,
		SessionExpiry: cfg.Session.Expiration,
		Issuer:        "campus-complaint-portal",
	})
	complaintSvc := service.NewComplaintService(complaintRepo, validate, metricsSvc, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.StatsCacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)
	dashboardSvc := service.NewDashboardService(complaintSvc, cacheSvc, cfg.Dashboard.StatsCacheTTL, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(secureheaders.New(cfg.Session.Secure))
	r.Use(middleware.Metrics(metricsSvc))

	r.LoadHTMLGlob(cfg.Templates.Glob)

	handler.Register(r, handler.Routes{
		Auth:      handler.NewAuthHandler(authSvc, cfg.Session),
		Complaint: handler.NewComplaintHandler(complaintSvc, dashboardSvc),
		Dashboard: handler.NewDashboardHandler(complaintSvc, dashboardSvc),
	}, authSvc, metricsSvc, cfg.Session)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
