package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-records/api/swagger"
	"github.com/noah-isme/school-records/internal/catalog"
	"github.com/noah-isme/school-records/internal/handler"
	internalmiddleware "github.com/noah-isme/school-records/internal/middleware"
	"github.com/noah-isme/school-records/internal/models"
	"github.com/noah-isme/school-records/internal/repository"
	"github.com/noah-isme/school-records/internal/service"
	"github.com/noah-isme/school-records/pkg/cache"
	"github.com/noah-isme/school-records/pkg/config"
	"github.com/noah-isme/school-records/pkg/jobs"
	"github.com/noah-isme/school-records/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-records/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-records/pkg/middleware/requestid"
	"github.com/noah-isme/school-records/pkg/storage"
)

// @title School Records API
// @version 1.0.0
// @description Students, courses, enrollments and letter grades held in memory
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var redisClient redis.UniversalClient
	if cfg.Reports.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("report cache disabled, redis unavailable", zap.Error(err))
		} else {
			redisClient = client
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Reports.CacheTTL, logr, redisClient != nil)

	schoolSvc := service.NewSchoolService(service.SchoolServiceParams{
		Validator: validate,
		Logger:    logr,
		Metrics:   metricsSvc,
		Cache:     cacheSvc,
	})
	if cfg.Catalog.File != "" {
		courses, err := catalog.Load(cfg.Catalog.File)
		if err != nil {
			logr.Fatal("failed to load course catalog", zap.String("file", cfg.Catalog.File), zap.Error(err))
		}
		added := schoolSvc.SeedCourses(ctx, courses)
		logr.Info("course catalog loaded", zap.String("file", cfg.Catalog.File), zap.Int("courses", added))
	}

	reportSvc := service.NewReportService(schoolSvc, cacheSvc, cfg.Reports.CacheTTL, logr)
	exportStore, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	exportSvc := service.NewExportService(reportSvc, exportStore,
		storage.NewSigner(cfg.Exports.SigningSecret, cfg.Exports.URLTTL),
		service.ExportConfig{APIPrefix: cfg.APIPrefix, ResultTTL: cfg.Exports.ResultTTL}, logr)
	exportJobs := repository.NewExportJobRepository()
	exportWorker := service.NewExportWorker(exportJobs, exportSvc, cfg.Exports.MaxRetries, logr)
	exportQueue := jobs.NewQueue("exports", exportWorker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.Workers,
		MaxRetries: cfg.Exports.MaxRetries,
		Logger:     logr,
	})
	exportQueue.Start(ctx)
	defer exportQueue.Stop()
	exportJobSvc := service.NewExportJobService(exportJobs, exportQueue, exportSvc, validate, logr, service.ExportJobConfig{
		ResultTTL:       cfg.Exports.ResultTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	exportJobSvc.StartCleanup(ctx)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.Auth.Secret,
		AccessTokenExpiry: cfg.Auth.Expiration,
		Issuer:            cfg.Auth.Issuer,
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
	})

	var guard []gin.HandlerFunc
	if cfg.Auth.Enabled {
		guard = append(guard, internalmiddleware.JWT(authSvc), internalmiddleware.RequireRoles(models.RoleAdmin))
	} else {
		logr.Warn("authentication disabled, mutating routes are open")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc.Handler(), schoolSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Routes{
		Auth:        handler.NewAuthHandler(authSvc),
		Students:    handler.NewStudentHandler(schoolSvc),
		Courses:     handler.NewCourseHandler(schoolSvc),
		Enrollments: handler.NewEnrollmentHandler(schoolSvc),
		Reports:     handler.NewReportHandler(reportSvc),
		Exports:     handler.NewExportHandler(exportJobSvc),
		Guard:       guard,
		AuditLogger: logr.Named("audit"),
	}.Register(r.Group(cfg.APIPrefix))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
