package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talenthub-backend/config"
	_ "talenthub-backend/docs" // Important for Swagger
	v1 "talenthub-backend/internal/delivery/http/v1"
	"talenthub-backend/internal/live"
	"talenthub-backend/internal/repository/postgres"
	"talenthub-backend/internal/usecase"
	"talenthub-backend/pkg/auth"
	"talenthub-backend/pkg/database"
	"talenthub-backend/pkg/logger"
	"talenthub-backend/pkg/redis"
	"talenthub-backend/pkg/storage"
	"talenthub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           TalentHub API
// @version         1.0
// @description     Recruiting platform backend: jobs, applications and live admin views.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting TalentHub backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting and the change hub degrade
	// to in-process fallbacks without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-process fallbacks", "error", err)
	}
	defer redis.Close()

	// 5. Setup Change Hub
	hub := live.NewHub(redis.Client())
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	if redis.IsAvailable() {
		go hub.Listen(hubCtx)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	activityRepo := postgres.NewActivityRepository(dbPool)

	// 7. Setup Import Archive (optional)
	archive, err := storage.NewArchive(context.Background(), storage.ArchiveConfig{
		AccessKeyID:     cfg.ArchiveAccessKeyID,
		SecretAccessKey: cfg.ArchiveSecretAccessKey,
		Region:          cfg.ArchiveRegion,
		Bucket:          cfg.ArchiveBucket,
		Endpoint:        cfg.ArchiveEndpoint,
	})
	if err != nil {
		logger.Log.Warn("Import archive unavailable", "error", err)
	}
	if archive == nil {
		logger.Log.Info("Import archiving disabled")
	}

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	authUC := usecase.NewAuthUsecase(userRepo, activityRepo, hub, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, applicationRepo, activityRepo, hub)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, activityRepo, hub)
	adminUC := usecase.NewAdminUsecase(userRepo, jobRepo, applicationRepo, activityRepo, hub)
	importUC := usecase.NewImportUsecase(jobRepo, hub, archive)
	exportUC := usecase.NewExportUsecase(applicationRepo, jobRepo)

	// 9. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.AuthJWKSURL)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		AdminUC:       adminUC,
		ImportUC:      importUC,
		ExportUC:      exportUC,
		Hub:           hub,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
