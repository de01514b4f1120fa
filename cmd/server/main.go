package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "krayaa-backend/internal/api/http"
	"krayaa-backend/internal/config"
	"krayaa-backend/internal/jobs"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository/postgres"
	"krayaa-backend/internal/scheduler"
	"krayaa-backend/internal/security"
	"krayaa-backend/internal/service"
	"krayaa-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Krayaa backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Auth configuration", "mode", cfg.Auth.Mode, "allowed_domain", cfg.Auth.AllowedEmailDomain)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize token verification
	var verifier security.TokenVerifier
	switch cfg.Auth.Mode {
	case "firebase":
		fv, err := security.NewFirebaseVerifier(context.Background(), cfg.Auth.FirebaseCredentials)
		if err != nil {
			logger.Error("Failed to initialize Firebase verifier", "error", err)
			log.Fatalf("Failed to initialize Firebase verifier: %v", err)
		}
		verifier = fv
	case "local":
		logger.Warn("Using local token verification, not for production")
		verifier = security.NewLocalVerifier(cfg.Auth.JWTSecret)
	default:
		log.Fatalf("Unsupported auth mode '%s'", cfg.Auth.Mode)
	}

	// Initialize Storage Service
	var storageService storage.StorageInterface
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err := storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	userSvc := service.NewUserService(store.UserRepository)
	listingSvc := service.NewListingService(store.ListingRepository, storageService)
	reputationSvc := service.NewReputationService(store.ReputationRepository, store.UserRepository, noteSvc)
	handshakeSvc := service.NewHandshakeService(
		store.TransactionRepository,
		store.ListingRepository,
		store.UserRepository,
		noteSvc,
		emailSvc,
		storageService,
	)

	// Initialize HTTP handlers
	authMw := httpapi.NewAuthMiddleware(verifier, userSvc, cfg.Auth.AllowedEmailDomain)
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:          authMw,
		Handshakes:    httpapi.NewHandshakeHandler(handshakeSvc, cfg.Storage.MaxFileSizeMB),
		Listings:      httpapi.NewListingHandler(listingSvc, cfg.Storage.MaxFileSizeMB),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
		Reputation:    httpapi.NewReputationHandler(reputationSvc),
		Users:         httpapi.NewUserHandler(userSvc),
		Files:         httpapi.NewFilesHandler(storageService),
	})

	// Start the reminder scheduler in-process
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Notification: noteSvc}, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
