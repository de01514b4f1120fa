package main

import (
	"database/sql"
	"flag"
	"log"

	"krayaa-backend/internal/config"
	"krayaa-backend/internal/jobs"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository/postgres"
	"krayaa-backend/internal/service"

	_ "github.com/lib/pq"
)

// Runs reminder jobs once and exits. Meant for external cron or manual
// operation when the in-process scheduler is disabled.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	jobName := flag.String("job", "all", "Job to run: all, remind-acceptance, remind-confirmation")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting cron job runner", "job", *jobName)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	runner := jobs.NewJobRunner(db, store, &jobs.Services{Notification: noteSvc}, cfg)

	switch *jobName {
	case "all":
		runner.RunAllReminderJobs()
	case "remind-acceptance":
		runner.RemindPendingAcceptance()
	case "remind-confirmation":
		runner.RemindPendingConfirmation()
	default:
		log.Fatalf("Unknown job: %s", *jobName)
	}

	logger.Info("Cron job runner finished", "job", *jobName)
}
