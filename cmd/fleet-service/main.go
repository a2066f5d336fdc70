package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/auth"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/client"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/config"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/db"
	httphandler "github.com/sabbajohn/ERP---geradores-sub000/internal/http"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/http/middleware"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/logger"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	assignmentRepo := repository.NewAssignmentRepository(database)
	reportRepo := repository.NewReportRepository(database)
	customerRepo := repository.NewCustomerRepository(database)
	generatorRepo := repository.NewGeneratorRepository(database)
	technicianRepo := repository.NewTechnicianRepository(database)
	checklistRepo := repository.NewChecklistRepository(database)

	fileClient := client.NewFileClient(cfg)

	assignmentService := service.NewAssignmentService(assignmentRepo, reportRepo, technicianRepo, generatorRepo)
	reportService := service.NewReportService(reportRepo, assignmentRepo, generatorRepo, fileClient)
	customerService := service.NewCustomerService(customerRepo)
	generatorService := service.NewGeneratorService(generatorRepo)
	technicianService := service.NewTechnicianService(technicianRepo)
	checklistService := service.NewChecklistService(checklistRepo, generatorRepo, customerRepo)
	reminderService := service.NewReminderService(assignmentRepo, appLogger)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Reminder.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		reminderService.Sweep(ctx, time.Now())
	}); err != nil {
		appLogger.Fatal().Err(err).Str("schedule", cfg.Reminder.Schedule).Msg("invalid reminder schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(
		assignmentService,
		reportService,
		customerService,
		generatorService,
		technicianService,
		checklistService,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
