package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"olw_backend/internal/api"
	"olw_backend/internal/app/service"
	"olw_backend/internal/common/security"
	"olw_backend/internal/domain/repository"
	"olw_backend/internal/platform/config"
	"olw_backend/internal/platform/database"
	"olw_backend/internal/platform/logger"
)

func main() {
	// 1. Load Configuration
	config.Load()

	// 2. Initialize Logger
	zlog, err := logger.New(config.AppConfig.AppEnv)
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer zlog.Sync()

	// 3. Initialize JWT
	security.InitJWT()

	// 4. Initialize Database
	database.Connect()
	defer database.Close()
	zlog.Infow("database connected", "name", config.AppConfig.DBName)

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	catalogRepo := repository.NewPgCatalogRepository(database.DB)
	progressRepo := repository.NewPgProgressRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(catalogRepo, progressRepo)
	progressService := service.NewProgressService(progressRepo, catalogRepo, submissionRepo)
	submissionService := service.NewSubmissionService(submissionRepo, catalogRepo)
	adminService := service.NewAdminService(catalogRepo, userRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(zlog, authService, catalogService, progressService, submissionService, adminService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		zlog.Infow("server starting", "port", config.AppConfig.APIPort, "env", config.AppConfig.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatalw("could not listen", "port", config.AppConfig.APIPort, "error", err)
		}
	}()

	<-stop // Wait for interrupt signal

	zlog.Infow("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Fatalw("server shutdown failed", "error", err)
	}

	zlog.Infow("server stopped gracefully")
}
