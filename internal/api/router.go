package api

import (
	"fmt"
	"net/http"
	"time"

	"olw_backend/internal/api/handler"
	"olw_backend/internal/api/middleware"
	"olw_backend/internal/app/service"
	"olw_backend/internal/common"
	"olw_backend/internal/common/security"
	"olw_backend/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

func NewRouter(
	log *zap.SugaredLogger,
	authService *service.AuthService,
	catalogService *service.CatalogService,
	progressService *service.ProgressService,
	submissionService *service.SubmissionService,
	adminService *service.AdminService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token when present and puts claims in context;
	// the auth middleware decides whether absence is an error per route.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	authMW := middleware.NewAuthMiddleware(authService)

	// Public health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, "OLW API is running", map[string]interface{}{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": config.AppConfig.AppEnv,
		})
	})

	// Auth routes
	authHandler := handler.NewAuthHandler(authService, authMW)
	r.Route("/auth", authHandler.RegisterRoutes)

	// Catalog routes (public, optionally authenticated)
	catalogHandler := handler.NewCatalogHandler(catalogService, authMW)
	r.Route("/stacks", catalogHandler.RegisterRoutes)

	// Student routes (authenticated, mounted at the root)
	studentHandler := handler.NewStudentHandler(progressService, submissionService, authMW)
	r.Group(studentHandler.RegisterRoutes)

	// Admin routes (authenticated + ADMIN)
	adminHandler := handler.NewAdminHandler(adminService, submissionService, authMW)
	r.Route("/admin", adminHandler.RegisterRoutes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound,
			fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
	})

	return r
}
