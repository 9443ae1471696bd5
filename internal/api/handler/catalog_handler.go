package handler

import (
	"net/http"

	"olw_backend/internal/api/middleware"
	"olw_backend/internal/app/service"
	"olw_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	authMW         *middleware.AuthMiddleware
}

func NewCatalogHandler(catalogService *service.CatalogService, authMW *middleware.AuthMiddleware) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, authMW: authMW}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	// Public, but a valid token enriches the detail view with progress.
	r.Use(h.authMW.OptionalAuthenticator)
	r.Get("/", h.listStacks)
	r.Get("/{slug}", h.getStack)
}

func (h *CatalogHandler) listStacks(w http.ResponseWriter, r *http.Request) {
	stacks, err := h.catalogService.ListStacks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", stacks)
}

func (h *CatalogHandler) getStack(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var viewerID int64
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		viewerID = user.ID
	}

	stack, err := h.catalogService.GetStack(r.Context(), slug, viewerID)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", stack)
}
