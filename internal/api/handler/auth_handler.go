package handler

import (
	"net/http"

	"olw_backend/internal/api/middleware"
	"olw_backend/internal/app/service"
	"olw_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	authMW      *middleware.AuthMiddleware
}

func NewAuthHandler(authService *service.AuthService, authMW *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{authService: authService, authMW: authMW}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(private chi.Router) {
		private.Use(h.authMW.Authenticator)
		private.Get("/me", h.me)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, "User registered successfully", resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	profile, err := h.authService.Profile(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", map[string]interface{}{"user": profile})
}
