package handler

import (
	"net/http"

	"olw_backend/internal/api/middleware"
	"olw_backend/internal/app/service"
	"olw_backend/internal/common"

	"github.com/go-chi/chi/v5"
)

// StudentHandler serves the authenticated student surface: dashboard,
// progress toggling and challenge submissions.
type StudentHandler struct {
	progressService   *service.ProgressService
	submissionService *service.SubmissionService
	authMW            *middleware.AuthMiddleware
}

func NewStudentHandler(
	progressService *service.ProgressService,
	submissionService *service.SubmissionService,
	authMW *middleware.AuthMiddleware,
) *StudentHandler {
	return &StudentHandler{
		progressService:   progressService,
		submissionService: submissionService,
		authMW:            authMW,
	}
}

func (h *StudentHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.authMW.Authenticator)
	r.Get("/dashboard", h.dashboard)
	r.Post("/progress", h.toggleProgress)
	r.Post("/submissions", h.submitChallenge)
	r.Get("/submissions", h.mySubmissions)
}

func (h *StudentHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	dashboard, err := h.progressService.Dashboard(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", dashboard)
}

func (h *StudentHandler) toggleProgress(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req service.ToggleProgressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	progress, err := h.progressService.Toggle(r.Context(), user.ID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	message := "Video marked as uncompleted"
	if progress.IsCompleted {
		message = "Video marked as completed"
	}
	common.RespondWithJSON(w, http.StatusOK, message, progress)
}

func (h *StudentHandler) submitChallenge(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req service.SubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	submission, err := h.submissionService.Submit(r.Context(), user.ID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, "Challenge submitted successfully", submission)
}

func (h *StudentHandler) mySubmissions(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	submissions, err := h.submissionService.ListForUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", submissions)
}
