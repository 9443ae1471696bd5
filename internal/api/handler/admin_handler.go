package handler

import (
	"fmt"
	"net/http"

	"olw_backend/internal/api/middleware"
	"olw_backend/internal/app/service"
	"olw_backend/internal/common"
	"olw_backend/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// AdminHandler serves catalog management, grading and user administration.
// Every route requires an authenticated ADMIN.
type AdminHandler struct {
	adminService      *service.AdminService
	submissionService *service.SubmissionService
	authMW            *middleware.AuthMiddleware
}

func NewAdminHandler(
	adminService *service.AdminService,
	submissionService *service.SubmissionService,
	authMW *middleware.AuthMiddleware,
) *AdminHandler {
	return &AdminHandler{
		adminService:      adminService,
		submissionService: submissionService,
		authMW:            authMW,
	}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.authMW.Authenticator)
	r.Use(middleware.AdminOnly)

	r.Post("/stacks", h.createStack)
	r.Put("/stacks/{id}", h.updateStack)
	r.Delete("/stacks/{id}", h.deleteStack)

	r.Get("/topics", h.listTopics)
	r.Post("/topics", h.createTopic)
	r.Put("/topics/{id}", h.updateTopic)
	r.Delete("/topics/{id}", h.deleteTopic)

	r.Get("/videos", h.listVideos)
	r.Post("/videos", h.createVideo)
	r.Put("/videos/{id}", h.updateVideo)
	r.Delete("/videos/{id}", h.deleteVideo)

	r.Get("/submissions", h.listSubmissions)
	r.Put("/submissions/{id}", h.gradeSubmission)

	r.Get("/users", h.listUsers)
	r.Delete("/users/{id}", h.deleteUser)
}

// Stacks

func (h *AdminHandler) createStack(w http.ResponseWriter, r *http.Request) {
	var req service.CreateStackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	stack, err := h.adminService.CreateStack(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, "Stack created successfully", stack)
}

func (h *AdminHandler) updateStack(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.UpdateStackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	stack, err := h.adminService.UpdateStack(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Stack updated successfully", stack)
}

func (h *AdminHandler) deleteStack(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.adminService.DeleteStack(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Stack deleted successfully", nil)
}

// Topics

func (h *AdminHandler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.adminService.ListTopics(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", topics)
}

func (h *AdminHandler) createTopic(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTopicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	topic, err := h.adminService.CreateTopic(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, "Topic created successfully", topic)
}

func (h *AdminHandler) updateTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.UpdateTopicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	topic, err := h.adminService.UpdateTopic(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Topic updated successfully", topic)
}

func (h *AdminHandler) deleteTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.adminService.DeleteTopic(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Topic deleted successfully", nil)
}

// Videos

func (h *AdminHandler) listVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.adminService.ListVideos(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", videos)
}

func (h *AdminHandler) createVideo(w http.ResponseWriter, r *http.Request) {
	var req service.CreateVideoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	video, err := h.adminService.CreateVideo(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, "Video created successfully", video)
}

func (h *AdminHandler) updateVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.UpdateVideoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	video, err := h.adminService.UpdateVideo(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Video updated successfully", video)
}

func (h *AdminHandler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.adminService.DeleteVideo(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Video deleted successfully", nil)
}

// Submissions

func (h *AdminHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	status := model.SubmissionStatus(r.URL.Query().Get("status"))

	submissions, err := h.submissionService.ListAll(r.Context(), status)
	if err != nil {
		respondError(w, err)
		return
	}
	counts, err := h.submissionService.Counts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", map[string]interface{}{
		"submissions": submissions,
		"counts":      counts,
	})
}

func (h *AdminHandler) gradeSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.GradeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	submission, err := h.submissionService.Grade(r.Context(), id, req)
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, fmt.Sprintf("Submission marked as %s", submission.Status), submission)
}

// Users

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "Success", users)
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.adminService.DeleteUser(r.Context(), actor.ID, id); err != nil {
		respondError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, "User deleted successfully", nil)
}
