package service

import (
	"context"
	"errors"

	"olw_backend/internal/common"
	"olw_backend/internal/domain/model"
	"olw_backend/internal/domain/repository"

	"github.com/gosimple/slug"
)

// AdminService owns catalog management and user administration.
type AdminService struct {
	catalogRepo repository.CatalogRepository
	userRepo    repository.UserRepository
}

func NewAdminService(catalogRepo repository.CatalogRepository, userRepo repository.UserRepository) *AdminService {
	return &AdminService{catalogRepo: catalogRepo, userRepo: userRepo}
}

// Stacks

type CreateStackRequest struct {
	Slug        string `json:"slug"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	SortOrder   int    `json:"sortOrder"`
}

func (s *AdminService) CreateStack(ctx context.Context, req CreateStackRequest) (*model.Stack, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	// Normalize the slug; derive one from the title when none was given.
	stackSlug := req.Slug
	if stackSlug == "" {
		stackSlug = req.Title
	}
	stack := &model.Stack{
		Slug:        slug.Make(stackSlug),
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		SortOrder:   req.SortOrder,
	}
	if err := s.catalogRepo.CreateStack(ctx, stack); err != nil {
		return nil, err
	}
	return stack, nil
}

type UpdateStackRequest struct {
	Slug        *string `json:"slug,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
}

func (s *AdminService) UpdateStack(ctx context.Context, id int64, req UpdateStackRequest) (*model.Stack, error) {
	stack, err := s.catalogRepo.FindStackByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Stack not found")
		}
		return nil, err
	}

	if req.Slug != nil {
		stack.Slug = slug.Make(*req.Slug)
	}
	if req.Title != nil {
		stack.Title = *req.Title
	}
	if req.Description != nil {
		stack.Description = *req.Description
	}
	if req.Thumbnail != nil {
		stack.Thumbnail = *req.Thumbnail
	}
	if req.SortOrder != nil {
		stack.SortOrder = *req.SortOrder
	}

	// Slug uniqueness is only re-checked by the store when the value
	// actually changed; writing back the same slug never conflicts.
	if err := s.catalogRepo.UpdateStack(ctx, stack); err != nil {
		return nil, err
	}
	return stack, nil
}

func (s *AdminService) DeleteStack(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteStack(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.E(common.ErrNotFound, "Stack not found")
		}
		return err
	}
	return nil
}

// Topics

type CreateTopicRequest struct {
	Title     string `json:"title" validate:"required"`
	StackID   int64  `json:"stackId" validate:"required"`
	SortOrder int    `json:"sortOrder"`
}

func (s *AdminService) CreateTopic(ctx context.Context, req CreateTopicRequest) (*model.Topic, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.catalogRepo.FindStackByID(ctx, req.StackID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Stack not found")
		}
		return nil, err
	}

	topic := &model.Topic{StackID: req.StackID, Title: req.Title, SortOrder: req.SortOrder}
	if err := s.catalogRepo.CreateTopic(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

type UpdateTopicRequest struct {
	Title     *string `json:"title,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

func (s *AdminService) UpdateTopic(ctx context.Context, id int64, req UpdateTopicRequest) (*model.Topic, error) {
	topic, err := s.catalogRepo.FindTopicByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Topic not found")
		}
		return nil, err
	}

	if req.Title != nil {
		topic.Title = *req.Title
	}
	if req.SortOrder != nil {
		topic.SortOrder = *req.SortOrder
	}
	if err := s.catalogRepo.UpdateTopic(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *AdminService) DeleteTopic(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteTopic(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.E(common.ErrNotFound, "Topic not found")
		}
		return err
	}
	return nil
}

func (s *AdminService) ListTopics(ctx context.Context) ([]model.AdminTopic, error) {
	return s.catalogRepo.ListAllTopics(ctx)
}

// Videos

type CreateVideoRequest struct {
	Title     string `json:"title" validate:"required"`
	YoutubeID string `json:"youtubeId" validate:"required"`
	TopicID   int64  `json:"topicId" validate:"required"`
	Duration  int    `json:"duration"`
	SortOrder int    `json:"sortOrder"`
}

func (s *AdminService) CreateVideo(ctx context.Context, req CreateVideoRequest) (*model.Video, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.catalogRepo.FindTopicByID(ctx, req.TopicID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Topic not found")
		}
		return nil, err
	}

	video := &model.Video{
		TopicID:   req.TopicID,
		Title:     req.Title,
		YoutubeID: req.YoutubeID,
		Duration:  req.Duration,
		SortOrder: req.SortOrder,
	}
	if err := s.catalogRepo.CreateVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

type UpdateVideoRequest struct {
	Title     *string `json:"title,omitempty"`
	YoutubeID *string `json:"youtubeId,omitempty"`
	Duration  *int    `json:"duration,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

func (s *AdminService) UpdateVideo(ctx context.Context, id int64, req UpdateVideoRequest) (*model.Video, error) {
	video, err := s.catalogRepo.FindVideoByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Video not found")
		}
		return nil, err
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.YoutubeID != nil {
		video.YoutubeID = *req.YoutubeID
	}
	if req.Duration != nil {
		video.Duration = *req.Duration
	}
	if req.SortOrder != nil {
		video.SortOrder = *req.SortOrder
	}
	if err := s.catalogRepo.UpdateVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *AdminService) DeleteVideo(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteVideo(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.E(common.ErrNotFound, "Video not found")
		}
		return err
	}
	return nil
}

func (s *AdminService) ListVideos(ctx context.Context) ([]model.AdminVideo, error) {
	return s.catalogRepo.ListAllVideos(ctx)
}

// Users

func (s *AdminService) ListUsers(ctx context.Context) ([]model.AdminUser, error) {
	return s.userRepo.ListWithCounts(ctx)
}

func (s *AdminService) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return common.E(common.ErrBadRequest, "You cannot delete your own account")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.E(common.ErrNotFound, "User not found")
		}
		return err
	}
	return nil
}
