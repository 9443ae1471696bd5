package service

import (
	"context"
	"errors"
	"time"

	"olw_backend/internal/common"
	"olw_backend/internal/domain/model"
	"olw_backend/internal/domain/repository"
)

type ProgressService struct {
	progressRepo   repository.ProgressRepository
	catalogRepo    repository.CatalogRepository
	submissionRepo repository.SubmissionRepository
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	catalogRepo repository.CatalogRepository,
	submissionRepo repository.SubmissionRepository,
) *ProgressService {
	return &ProgressService{
		progressRepo:   progressRepo,
		catalogRepo:    catalogRepo,
		submissionRepo: submissionRepo,
	}
}

type ToggleProgressRequest struct {
	VideoID     int64 `json:"videoId" validate:"required"`
	IsCompleted *bool `json:"isCompleted"` // defaults to true
}

// Toggle upserts the viewer's completion mark on one video. Repeated
// identical calls leave the stored row unchanged apart from updated_at.
func (s *ProgressService) Toggle(ctx context.Context, userID int64, req ToggleProgressRequest) (*model.Progress, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.catalogRepo.FindVideoByID(ctx, req.VideoID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Video not found")
		}
		return nil, err
	}

	isCompleted := true
	if req.IsCompleted != nil {
		isCompleted = *req.IsCompleted
	}
	var completedAt *time.Time
	if isCompleted {
		now := time.Now()
		completedAt = &now
	}
	return s.progressRepo.Upsert(ctx, userID, req.VideoID, isCompleted, completedAt)
}

// Dashboard aggregates per-stack and overall completion for one user,
// together with their submissions (newest first).
func (s *ProgressService) Dashboard(ctx context.Context, userID int64) (*model.Dashboard, error) {
	stacks, err := s.progressRepo.StackProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &model.Dashboard{Stacks: stacks}
	for i := range dashboard.Stacks {
		sp := &dashboard.Stacks[i]
		sp.ProgressPercent = percent(sp.CompletedVideos, sp.TotalVideos)
		dashboard.Overview.TotalVideos += sp.TotalVideos
		dashboard.Overview.TotalCompleted += sp.CompletedVideos
	}
	dashboard.Overview.OverallProgress = percent(dashboard.Overview.TotalCompleted, dashboard.Overview.TotalVideos)

	dashboard.CompletedVideoIDs, err = s.progressRepo.CompletedVideoIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	dashboard.Submissions, err = s.submissionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}
