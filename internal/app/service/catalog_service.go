package service

import (
	"context"
	"errors"
	"math"

	"olw_backend/internal/common"
	"olw_backend/internal/domain/model"
	"olw_backend/internal/domain/repository"
)

type CatalogService struct {
	catalogRepo  repository.CatalogRepository
	progressRepo repository.ProgressRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository, progressRepo repository.ProgressRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo, progressRepo: progressRepo}
}

func (s *CatalogService) ListStacks(ctx context.Context) ([]model.StackSummary, error) {
	return s.catalogRepo.ListStacks(ctx)
}

// GetStack returns one stack with its ordered topics and videos plus
// computed totals. viewerID > 0 additionally annotates every video with the
// viewer's completion flag and attaches a progress summary.
func (s *CatalogService) GetStack(ctx context.Context, slug string, viewerID int64) (*model.StackDetail, error) {
	stack, err := s.catalogRepo.FindStackBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Stack not found")
		}
		return nil, err
	}

	topics, err := s.catalogRepo.ListTopicsByStack(ctx, stack.ID)
	if err != nil {
		return nil, err
	}
	videos, err := s.catalogRepo.ListVideosByStack(ctx, stack.ID)
	if err != nil {
		return nil, err
	}

	var completed map[int64]bool
	if viewerID > 0 {
		ids, err := s.progressRepo.CompletedVideoIDsByStack(ctx, viewerID, stack.ID)
		if err != nil {
			return nil, err
		}
		completed = make(map[int64]bool, len(ids))
		for _, id := range ids {
			completed[id] = true
		}
	}

	detail := &model.StackDetail{Stack: *stack, Topics: []model.TopicWithVideos{}}
	byTopic := make(map[int64][]model.AnnotatedVideo, len(topics))
	for _, v := range videos {
		av := model.AnnotatedVideo{Video: v}
		if completed != nil {
			done := completed[v.ID]
			av.IsCompleted = &done
		}
		byTopic[v.TopicID] = append(byTopic[v.TopicID], av)
		detail.TotalVideos++
		detail.TotalDuration += v.Duration
	}
	for _, t := range topics {
		tv := model.TopicWithVideos{Topic: t, Videos: byTopic[t.ID]}
		if tv.Videos == nil {
			tv.Videos = []model.AnnotatedVideo{}
		}
		detail.Topics = append(detail.Topics, tv)
	}

	if completed != nil {
		detail.Progress = &model.ProgressSummary{
			Completed: len(completed),
			Total:     detail.TotalVideos,
			Percent:   percent(len(completed), detail.TotalVideos),
		}
	}
	return detail, nil
}

// percent rounds completed/total to a whole percentage; 0 when total is 0.
func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
