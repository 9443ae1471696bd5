package service

import (
	"context"
	"errors"

	"olw_backend/internal/common"
	"olw_backend/internal/domain/model"
	"olw_backend/internal/domain/repository"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	catalogRepo    repository.CatalogRepository
}

func NewSubmissionService(submissionRepo repository.SubmissionRepository, catalogRepo repository.CatalogRepository) *SubmissionService {
	return &SubmissionService{submissionRepo: submissionRepo, catalogRepo: catalogRepo}
}

type SubmitRequest struct {
	StackID  int64  `json:"stackId" validate:"required"`
	RepoLink string `json:"repoLink" validate:"required,url"`
}

// Submit creates the challenge submission for (user, stack), or resubmits:
// the existing row gets the new link, status PENDING and cleared feedback.
func (s *SubmissionService) Submit(ctx context.Context, userID int64, req SubmitRequest) (*model.Submission, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.catalogRepo.FindStackByID(ctx, req.StackID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Stack not found")
		}
		return nil, err
	}

	return s.submissionRepo.Upsert(ctx, userID, req.StackID, req.RepoLink)
}

func (s *SubmissionService) ListForUser(ctx context.Context, userID int64) ([]model.Submission, error) {
	return s.submissionRepo.ListByUser(ctx, userID)
}

func (s *SubmissionService) ListAll(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error) {
	return s.submissionRepo.ListAll(ctx, status)
}

func (s *SubmissionService) Counts(ctx context.Context) (*model.SubmissionCounts, error) {
	return s.submissionRepo.Counts(ctx)
}

type GradeRequest struct {
	Status   string  `json:"status"`
	Feedback *string `json:"feedback"`
}

// Grade moves a submission to PASS or FAIL, leaving the repo link untouched.
func (s *SubmissionService) Grade(ctx context.Context, id int64, req GradeRequest) (*model.Submission, error) {
	status := model.SubmissionStatus(req.Status)
	if status != model.SubmissionPass && status != model.SubmissionFail {
		return nil, common.E(common.ErrBadRequest, "status must be 'PASS' or 'FAIL'")
	}

	sub, err := s.submissionRepo.Grade(ctx, id, status, req.Feedback)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.E(common.ErrNotFound, "Submission not found")
		}
		return nil, err
	}
	return sub, nil
}
