package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"olw_backend/internal/common"
	"olw_backend/internal/domain/model"
)

type SubmissionRepository interface {
	// Upsert creates the (user, stack) submission or resets an existing one
	// to PENDING with a fresh link and cleared feedback.
	Upsert(ctx context.Context, userID, stackID int64, repoLink string) (*model.Submission, error)
	FindByID(ctx context.Context, id int64) (*model.Submission, error)
	Grade(ctx context.Context, id int64, status model.SubmissionStatus, feedback *string) (*model.Submission, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Submission, error)
	ListAll(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error)
	Counts(ctx context.Context) (*model.SubmissionCounts, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Upsert(ctx context.Context, userID, stackID int64, repoLink string) (*model.Submission, error) {
	query := `
        INSERT INTO submissions (user_id, stack_id, repo_link, status)
        VALUES ($1, $2, $3, 'PENDING')
        ON CONFLICT (user_id, stack_id) DO UPDATE SET
            repo_link = EXCLUDED.repo_link,
            status = 'PENDING',
            feedback = NULL,
            updated_at = CURRENT_TIMESTAMP
        RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID, stackID, repoLink).Scan(&id); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.Upsert: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *pgSubmissionRepository) FindByID(ctx context.Context, id int64) (*model.Submission, error) {
	query := `
        SELECT sub.id, sub.user_id, sub.stack_id, sub.repo_link, sub.status, sub.feedback,
               sub.created_at, sub.updated_at,
               s.id, s.title, s.slug,
               u.id, u.name, u.email
        FROM submissions sub
        JOIN stacks s ON s.id = sub.stack_id
        JOIN users u ON u.id = sub.user_id
        WHERE sub.id = $1`
	sub := &model.Submission{Stack: &model.StackRef{}, User: &model.UserRef{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.UserID, &sub.StackID, &sub.RepoLink, &sub.Status, &sub.Feedback,
		&sub.CreatedAt, &sub.UpdatedAt,
		&sub.Stack.ID, &sub.Stack.Title, &sub.Stack.Slug,
		&sub.User.ID, &sub.User.Name, &sub.User.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByID: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) Grade(ctx context.Context, id int64, status model.SubmissionStatus, feedback *string) (*model.Submission, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE submissions SET status = $1, feedback = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		status, feedback, id)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.Grade: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, common.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *pgSubmissionRepository) ListByUser(ctx context.Context, userID int64) ([]model.Submission, error) {
	query := `
        SELECT sub.id, sub.user_id, sub.stack_id, sub.repo_link, sub.status, sub.feedback,
               sub.created_at, sub.updated_at,
               s.id, s.title, s.slug
        FROM submissions sub
        JOIN stacks s ON s.id = sub.stack_id
        WHERE sub.user_id = $1
        ORDER BY sub.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		sub := model.Submission{Stack: &model.StackRef{}}
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.StackID, &sub.RepoLink, &sub.Status, &sub.Feedback,
			&sub.CreatedAt, &sub.UpdatedAt,
			&sub.Stack.ID, &sub.Stack.Title, &sub.Stack.Slug); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListByUser: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *pgSubmissionRepository) ListAll(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error) {
	query := `
        SELECT sub.id, sub.user_id, sub.stack_id, sub.repo_link, sub.status, sub.feedback,
               sub.created_at, sub.updated_at,
               s.id, s.title, s.slug,
               u.id, u.name, u.email
        FROM submissions sub
        JOIN stacks s ON s.id = sub.stack_id
        JOIN users u ON u.id = sub.user_id`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE sub.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY sub.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListAll: %w", err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		sub := model.Submission{Stack: &model.StackRef{}, User: &model.UserRef{}}
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.StackID, &sub.RepoLink, &sub.Status, &sub.Feedback,
			&sub.CreatedAt, &sub.UpdatedAt,
			&sub.Stack.ID, &sub.Stack.Title, &sub.Stack.Slug,
			&sub.User.ID, &sub.User.Name, &sub.User.Email); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListAll: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *pgSubmissionRepository) Counts(ctx context.Context) (*model.SubmissionCounts, error) {
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'PENDING'),
               COUNT(*) FILTER (WHERE status = 'PASS'),
               COUNT(*) FILTER (WHERE status = 'FAIL')
        FROM submissions`
	c := &model.SubmissionCounts{}
	if err := r.db.QueryRowContext(ctx, query).Scan(&c.Total, &c.Pending, &c.Passed, &c.Failed); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.Counts: %w", err)
	}
	return c, nil
}
