package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"olw_backend/internal/domain/model"
)

type ProgressRepository interface {
	// Upsert writes the single (user, video) progress row atomically; the
	// unique constraint guarantees concurrent toggles cannot duplicate it.
	Upsert(ctx context.Context, userID, videoID int64, isCompleted bool, completedAt *time.Time) (*model.Progress, error)
	CompletedVideoIDs(ctx context.Context, userID int64) ([]int64, error)
	CompletedVideoIDsByStack(ctx context.Context, userID, stackID int64) ([]int64, error)
	StackProgress(ctx context.Context, userID int64) ([]model.StackProgress, error)
}

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) Upsert(ctx context.Context, userID, videoID int64, isCompleted bool, completedAt *time.Time) (*model.Progress, error) {
	query := `
        INSERT INTO progress (user_id, video_id, is_completed, completed_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, video_id) DO UPDATE SET
            is_completed = EXCLUDED.is_completed,
            completed_at = EXCLUDED.completed_at,
            updated_at = CURRENT_TIMESTAMP
        RETURNING id, user_id, video_id, is_completed, completed_at, created_at, updated_at`
	p := &model.Progress{}
	err := r.db.QueryRowContext(ctx, query, userID, videoID, isCompleted, completedAt).Scan(
		&p.ID, &p.UserID, &p.VideoID, &p.IsCompleted, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.Upsert: %w", err)
	}
	return p, nil
}

func (r *pgProgressRepository) CompletedVideoIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.completedIDs(ctx,
		`SELECT video_id FROM progress WHERE user_id = $1 AND is_completed ORDER BY video_id`,
		userID)
}

func (r *pgProgressRepository) CompletedVideoIDsByStack(ctx context.Context, userID, stackID int64) ([]int64, error) {
	query := `
        SELECT p.video_id
        FROM progress p
        JOIN videos v ON v.id = p.video_id
        JOIN topics t ON t.id = v.topic_id
        WHERE p.user_id = $1 AND p.is_completed AND t.stack_id = $2
        ORDER BY p.video_id`
	return r.completedIDs(ctx, query, userID, stackID)
}

func (r *pgProgressRepository) completedIDs(ctx context.Context, query string, args ...interface{}) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.completedIDs: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.completedIDs: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// StackProgress aggregates per-stack totals and the user's completed counts
// in one round trip; the percentage is computed by the service.
func (r *pgProgressRepository) StackProgress(ctx context.Context, userID int64) ([]model.StackProgress, error) {
	query := `
        SELECT s.id, s.slug, s.title, s.thumbnail,
               COUNT(v.id) AS total_videos,
               COUNT(p.id) FILTER (WHERE p.is_completed) AS completed_videos
        FROM stacks s
        LEFT JOIN topics t ON t.stack_id = s.id
        LEFT JOIN videos v ON v.topic_id = t.id
        LEFT JOIN progress p ON p.video_id = v.id AND p.user_id = $1
        GROUP BY s.id
        ORDER BY s.sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.StackProgress: %w", err)
	}
	defer rows.Close()

	stacks := []model.StackProgress{}
	for rows.Next() {
		var s model.StackProgress
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Thumbnail, &s.TotalVideos, &s.CompletedVideos); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.StackProgress: %w", err)
		}
		stacks = append(stacks, s)
	}
	return stacks, rows.Err()
}
