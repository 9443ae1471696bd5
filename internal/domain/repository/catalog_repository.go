package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"olw_backend/internal/common"
	"olw_backend/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// CatalogRepository covers the stack -> topic -> video hierarchy.
type CatalogRepository interface {
	CreateStack(ctx context.Context, stack *model.Stack) error
	UpdateStack(ctx context.Context, stack *model.Stack) error
	DeleteStack(ctx context.Context, id int64) error
	FindStackByID(ctx context.Context, id int64) (*model.Stack, error)
	FindStackBySlug(ctx context.Context, slug string) (*model.Stack, error)
	ListStacks(ctx context.Context) ([]model.StackSummary, error)

	CreateTopic(ctx context.Context, topic *model.Topic) error
	UpdateTopic(ctx context.Context, topic *model.Topic) error
	DeleteTopic(ctx context.Context, id int64) error
	FindTopicByID(ctx context.Context, id int64) (*model.Topic, error)
	ListTopicsByStack(ctx context.Context, stackID int64) ([]model.Topic, error)
	ListAllTopics(ctx context.Context) ([]model.AdminTopic, error)

	CreateVideo(ctx context.Context, video *model.Video) error
	UpdateVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, id int64) error
	FindVideoByID(ctx context.Context, id int64) (*model.Video, error)
	ListVideosByStack(ctx context.Context, stackID int64) ([]model.Video, error)
	ListAllVideos(ctx context.Context) ([]model.AdminVideo, error)
}

type pgCatalogRepository struct {
	db *sql.DB
}

func NewPgCatalogRepository(db *sql.DB) CatalogRepository {
	return &pgCatalogRepository{db: db}
}

// Stacks

func (r *pgCatalogRepository) CreateStack(ctx context.Context, s *model.Stack) error {
	query := `INSERT INTO stacks (slug, title, description, thumbnail, sort_order)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, s.Slug, s.Title, s.Description, s.Thumbnail, s.SortOrder).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return common.E(common.ErrConflict, "Stack with this slug already exists")
		}
		return fmt.Errorf("pgCatalogRepository.CreateStack: %w", err)
	}
	return nil
}

func (r *pgCatalogRepository) UpdateStack(ctx context.Context, s *model.Stack) error {
	query := `UPDATE stacks SET
	              slug = $1, title = $2, description = $3, thumbnail = $4,
	              sort_order = $5, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, s.Slug, s.Title, s.Description, s.Thumbnail, s.SortOrder, s.ID).
		Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.E(common.ErrConflict, "Stack with this slug already exists")
		}
		return fmt.Errorf("pgCatalogRepository.UpdateStack: %w", err)
	}
	return nil
}

func (r *pgCatalogRepository) DeleteStack(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCatalogRepository.DeleteStack: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCatalogRepository) FindStackByID(ctx context.Context, id int64) (*model.Stack, error) {
	return r.scanStack(r.db.QueryRowContext(ctx,
		`SELECT id, slug, title, description, thumbnail, sort_order, created_at, updated_at
		 FROM stacks WHERE id = $1`, id), "FindStackByID")
}

func (r *pgCatalogRepository) FindStackBySlug(ctx context.Context, slug string) (*model.Stack, error) {
	return r.scanStack(r.db.QueryRowContext(ctx,
		`SELECT id, slug, title, description, thumbnail, sort_order, created_at, updated_at
		 FROM stacks WHERE slug = $1`, slug), "FindStackBySlug")
}

func (r *pgCatalogRepository) scanStack(row *sql.Row, op string) (*model.Stack, error) {
	s := &model.Stack{}
	err := row.Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.Thumbnail, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCatalogRepository.%s: %w", op, err)
	}
	return s, nil
}

func (r *pgCatalogRepository) ListStacks(ctx context.Context) ([]model.StackSummary, error) {
	query := `
        SELECT s.id, s.slug, s.title, s.description, s.thumbnail, s.sort_order,
               s.created_at, s.updated_at,
               COUNT(DISTINCT t.id) AS topic_count,
               COUNT(v.id) AS video_count
        FROM stacks s
        LEFT JOIN topics t ON t.stack_id = s.id
        LEFT JOIN videos v ON v.topic_id = t.id
        GROUP BY s.id
        ORDER BY s.sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgCatalogRepository.ListStacks: %w", err)
	}
	defer rows.Close()

	stacks := []model.StackSummary{}
	for rows.Next() {
		var s model.StackSummary
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.Thumbnail, &s.SortOrder,
			&s.CreatedAt, &s.UpdatedAt, &s.TopicCount, &s.VideoCount); err != nil {
			return nil, fmt.Errorf("pgCatalogRepository.ListStacks: %w", err)
		}
		stacks = append(stacks, s)
	}
	return stacks, rows.Err()
}

// Topics

func (r *pgCatalogRepository) CreateTopic(ctx context.Context, t *model.Topic) error {
	query := `INSERT INTO topics (stack_id, title, sort_order) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, t.StackID, t.Title, t.SortOrder).Scan(&t.ID); err != nil {
		return fmt.Errorf("pgCatalogRepository.CreateTopic: %w", err)
	}
	return nil
}

func (r *pgCatalogRepository) UpdateTopic(ctx context.Context, t *model.Topic) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE topics SET title = $1, sort_order = $2 WHERE id = $3`, t.Title, t.SortOrder, t.ID)
	if err != nil {
		return fmt.Errorf("pgCatalogRepository.UpdateTopic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCatalogRepository) DeleteTopic(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCatalogRepository.DeleteTopic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCatalogRepository) FindTopicByID(ctx context.Context, id int64) (*model.Topic, error) {
	t := &model.Topic{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, stack_id, title, sort_order FROM topics WHERE id = $1`, id).
		Scan(&t.ID, &t.StackID, &t.Title, &t.SortOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCatalogRepository.FindTopicByID: %w", err)
	}
	return t, nil
}

func (r *pgCatalogRepository) ListTopicsByStack(ctx context.Context, stackID int64) ([]model.Topic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, stack_id, title, sort_order FROM topics WHERE stack_id = $1 ORDER BY sort_order ASC`,
		stackID)
	if err != nil {
		return nil, fmt.Errorf("pgCatalogRepository.ListTopicsByStack: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.StackID, &t.Title, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("pgCatalogRepository.ListTopicsByStack: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *pgCatalogRepository) ListAllTopics(ctx context.Context) ([]model.AdminTopic, error) {
	query := `
        SELECT t.id, t.stack_id, t.title, t.sort_order,
               s.id, s.title, s.slug,
               COUNT(v.id) AS video_count
        FROM topics t
        JOIN stacks s ON s.id = t.stack_id
        LEFT JOIN videos v ON v.topic_id = t.id
        GROUP BY t.id, s.id
        ORDER BY t.stack_id ASC, t.sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgCatalogRepository.ListAllTopics: %w", err)
	}
	defer rows.Close()

	topics := []model.AdminTopic{}
	for rows.Next() {
		var t model.AdminTopic
		if err := rows.Scan(&t.ID, &t.StackID, &t.Title, &t.SortOrder,
			&t.Stack.ID, &t.Stack.Title, &t.Stack.Slug, &t.VideoCount); err != nil {
			return nil, fmt.Errorf("pgCatalogRepository.ListAllTopics: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// Videos

func (r *pgCatalogRepository) CreateVideo(ctx context.Context, v *model.Video) error {
	query := `INSERT INTO videos (topic_id, title, youtube_id, duration, sort_order)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, v.TopicID, v.Title, v.YoutubeID, v.Duration, v.SortOrder).Scan(&v.ID); err != nil {
		return fmt.Errorf("pgCatalogRepository.CreateVideo: %w", err)
	}
	return nil
}

func (r *pgCatalogRepository) UpdateVideo(ctx context.Context, v *model.Video) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE videos SET title = $1, youtube_id = $2, duration = $3, sort_order = $4 WHERE id = $5`,
		v.Title, v.YoutubeID, v.Duration, v.SortOrder, v.ID)
	if err != nil {
		return fmt.Errorf("pgCatalogRepository.UpdateVideo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCatalogRepository) DeleteVideo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCatalogRepository.DeleteVideo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCatalogRepository) FindVideoByID(ctx context.Context, id int64) (*model.Video, error) {
	v := &model.Video{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, topic_id, title, youtube_id, duration, sort_order FROM videos WHERE id = $1`, id).
		Scan(&v.ID, &v.TopicID, &v.Title, &v.YoutubeID, &v.Duration, &v.SortOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCatalogRepository.FindVideoByID: %w", err)
	}
	return v, nil
}

// ListVideosByStack returns every video under a stack in topic order then
// video order, so callers can group them without re-sorting.
func (r *pgCatalogRepository) ListVideosByStack(ctx context.Context, stackID int64) ([]model.Video, error) {
	query := `
        SELECT v.id, v.topic_id, v.title, v.youtube_id, v.duration, v.sort_order
        FROM videos v
        JOIN topics t ON t.id = v.topic_id
        WHERE t.stack_id = $1
        ORDER BY t.sort_order ASC, v.sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query, stackID)
	if err != nil {
		return nil, fmt.Errorf("pgCatalogRepository.ListVideosByStack: %w", err)
	}
	defer rows.Close()

	videos := []model.Video{}
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(&v.ID, &v.TopicID, &v.Title, &v.YoutubeID, &v.Duration, &v.SortOrder); err != nil {
			return nil, fmt.Errorf("pgCatalogRepository.ListVideosByStack: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *pgCatalogRepository) ListAllVideos(ctx context.Context) ([]model.AdminVideo, error) {
	query := `
        SELECT v.id, v.topic_id, v.title, v.youtube_id, v.duration, v.sort_order,
               t.id, t.title,
               s.id, s.title, s.slug
        FROM videos v
        JOIN topics t ON t.id = v.topic_id
        JOIN stacks s ON s.id = t.stack_id
        ORDER BY v.topic_id ASC, v.sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgCatalogRepository.ListAllVideos: %w", err)
	}
	defer rows.Close()

	videos := []model.AdminVideo{}
	for rows.Next() {
		var v model.AdminVideo
		if err := rows.Scan(&v.ID, &v.TopicID, &v.Title, &v.YoutubeID, &v.Duration, &v.SortOrder,
			&v.Topic.ID, &v.Topic.Title,
			&v.Topic.Stack.ID, &v.Topic.Stack.Title, &v.Topic.Stack.Slug); err != nil {
			return nil, fmt.Errorf("pgCatalogRepository.ListAllVideos: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
