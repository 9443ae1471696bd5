package service

import (
	"context"
	"sort"
	"time"

	"olw_backend/internal/common"
	"olw_backend/internal/domain/model"
)

// In-memory repository fakes backing the service tests. They mirror the
// store-level behavior the pg implementations rely on: unique constraints,
// upserts and ordered reads.

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return common.E(common.ErrConflict, "Email already registered")
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ListWithCounts(_ context.Context) ([]model.AdminUser, error) {
	out := []model.AdminUser{}
	for _, u := range r.users {
		out = append(out, model.AdminUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCatalogRepo struct {
	stacks map[int64]*model.Stack
	topics map[int64]*model.Topic
	videos map[int64]*model.Video
	nextID int64
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		stacks: map[int64]*model.Stack{},
		topics: map[int64]*model.Topic{},
		videos: map[int64]*model.Video{},
	}
}

func (r *fakeCatalogRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *fakeCatalogRepo) CreateStack(_ context.Context, s *model.Stack) error {
	for _, other := range r.stacks {
		if other.Slug == s.Slug {
			return common.E(common.ErrConflict, "Stack with this slug already exists")
		}
	}
	s.ID = r.id()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	r.stacks[s.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) UpdateStack(_ context.Context, s *model.Stack) error {
	if _, ok := r.stacks[s.ID]; !ok {
		return common.ErrNotFound
	}
	for _, other := range r.stacks {
		if other.ID != s.ID && other.Slug == s.Slug {
			return common.E(common.ErrConflict, "Stack with this slug already exists")
		}
	}
	s.UpdatedAt = time.Now()
	cp := *s
	r.stacks[s.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) DeleteStack(_ context.Context, id int64) error {
	if _, ok := r.stacks[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.stacks, id)
	for tid, t := range r.topics {
		if t.StackID == id {
			delete(r.topics, tid)
		}
	}
	return nil
}

func (r *fakeCatalogRepo) FindStackByID(_ context.Context, id int64) (*model.Stack, error) {
	s, ok := r.stacks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeCatalogRepo) FindStackBySlug(_ context.Context, slug string) (*model.Stack, error) {
	for _, s := range r.stacks {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeCatalogRepo) sortedStacks() []*model.Stack {
	out := make([]*model.Stack, 0, len(r.stacks))
	for _, s := range r.stacks {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func (r *fakeCatalogRepo) ListStacks(_ context.Context) ([]model.StackSummary, error) {
	out := []model.StackSummary{}
	for _, s := range r.sortedStacks() {
		sum := model.StackSummary{Stack: *s}
		for _, t := range r.topics {
			if t.StackID == s.ID {
				sum.TopicCount++
				for _, v := range r.videos {
					if v.TopicID == t.ID {
						sum.VideoCount++
					}
				}
			}
		}
		out = append(out, sum)
	}
	return out, nil
}

func (r *fakeCatalogRepo) CreateTopic(_ context.Context, t *model.Topic) error {
	t.ID = r.id()
	cp := *t
	r.topics[t.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) UpdateTopic(_ context.Context, t *model.Topic) error {
	if _, ok := r.topics[t.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *t
	r.topics[t.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) DeleteTopic(_ context.Context, id int64) error {
	if _, ok := r.topics[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.topics, id)
	return nil
}

func (r *fakeCatalogRepo) FindTopicByID(_ context.Context, id int64) (*model.Topic, error) {
	t, ok := r.topics[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeCatalogRepo) ListTopicsByStack(_ context.Context, stackID int64) ([]model.Topic, error) {
	out := []model.Topic{}
	for _, t := range r.topics {
		if t.StackID == stackID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeCatalogRepo) ListAllTopics(_ context.Context) ([]model.AdminTopic, error) {
	out := []model.AdminTopic{}
	for _, t := range r.topics {
		at := model.AdminTopic{Topic: *t}
		if s, ok := r.stacks[t.StackID]; ok {
			at.Stack = model.StackRef{ID: s.ID, Title: s.Title, Slug: s.Slug}
		}
		for _, v := range r.videos {
			if v.TopicID == t.ID {
				at.VideoCount++
			}
		}
		out = append(out, at)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StackID != out[j].StackID {
			return out[i].StackID < out[j].StackID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *fakeCatalogRepo) CreateVideo(_ context.Context, v *model.Video) error {
	v.ID = r.id()
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) UpdateVideo(_ context.Context, v *model.Video) error {
	if _, ok := r.videos[v.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) DeleteVideo(_ context.Context, id int64) error {
	if _, ok := r.videos[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *fakeCatalogRepo) FindVideoByID(_ context.Context, id int64) (*model.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeCatalogRepo) ListVideosByStack(ctx context.Context, stackID int64) ([]model.Video, error) {
	topics, _ := r.ListTopicsByStack(ctx, stackID)
	out := []model.Video{}
	for _, t := range topics {
		videos := []model.Video{}
		for _, v := range r.videos {
			if v.TopicID == t.ID {
				videos = append(videos, *v)
			}
		}
		sort.Slice(videos, func(i, j int) bool { return videos[i].SortOrder < videos[j].SortOrder })
		out = append(out, videos...)
	}
	return out, nil
}

func (r *fakeCatalogRepo) ListAllVideos(_ context.Context) ([]model.AdminVideo, error) {
	out := []model.AdminVideo{}
	for _, v := range r.videos {
		av := model.AdminVideo{Video: *v}
		if t, ok := r.topics[v.TopicID]; ok {
			av.Topic = model.AdminVideoTopic{ID: t.ID, Title: t.Title}
			if s, ok := r.stacks[t.StackID]; ok {
				av.Topic.Stack = model.StackRef{ID: s.ID, Title: s.Title, Slug: s.Slug}
			}
		}
		out = append(out, av)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TopicID != out[j].TopicID {
			return out[i].TopicID < out[j].TopicID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

type progressKey struct {
	userID  int64
	videoID int64
}

type fakeProgressRepo struct {
	catalog *fakeCatalogRepo
	rows    map[progressKey]*model.Progress
	nextID  int64
}

func newFakeProgressRepo(catalog *fakeCatalogRepo) *fakeProgressRepo {
	return &fakeProgressRepo{catalog: catalog, rows: map[progressKey]*model.Progress{}}
}

func (r *fakeProgressRepo) Upsert(_ context.Context, userID, videoID int64, isCompleted bool, completedAt *time.Time) (*model.Progress, error) {
	key := progressKey{userID, videoID}
	row, ok := r.rows[key]
	if !ok {
		r.nextID++
		row = &model.Progress{ID: r.nextID, UserID: userID, VideoID: videoID, CreatedAt: time.Now()}
		r.rows[key] = row
	}
	row.IsCompleted = isCompleted
	row.CompletedAt = completedAt
	row.UpdatedAt = time.Now()
	cp := *row
	return &cp, nil
}

func (r *fakeProgressRepo) CompletedVideoIDs(_ context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for key, row := range r.rows {
		if key.userID == userID && row.IsCompleted {
			ids = append(ids, key.videoID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeProgressRepo) CompletedVideoIDsByStack(ctx context.Context, userID, stackID int64) ([]int64, error) {
	all, _ := r.CompletedVideoIDs(ctx, userID)
	ids := []int64{}
	for _, id := range all {
		if v, ok := r.catalog.videos[id]; ok {
			if t, ok := r.catalog.topics[v.TopicID]; ok && t.StackID == stackID {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (r *fakeProgressRepo) StackProgress(ctx context.Context, userID int64) ([]model.StackProgress, error) {
	out := []model.StackProgress{}
	for _, s := range r.catalog.sortedStacks() {
		sp := model.StackProgress{ID: s.ID, Slug: s.Slug, Title: s.Title, Thumbnail: s.Thumbnail}
		videos, _ := r.catalog.ListVideosByStack(ctx, s.ID)
		sp.TotalVideos = len(videos)
		for _, v := range videos {
			if row, ok := r.rows[progressKey{userID, v.ID}]; ok && row.IsCompleted {
				sp.CompletedVideos++
			}
		}
		out = append(out, sp)
	}
	return out, nil
}

type submissionKey struct {
	userID  int64
	stackID int64
}

type fakeSubmissionRepo struct {
	catalog *fakeCatalogRepo
	users   *fakeUserRepo
	subs    map[int64]*model.Submission
	nextID  int64
	clock   time.Duration // monotonic offset so created_at ordering is stable
}

func newFakeSubmissionRepo(catalog *fakeCatalogRepo, users *fakeUserRepo) *fakeSubmissionRepo {
	return &fakeSubmissionRepo{catalog: catalog, users: users, subs: map[int64]*model.Submission{}}
}

func (r *fakeSubmissionRepo) now() time.Time {
	r.clock += time.Second
	return time.Unix(0, 0).Add(r.clock)
}

func (r *fakeSubmissionRepo) Upsert(ctx context.Context, userID, stackID int64, repoLink string) (*model.Submission, error) {
	for _, sub := range r.subs {
		if sub.UserID == userID && sub.StackID == stackID {
			sub.RepoLink = repoLink
			sub.Status = model.SubmissionPending
			sub.Feedback = nil
			sub.UpdatedAt = r.now()
			return r.FindByID(ctx, sub.ID)
		}
	}
	r.nextID++
	sub := &model.Submission{
		ID:        r.nextID,
		UserID:    userID,
		StackID:   stackID,
		RepoLink:  repoLink,
		Status:    model.SubmissionPending,
		CreatedAt: r.now(),
	}
	sub.UpdatedAt = sub.CreatedAt
	r.subs[sub.ID] = sub
	return r.FindByID(ctx, sub.ID)
}

func (r *fakeSubmissionRepo) FindByID(_ context.Context, id int64) (*model.Submission, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *sub
	if s, ok := r.catalog.stacks[sub.StackID]; ok {
		cp.Stack = &model.StackRef{ID: s.ID, Title: s.Title, Slug: s.Slug}
	}
	if r.users != nil {
		if u, ok := r.users.users[sub.UserID]; ok {
			cp.User = &model.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return &cp, nil
}

func (r *fakeSubmissionRepo) Grade(ctx context.Context, id int64, status model.SubmissionStatus, feedback *string) (*model.Submission, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	sub.Status = status
	sub.Feedback = feedback
	sub.UpdatedAt = r.now()
	return r.FindByID(ctx, id)
}

func (r *fakeSubmissionRepo) ListByUser(ctx context.Context, userID int64) ([]model.Submission, error) {
	out := []model.Submission{}
	for id, sub := range r.subs {
		if sub.UserID == userID {
			cp, _ := r.FindByID(ctx, id)
			cp.User = nil
			out = append(out, *cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSubmissionRepo) ListAll(ctx context.Context, status model.SubmissionStatus) ([]model.Submission, error) {
	out := []model.Submission{}
	for id, sub := range r.subs {
		if status != "" && sub.Status != status {
			continue
		}
		cp, _ := r.FindByID(ctx, id)
		out = append(out, *cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSubmissionRepo) Counts(_ context.Context) (*model.SubmissionCounts, error) {
	c := &model.SubmissionCounts{}
	for _, sub := range r.subs {
		c.Total++
		switch sub.Status {
		case model.SubmissionPending:
			c.Pending++
		case model.SubmissionPass:
			c.Passed++
		case model.SubmissionFail:
			c.Failed++
		}
	}
	return c, nil
}
