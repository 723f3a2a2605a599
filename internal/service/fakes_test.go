package service

import (
	"Atlania/internal/model"
	"Atlania/internal/pkg/minio"
	"Atlania/internal/pkg/oauth"
	"Atlania/internal/pkg/security"
	"Atlania/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{}}
}

func (r *fakeUserRepo) find(match func(u *model.User) bool) *model.User {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *model.User) bool { return u.ID == id }), nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *model.User) bool { return u.Email == email }), nil
}

func (r *fakeUserRepo) GetUserByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *model.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID }), nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context, offset, limit int) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return page(users, offset, limit), nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
		if user.GoogleID != nil && u.GoogleID != nil && *u.GoogleID == *user.GoogleID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) LinkGoogleID(_ context.Context, id uint64, googleID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return false, gorm.ErrDuplicatedKey
		}
	}
	u, ok := r.users[id]
	if !ok || u.GoogleID != nil {
		return false, nil
	}
	u.GoogleID = &googleID
	return true, nil
}

func (r *fakeUserRepo) UpdateUserRole(_ context.Context, id uint64, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
	return nil
}

// add 直接写入，测试准备数据用
func (r *fakeUserRepo) add(t *testing.T, email string, role model.Role, active bool) *model.User {
	t.Helper()
	user := &model.User{Email: email, Role: role, IsActive: active, Avatar: "/avatars/default.jpg"}
	if err := r.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("add user %s: %v", email, err)
	}
	return user
}

type fakeCategoryRepo struct {
	categories []*model.Category
	calls      int
}

func (r *fakeCategoryRepo) GetCategories(_ context.Context) ([]*model.Category, error) {
	r.calls++
	return r.categories, nil
}

func (r *fakeCategoryRepo) GetCategoryById(_ context.Context, id uint64) (*model.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

type fakePostRepo struct {
	mu         sync.Mutex
	nextID     uint64
	posts      map[uint64]*model.Post
	users      *fakeUserRepo
	categories *fakeCategoryRepo
	clock      time.Time
}

func newFakePostRepo(users *fakeUserRepo, categories *fakeCategoryRepo) *fakePostRepo {
	return &fakePostRepo{
		posts:      map[uint64]*model.Post{},
		users:      users,
		categories: categories,
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakePostRepo) hydrate(p *model.Post) *model.Post {
	cp := *p
	if author, _ := r.users.GetUserById(context.Background(), p.AuthorID); author != nil {
		cp.Author = *author
	}
	if p.CategoryID != nil {
		cp.Category, _ = r.categories.GetCategoryById(context.Background(), *p.CategoryID)
	}
	return &cp
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == post.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	r.clock = r.clock.Add(time.Minute)
	post.ID = r.nextID
	post.CreatedAt, post.UpdatedAt = r.clock, r.clock
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) GetPostById(_ context.Context, id uint64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		return r.hydrate(p), nil
	}
	return nil, nil
}

func (r *fakePostRepo) GetPostBySlug(_ context.Context, slug string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Slug == slug {
			return r.hydrate(p), nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) ListPosts(_ context.Context, filter *repository.PostFilter) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := make([]*model.Post, 0)
	for _, p := range r.posts {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		posts = append(posts, r.hydrate(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return page(posts, filter.Offset, filter.Limit), nil
}

func (r *fakePostRepo) UpdatePostStatus(_ context.Context, id uint64, status model.PostStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		p.Status = status
		p.Published = status == model.PostStatusPublished
	}
	return nil
}

func (r *fakePostRepo) ExistsPost(_ context.Context, id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.posts[id]
	return ok, nil
}

// corrupt 模拟绕过服务层写入的不一致数据
func (r *fakePostRepo) corrupt(id uint64, status model.PostStatus, published bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[id].Status = status
	r.posts[id].Published = published
}

type fakeActionRepo struct {
	mu       sync.Mutex
	nextID   uint64
	comments []*model.Comment
	likes    []*model.Like
	users    *fakeUserRepo
}

func newFakeActionRepo(users *fakeUserRepo) *fakeActionRepo {
	return &fakeActionRepo{users: users}
}

func (r *fakeActionRepo) CreateComment(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = r.nextID
	cp := *comment
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *fakeActionRepo) GetCommentsByPostID(_ context.Context, postID uint64, offset, limit int) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]*model.Comment, 0)
	for _, c := range r.comments {
		if c.PostID != postID {
			continue
		}
		cp := *c
		if author, _ := r.users.GetUserById(context.Background(), c.AuthorID); author != nil {
			cp.Author = *author
		}
		res = append(res, &cp)
	}
	return page(res, offset, limit), nil
}

func (r *fakeActionRepo) CreateLike(_ context.Context, like *model.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == like.UserID && l.PostID == like.PostID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	like.ID = r.nextID
	cp := *like
	r.likes = append(r.likes, &cp)
	return nil
}

func (r *fakeActionRepo) DeleteLike(_ context.Context, userID, postID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.likes {
		if l.UserID == userID && l.PostID == postID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeActionRepo) GetLikeCountByPostID(_ context.Context, postID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, l := range r.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (r *fakeActionRepo) GetLikeCountByPostIDs(_ context.Context, postIDs []uint64) (map[uint64]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make(map[uint64]int64, len(postIDs))
	for _, id := range postIDs {
		for _, l := range r.likes {
			if l.PostID == id {
				res[id]++
			}
		}
	}
	return res, nil
}

type fakeStore struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *fakeStore) GetValue(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet != nil {
		return "", s.failGet
	}
	return s.values[key], nil
}

func (s *fakeStore) SetWithExpiration(_ context.Context, key string, value string, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.ttls[key] = expiration
	return nil
}

func (s *fakeStore) GetAndDelete(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[key]
	delete(s.values, key)
	delete(s.ttls, key)
	return v, nil
}

func (s *fakeStore) DeleteKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.ttls, key)
	return nil
}

type fakeOAuthProvider struct {
	identity    *oauth.ExternalIdentity
	exchangeErr error
	gotSession  string
	gotRedirect string
}

func (p *fakeOAuthProvider) RedirectURI(fallback string) string {
	return fallback
}

func (p *fakeOAuthProvider) BeginAuth(state, redirectURI string) (string, string, error) {
	return "https://accounts.example.com/auth?state=" + state, "session-" + state, nil
}

func (p *fakeOAuthProvider) Exchange(session, redirectURI, code string) (*oauth.ExternalIdentity, error) {
	p.gotSession, p.gotRedirect = session, redirectURI
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return p.identity, nil
}

type fakeMediaHost struct {
	last      *minio.UploadInput
	deleted   []string
	uploadErr error
	deleteErr error
}

func (h *fakeMediaHost) Upload(_ context.Context, in *minio.UploadInput) (*minio.UploadResult, error) {
	h.last = in
	if h.uploadErr != nil {
		return nil, h.uploadErr
	}
	objectName := minio.ObjectName("atlania", in.Folder, in.FileName)
	return &minio.UploadResult{
		FileID:       minio.EncodeFileID(objectName),
		Name:         in.FileName,
		URL:          "http://media.local/" + objectName,
		ThumbnailURL: "http://media.local/" + objectName,
		FileType:     minio.FileTypeNonImage,
		Size:         int64(len(in.Data)),
	}, nil
}

func (h *fakeMediaHost) Delete(_ context.Context, fileID string) error {
	if h.deleteErr != nil {
		return h.deleteErr
	}
	h.deleted = append(h.deleted, fileID)
	return nil
}

var errBoom = errors.New("boom")

type testEnv struct {
	users      *fakeUserRepo
	categories *fakeCategoryRepo
	posts      *fakePostRepo
	actions    *fakeActionRepo
	store      *fakeStore
	codec      *security.TokenCodec
	sessionSvc SessionService
	userSvc    UserService
	postSvc    PostService
	actionSvc  PostActionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	codec, err := security.NewTokenCodec("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	env := &testEnv{
		users: newFakeUserRepo(),
		categories: &fakeCategoryRepo{categories: []*model.Category{
			{ID: 1, Name: "Travel", Slug: "travel"},
			{ID: 2, Name: "Culture", Slug: "culture"},
		}},
		store: newFakeStore(),
		codec: codec,
	}
	env.posts = newFakePostRepo(env.users, env.categories)
	env.actions = newFakeActionRepo(env.users)
	env.sessionSvc = NewSessionService(codec, env.users, env.store)
	env.userSvc = NewUserService(env.users, env.sessionSvc)
	env.postSvc = NewPostService(env.posts, env.actions, env.categories)
	env.actionSvc = NewPostActionService(env.actions, env.posts)
	return env
}
