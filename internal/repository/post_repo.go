package repository

import (
	"Atlania/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter 列表查询条件，nil 表示不过滤
type PostFilter struct {
	Status     *model.PostStatus
	AuthorID   *uint64
	CategoryID *uint64
	Featured   *bool
	Offset     int
	Limit      int
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostById(ctx context.Context, id uint64) (*model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListPosts(ctx context.Context, filter *PostFilter) ([]*model.Post, error)
	UpdatePostStatus(ctx context.Context, id uint64, status model.PostStatus) error
	ExistsPost(ctx context.Context, id uint64) (bool, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// CreatePost slug 冲突时返回 gorm.ErrDuplicatedKey
func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	if IsDuplicateError(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (s *PostRepoImpl) GetPostById(ctx context.Context, id uint64) (*model.Post, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *PostRepoImpl) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return s.first(ctx, "slug = ?", slug)
}

func (s *PostRepoImpl) first(ctx context.Context, query string, arg any) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where(query, arg).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, filter *PostFilter) ([]*model.Post, error) {
	query := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	posts := make([]*model.Post, 0)
	err := query.
		Order("created_at DESC").Order("id DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePostStatus 状态与 published 在同一条语句中更新
func (s *PostRepoImpl) UpdatePostStatus(ctx context.Context, id uint64, status model.PostStatus) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"published":  status == model.PostStatusPublished,
			"updated_at": time.Now(),
		}).Error
}

func (s *PostRepoImpl) ExistsPost(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
