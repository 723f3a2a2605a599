package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/util"
	"Atlania/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// noLimit 不分页
const noLimit = -1

type PostService interface {
	CreatePost(ctx context.Context, caller *model.User, postDTO *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPublishedPosts(ctx context.Context, query *dto.PostListQuery) ([]*dto.PostDTO, error)
	GetPublishedPostBySlug(ctx context.Context, slug string) (*dto.PostDTO, error)
	GetPostSelf(ctx context.Context, caller *model.User, skip, limit int) ([]*dto.PostDTO, error)
	GetPendingPosts(ctx context.Context, caller *model.User) ([]*dto.PostDTO, error)
	UpdatePostStatus(ctx context.Context, caller *model.User, postID uint64, status model.PostStatus) (*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	actionRepo   repository.PostActionRepo
	categoryRepo repository.CategoryRepo
}

func NewPostService(postRepo repository.PostRepo, actionRepo repository.PostActionRepo, categoryRepo repository.CategoryRepo) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		actionRepo:   actionRepo,
		categoryRepo: categoryRepo,
	}
}

// CreatePost 作者只能选择草稿，其余请求一律进入待审核
func (s *postServiceImpl) CreatePost(ctx context.Context, caller *model.User, postDTO *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if err := Authorize(caller, RequireActive, RequireWriter); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(postDTO.Title)
	if title == "" {
		return nil, ErrParamInvalid
	}
	// 客户端给出的 slug 原样保存，唯一性交给索引
	slug := strings.TrimSpace(postDTO.Slug)
	if slug == "" {
		slug = generateSlug(title)
	}

	if postDTO.CategoryID != nil {
		category, err := s.categoryRepo.GetCategoryById(ctx, *postDTO.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	post := &model.Post{
		Title:      title,
		Slug:       slug,
		Excerpt:    postDTO.Excerpt,
		Content:    postDTO.Content,
		Image:      postDTO.Image,
		ReadTime:   postDTO.ReadTime,
		Featured:   postDTO.Featured,
		AuthorID:   caller.ID,
		CategoryID: postDTO.CategoryID,
	}
	post.SetStatus(model.InitialPostStatus(model.PostStatus(postDTO.Status)))

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPostSlugExist
		}
		return nil, err
	}
	log.InfoContext(ctx, "post created", "post_id", post.ID, "author_id", caller.ID, "status", post.Status)

	created, err := s.postRepo.GetPostById(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrPostNotFound
	}
	return toPostDTO(created, 0), nil
}

// GetPublishedPosts 公开列表，只返回已发布文章
func (s *postServiceImpl) GetPublishedPosts(ctx context.Context, query *dto.PostListQuery) ([]*dto.PostDTO, error) {
	published := model.PostStatusPublished
	// category_id=0 视为不过滤
	categoryID := query.CategoryID
	if categoryID != nil && *categoryID == 0 {
		categoryID = nil
	}
	return s.listPosts(ctx, &repository.PostFilter{
		Status:     &published,
		CategoryID: categoryID,
		Featured:   query.Featured,
		Offset:     query.Skip,
		Limit:      query.LimitOr(consts.DefaultPageSize),
	})
}

// GetPublishedPostBySlug 未发布的文章对所有人不可见，包括作者本人
func (s *postServiceImpl) GetPublishedPostBySlug(ctx context.Context, slug string) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !post.IsPublished() {
		return nil, ErrPostNotPublished
	}

	var likes int64
	var comments []*model.Comment
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likes, err = s.actionRepo.GetLikeCountByPostID(gCtx, post.ID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.actionRepo.GetCommentsByPostID(gCtx, post.ID, 0, noLimit)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	postDTO := toPostDTO(post, likes)
	postDTO.Comments = make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		postDTO.Comments = append(postDTO.Comments, toCommentDTO(comment))
	}
	return postDTO, nil
}

// GetPostSelf 当前用户的全部文章，不区分状态
func (s *postServiceImpl) GetPostSelf(ctx context.Context, caller *model.User, skip, limit int) ([]*dto.PostDTO, error) {
	if err := RequireActive(caller); err != nil {
		return nil, err
	}
	authorID := caller.ID
	return s.listPosts(ctx, &repository.PostFilter{
		AuthorID: &authorID,
		Offset:   skip,
		Limit:    limit,
	})
}

// GetPendingPosts 待审核队列
func (s *postServiceImpl) GetPendingPosts(ctx context.Context, caller *model.User) ([]*dto.PostDTO, error) {
	if err := Authorize(caller, RequireActive, RequireAdmin); err != nil {
		return nil, err
	}
	pending := model.PostStatusPending
	return s.listPosts(ctx, &repository.PostFilter{
		Status: &pending,
		Limit:  noLimit,
	})
}

// UpdatePostStatus 管理员可设置任意状态，published 始终与新状态保持一致
func (s *postServiceImpl) UpdatePostStatus(ctx context.Context, caller *model.User, postID uint64, status model.PostStatus) (*dto.PostDTO, error) {
	if err := Authorize(caller, RequireActive, RequireAdmin); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err = s.postRepo.UpdatePostStatus(ctx, postID, status); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "post status changed", "post_id", postID, "from", post.Status, "to", status, "admin_id", caller.ID)

	updated, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	likes, err := s.actionRepo.GetLikeCountByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(updated, likes), nil
}

func (s *postServiceImpl) listPosts(ctx context.Context, filter *repository.PostFilter) ([]*dto.PostDTO, error) {
	if filter.Offset < 0 {
		return nil, ErrParamInvalid
	}
	posts, err := s.postRepo.ListPosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	counts, err := s.actionRepo.GetLikeCountByPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		res = append(res, toPostDTO(post, counts[post.ID]))
	}
	return res, nil
}

// generateSlug 标题中没有可用字符时退化为 post-<随机串>
func generateSlug(title string) string {
	if slug := util.Slugify(title); slug != "" {
		return slug
	}
	return "post-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
