package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
)

type PostActionService interface {
	CreateComment(ctx context.Context, caller *model.User, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	GetComments(ctx context.Context, postID uint64, skip, limit int) ([]*dto.CommentDTO, error)
	LikePost(ctx context.Context, caller *model.User, postID uint64) (*dto.LikeDTO, error)
	UnlikePost(ctx context.Context, caller *model.User, postID uint64) error
}

type postActionServiceImpl struct {
	actionRepo repository.PostActionRepo
	postRepo   repository.PostRepo
}

func NewPostActionService(actionRepo repository.PostActionRepo, postRepo repository.PostRepo) PostActionService {
	return &postActionServiceImpl{
		actionRepo: actionRepo,
		postRepo:   postRepo,
	}
}

// CreateComment 评论不限制文章状态
func (s *postActionServiceImpl) CreateComment(ctx context.Context, caller *model.User, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if err := RequireActive(caller); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrParamInvalid
	}
	if err := s.getPostCheck(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content:   content,
		PostID:    req.PostID,
		AuthorID:  caller.ID,
		CreatedAt: time.Now(),
	}
	if err := s.actionRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *caller
	return toCommentDTO(comment), nil
}

// GetComments 按发表时间正序，limit < 0 表示全部
func (s *postActionServiceImpl) GetComments(ctx context.Context, postID uint64, skip, limit int) ([]*dto.CommentDTO, error) {
	if skip < 0 {
		return nil, ErrParamInvalid
	}
	comments, err := s.actionRepo.GetCommentsByPostID(ctx, postID, skip, limit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		res = append(res, toCommentDTO(comment))
	}
	return res, nil
}

// LikePost 重复点赞由唯一索引判定
func (s *postActionServiceImpl) LikePost(ctx context.Context, caller *model.User, postID uint64) (*dto.LikeDTO, error) {
	if err := RequireActive(caller); err != nil {
		return nil, err
	}
	if err := s.getPostCheck(ctx, postID); err != nil {
		return nil, err
	}

	like := &model.Like{UserID: caller.ID, PostID: postID, CreatedAt: time.Now()}
	if err := s.actionRepo.CreateLike(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLikeDuplicate
		}
		return nil, err
	}
	log.DebugContext(ctx, "post liked", "post_id", postID, "user_id", caller.ID)
	return toLikeDTO(like), nil
}

func (s *postActionServiceImpl) UnlikePost(ctx context.Context, caller *model.User, postID uint64) error {
	if err := RequireActive(caller); err != nil {
		return err
	}
	rows, err := s.actionRepo.DeleteLike(ctx, caller.ID, postID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (s *postActionServiceImpl) getPostCheck(ctx context.Context, postID uint64) error {
	exists, err := s.postRepo.ExistsPost(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}
	return nil
}
