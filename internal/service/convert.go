package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"

	"github.com/jinzhu/copier"
)

func toUserDTO(user *model.User) *dto.UserDTO {
	if user == nil || user.ID == 0 {
		return nil
	}
	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	userDTO.Role = string(user.Role)
	userDTO.IsAdmin = user.IsAdmin()
	return userDTO
}

func toCategoryDTO(category *model.Category) *dto.CategoryDTO {
	if category == nil {
		return nil
	}
	categoryDTO := &dto.CategoryDTO{}
	_ = copier.Copy(categoryDTO, category)
	return categoryDTO
}

func toPostDTO(post *model.Post, likes int64) *dto.PostDTO {
	return &dto.PostDTO{
		ID:         post.ID,
		Title:      post.Title,
		Slug:       post.Slug,
		Excerpt:    post.Excerpt,
		Content:    post.Content,
		Image:      post.Image,
		ReadTime:   post.ReadTime,
		Featured:   post.Featured,
		Status:     string(post.Status),
		Published:  post.Published,
		AuthorID:   post.AuthorID,
		CategoryID: post.CategoryID,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
		Author:     toUserDTO(&post.Author),
		Category:   toCategoryDTO(post.Category),
		LikesCount: likes,
		Comments:   []*dto.CommentDTO{},
	}
}

func toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
		Author:    toUserDTO(&comment.Author),
	}
}

func toLikeDTO(like *model.Like) *dto.LikeDTO {
	likeDTO := &dto.LikeDTO{}
	_ = copier.Copy(likeDTO, like)
	return likeDTO
}
