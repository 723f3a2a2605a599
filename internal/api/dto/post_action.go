package dto

import "time"

// CommentCreateDTO 发表评论
type CommentCreateDTO struct {
	Content string `json:"content" binding:"required" validate:"required,max=5000"`
	PostID  uint64 `json:"post_id" binding:"required" validate:"required,min=1"`
}

// CommentDTO 评论
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	PostID    uint64    `json:"post_id"`
	AuthorID  uint64    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	Author    *UserDTO  `json:"author,omitempty"`
}

// LikeDTO 点赞
type LikeDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	PostID    uint64    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
