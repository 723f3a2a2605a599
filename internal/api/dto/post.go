package dto

import "time"

// PostCreateDTO 新建文章，slug 为空时由标题生成
type PostCreateDTO struct {
	Title      string  `json:"title" binding:"required" validate:"required,max=255"`
	Slug       string  `json:"slug" validate:"max=255"`
	Excerpt    *string `json:"excerpt,omitempty"`
	Content    *string `json:"content,omitempty"`
	Image      *string `json:"image,omitempty" validate:"omitempty,max=512"`
	ReadTime   *string `json:"read_time,omitempty" validate:"omitempty,max=50"`
	Featured   bool    `json:"featured"`
	CategoryID *uint64 `json:"category_id,omitempty"`
	Status     string  `json:"status" validate:"omitempty,oneof=draft pending published rejected"`
}

// PostListQuery 公开列表查询
type PostListQuery struct {
	PageQuery
	CategoryID *uint64 `form:"category_id"`
	Featured   *bool   `form:"featured"`
}

// UpdatePostStatusDTO 审核状态，兼容 query 与 JSON
type UpdatePostStatusDTO struct {
	Status string `json:"status" form:"status" binding:"required"`
}

// PostDTO 文章
type PostDTO struct {
	ID         uint64        `json:"id"`
	Title      string        `json:"title"`
	Slug       string        `json:"slug"`
	Excerpt    *string       `json:"excerpt"`
	Content    *string       `json:"content"`
	Image      *string       `json:"image"`
	ReadTime   *string       `json:"read_time"`
	Featured   bool          `json:"featured"`
	Status     string        `json:"status"`
	Published  bool          `json:"published"`
	AuthorID   uint64        `json:"author_id"`
	CategoryID *uint64       `json:"category_id"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Author     *UserDTO      `json:"author"`
	Category   *CategoryDTO  `json:"category"`
	LikesCount int64         `json:"likes_count"`
	Comments   []*CommentDTO `json:"comments"`
}

// CategoryDTO 分类
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
