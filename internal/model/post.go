package model

import (
	"time"
)

// PostStatus 文章审核状态
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPending   PostStatus = "pending"
	PostStatusPublished PostStatus = "published"
	PostStatusRejected  PostStatus = "rejected"
)

// IsValid 是否为已知状态
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusPending, PostStatusPublished, PostStatusRejected:
		return true
	}
	return false
}

// InitialPostStatus 新建文章的状态：只允许作者显式选择草稿，其余一律进入待审核
func InitialPostStatus(requested PostStatus) PostStatus {
	if requested == PostStatusDraft {
		return PostStatusDraft
	}
	return PostStatusPending
}

type Post struct {
	ID         uint64     `gorm:"primaryKey"`
	Title      string     `gorm:"type:varchar(255);not null"`
	Slug       string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_slug"`
	Excerpt    *string    `gorm:"type:text"`
	Content    *string    `gorm:"type:longtext"`
	Image      *string    `gorm:"type:varchar(512)"`
	ReadTime   *string    `gorm:"type:varchar(50)"`
	Featured   bool       `gorm:"type:tinyint(1);not null;default:0;index:idx_featured"`
	Status     PostStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_status"`
	Published  bool       `gorm:"type:tinyint(1);not null;default:0"`
	AuthorID   uint64     `gorm:"not null;index:idx_author_id"`
	CategoryID *uint64    `gorm:"index:idx_category_id"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// 关联关系
	Author   User      `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:RESTRICT"`
	Category *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
}

func (Post) TableName() string {
	return "posts"
}

// SetStatus 切换状态并同步旧的 published 字段
func (p *Post) SetStatus(status PostStatus) {
	p.Status = status
	p.Published = status == PostStatusPublished
}

// IsPublished 是否对外可见
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
