package model

import (
	"time"
)

// Like (user_id, post_id) 唯一，由唯一索引保证
type Like struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_like_user_post,priority:1"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_like_user_post,priority:2;index:idx_like_post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
	Post Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (Like) TableName() string {
	return "likes"
}

// LikeCount 按文章聚合的点赞数
type LikeCount struct {
	PostID uint64
	Count  int64
}
