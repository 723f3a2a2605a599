package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	PostID    uint64    `gorm:"not null;index:idx_post_id"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create"`

	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:RESTRICT"`
	Post   Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (Comment) TableName() string {
	return "comments"
}
