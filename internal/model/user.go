package model

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_email"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	FullName     *string   `gorm:"type:varchar(255)"`
	Avatar       string    `gorm:"type:varchar(512);not null;default:'/avatars/default.jpg'"`
	GoogleID     *string   `gorm:"type:varchar(255);uniqueIndex:idx_google_id"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'reader'"`
	IsActive     bool      `gorm:"type:tinyint(1);not null;default:1"`
	CreatedAt    time.Time `gorm:"autoCreateTime;<-:create"`
}

func (User) TableName() string {
	return "users"
}

// HasPassword 是否可以走账号密码登录
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// IsAdmin 兼容旧字段 is_admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
