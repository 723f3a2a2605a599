package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Email    string  `json:"email" binding:"required" validate:"required,email,max=255"`
	Password string  `json:"password" binding:"required" validate:"required,max=128"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,max=512"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin writer reader"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// CredentialDTO 登录凭证，表单登录时邮箱放在 username 字段
type CredentialDTO struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserDTO 用户
type UserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenDTO 会话令牌
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateRoleDTO 管理员修改角色，兼容 query 与 JSON
type UpdateRoleDTO struct {
	Role string `json:"role" form:"role" binding:"required" validate:"required,oneof=admin writer reader"`
}

// PageQuery 分页参数
type PageQuery struct {
	Skip  int  `form:"skip" validate:"min=0"`
	Limit *int `form:"limit" validate:"omitempty,min=0"`
}

// LimitOr 未传 limit 时使用默认值
func (q *PageQuery) LimitOr(def int) int {
	if q.Limit == nil {
		return def
	}
	return *q.Limit
}
