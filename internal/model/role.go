package model

// Role 用户角色，取值封闭
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWriter Role = "writer"
	RoleReader Role = "reader"
)

// IsValid 是否为已知角色
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleWriter, RoleReader:
		return true
	}
	return false
}

// CanModerate 审核文章、管理用户
func (r Role) CanModerate() bool {
	return r == RoleAdmin
}

// CanWrite 发布文章
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleWriter
}
