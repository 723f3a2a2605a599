package service

import (
	"Atlania/internal/model"
)

// Gate 对已解析身份的准入检查
type Gate func(caller *model.User) error

// RequireActive 账号需处于启用状态
func RequireActive(caller *model.User) error {
	if caller == nil {
		return ErrInvalidToken
	}
	if !caller.IsActive {
		return ErrUserInactive
	}
	return nil
}

// RequireAdmin 仅管理员
func RequireAdmin(caller *model.User) error {
	if caller == nil {
		return ErrInvalidToken
	}
	if !caller.Role.CanModerate() {
		return ErrInsufficientPrivilege
	}
	return nil
}

// RequireWriter 管理员或作者
func RequireWriter(caller *model.User) error {
	if caller == nil {
		return ErrInvalidToken
	}
	if !caller.Role.CanWrite() {
		return ErrInsufficientPrivilege
	}
	return nil
}

// Authorize 依次执行，返回第一个失败
func Authorize(caller *model.User, gates ...Gate) error {
	for _, gate := range gates {
		if err := gate(caller); err != nil {
			return err
		}
	}
	return nil
}
