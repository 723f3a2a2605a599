package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/repository"
	"context"
	log "log/slog"
)

// UserRolesService 管理员的用户管理
type UserRolesService interface {
	ListUsers(ctx context.Context, caller *model.User, skip, limit int) ([]*dto.UserDTO, error)
	UpdateUserRole(ctx context.Context, caller *model.User, userID uint64, role model.Role) (*dto.UserDTO, error)
}

type UserRolesServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserRolesService(userRepo repository.UserRepo) UserRolesService {
	return &UserRolesServiceImpl{userRepo: userRepo}
}

func (s *UserRolesServiceImpl) ListUsers(ctx context.Context, caller *model.User, skip, limit int) ([]*dto.UserDTO, error) {
	if err := Authorize(caller, RequireActive, RequireAdmin); err != nil {
		return nil, err
	}
	if skip < 0 {
		return nil, ErrParamInvalid
	}
	users, err := s.userRepo.ListUsers(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		res = append(res, toUserDTO(user))
	}
	return res, nil
}

func (s *UserRolesServiceImpl) UpdateUserRole(ctx context.Context, caller *model.User, userID uint64, role model.Role) (*dto.UserDTO, error) {
	if err := Authorize(caller, RequireActive, RequireAdmin); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = s.userRepo.UpdateUserRole(ctx, userID, role); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "user role changed", "user_id", userID, "from", user.Role, "to", role, "admin_id", caller.ID)
	user.Role = role
	return toUserDTO(user), nil
}
