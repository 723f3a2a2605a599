package repository

import (
	"Atlania/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	LinkGoogleID(ctx context.Context, id uint64, googleID string) (bool, error)
	UpdateUserRole(ctx context.Context, id uint64, role model.Role) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *UserRepoImpl) GetUserByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return s.first(ctx, "google_id = ?", googleID)
}

func (s *UserRepoImpl) first(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).Where(query, arg).First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return user, nil
}

func (s *UserRepoImpl) ListUsers(ctx context.Context, offset, limit int) ([]*model.User, error) {
	users := make([]*model.User, 0)
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser 邮箱或 google_id 冲突时返回 gorm.ErrDuplicatedKey
func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if IsDuplicateError(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

// LinkGoogleID 仅在尚未绑定时写入，返回是否写入成功
func (s *UserRepoImpl) LinkGoogleID(ctx context.Context, id uint64, googleID string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND google_id IS NULL", id).
		Update("google_id", googleID)
	if result.Error != nil {
		if IsDuplicateError(result.Error) {
			return false, gorm.ErrDuplicatedKey
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *UserRepoImpl) UpdateUserRole(ctx context.Context, id uint64, role model.Role) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}
