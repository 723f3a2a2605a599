package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/oauth"
	"Atlania/internal/pkg/security"
	"Atlania/internal/pkg/util"
	"Atlania/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) (*dto.UserDTO, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, dto *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetOrCreateOAuthUser(ctx context.Context, identity *oauth.ExternalIdentity) (*model.User, error)
	GetUserInfo(ctx context.Context, caller *model.User) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo   repository.UserRepo
	sessionSvc SessionService
}

func NewUserService(userRepo repository.UserRepo, sessionSvc SessionService) UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		sessionSvc: sessionSvc,
	}
}

// Register 邮箱注册，未指定角色时为 reader
func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error) {
	email := strings.TrimSpace(regDTO.Email)
	if email == "" || regDTO.Password == "" {
		return nil, ErrParamInvalid
	}

	role := model.RoleReader
	if regDTO.Role != nil {
		role = model.Role(*regDTO.Role)
		if !role.IsValid() {
			return nil, ErrInvalidRole
		}
	}

	findUser, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if findUser != nil {
		return nil, ErrUserExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: &passwordHash,
		FullName:     regDTO.FullName,
		Avatar:       consts.DefaultAvatarURL,
		Role:         role,
		IsActive:     true,
	}
	if regDTO.Avatar != nil && *regDTO.Avatar != "" {
		user.Avatar = *regDTO.Avatar
	}
	if regDTO.IsActive != nil {
		user.IsActive = *regDTO.IsActive
	}

	// 并发注册同一邮箱时由唯一索引兜底
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	log.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return toUserDTO(user), nil
}

// Authenticate 邮箱不存在、未设置密码、密码错误都返回同一个错误
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if err = security.CheckPasswordHash(password, *user.PasswordHash); err != nil {
		if !errors.Is(err, security.ErrPasswordMismatch) {
			log.WarnContext(ctx, "stored password hash unusable", "user_id", user.ID, "err", err)
		}
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credential *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.Authenticate(ctx, credential.Email, credential.Password)
	if err != nil {
		return nil, err
	}
	return s.sessionSvc.IssueSession(ctx, user, 0)
}

func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	return s.sessionSvc.RevokeSession(ctx, token)
}

// GetOrCreateOAuthUser 先按 google_id 匹配，再按邮箱关联，最后新建无密码账号
func (s *UserServiceImpl) GetOrCreateOAuthUser(ctx context.Context, identity *oauth.ExternalIdentity) (*model.User, error) {
	if identity == nil || strings.TrimSpace(identity.Email) == "" {
		return nil, ErrOAuthEmailMissing
	}
	email := strings.TrimSpace(identity.Email)

	if identity.Subject != "" {
		user, err := s.userRepo.GetUserByGoogleID(ctx, identity.Subject)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}

	user, err := s.linkByEmail(ctx, email, identity.Subject)
	if err != nil || user != nil {
		return user, err
	}

	user = &model.User{
		Email:    email,
		FullName: util.PtrString(identity.Name),
		Avatar:   consts.DefaultAvatarURL,
		GoogleID: util.PtrString(identity.Subject),
		Role:     model.RoleReader,
		IsActive: true,
	}
	if identity.Picture != "" {
		user.Avatar = identity.Picture
	}

	err = s.userRepo.CreateUser(ctx, user)
	if err == nil {
		log.InfoContext(ctx, "user created from google login", "user_id", user.ID)
		return user, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// 并发的首次登录已经创建了同邮箱账号
	user, err = s.linkByEmail(ctx, email, identity.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserExist
	}
	return user, nil
}

// linkByEmail 邮箱已存在时补绑 google_id，已有绑定则保持不变
func (s *UserServiceImpl) linkByEmail(ctx context.Context, email, googleID string) (*model.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	if user.GoogleID != nil || googleID == "" {
		return user, nil
	}

	linked, err := s.userRepo.LinkGoogleID(ctx, user.ID, googleID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user, nil
		}
		return nil, err
	}
	if linked {
		user.GoogleID = &googleID
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, caller *model.User) (*dto.UserDTO, error) {
	if err := RequireActive(caller); err != nil {
		return nil, err
	}
	return toUserDTO(caller), nil
}
