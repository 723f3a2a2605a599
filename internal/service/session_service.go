package service

import (
	"Atlania/internal/api/dto"
	"Atlania/internal/model"
	"Atlania/internal/pkg/consts"
	"Atlania/internal/pkg/security"
	"Atlania/internal/repository"
	"context"
	"errors"
	"time"
)

const TokenTypeBearer = "bearer"

type SessionService interface {
	IssueSession(ctx context.Context, user *model.User, lifetime time.Duration) (*dto.TokenDTO, error)
	ValidateSession(ctx context.Context, token string) (*model.User, error)
	RevokeSession(ctx context.Context, token string) error
}

type sessionServiceImpl struct {
	codec    *security.TokenCodec
	userRepo repository.UserRepo
	store    KVStore
}

func NewSessionService(codec *security.TokenCodec, userRepo repository.UserRepo, store KVStore) SessionService {
	return &sessionServiceImpl{
		codec:    codec,
		userRepo: userRepo,
		store:    store,
	}
}

// IssueSession 签发令牌，lifetime <= 0 时使用配置的默认有效期
func (s *sessionServiceImpl) IssueSession(ctx context.Context, user *model.User, lifetime time.Duration) (*dto.TokenDTO, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUserNotFound
	}
	token, err := s.codec.GenerateToken(user.ID, lifetime)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
	}, nil
}

// ValidateSession 令牌无效、已吊销或用户不存在统一返回 ErrInvalidToken
func (s *sessionServiceImpl) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.codec.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	revoked, err := s.store.GetValue(ctx, consts.RevokedTokenKey+signature)
	if err != nil {
		return nil, err
	}
	if revoked != "" {
		return nil, ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// RevokeSession 吊销到令牌自然过期为止
func (s *sessionServiceImpl) RevokeSession(ctx context.Context, token string) error {
	claims, err := s.codec.ValidateToken(token)
	if err != nil {
		if errors.Is(err, security.ErrInvalidToken) {
			return ErrInvalidToken
		}
		return err
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.store.SetWithExpiration(ctx, consts.RevokedTokenKey+signature, "1", ttl)
}
