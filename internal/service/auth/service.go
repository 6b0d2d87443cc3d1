package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
	"github.com/campfirehq/youthorg-api/pkg/auth"
	apperrors "github.com/campfirehq/youthorg-api/pkg/errors"
)

type Service struct {
	users repository.UserRepository
	jwt   auth.JWTService
}

func NewService(users repository.UserRepository, jwt auth.JWTService) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}
	if user.Status != model.UserStatusActive {
		return nil, apperrors.Unauthorized(fmt.Errorf("account disabled"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	return s.issueTokens(user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	userID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("user no longer exists"))
	}
	if user.Status != model.UserStatusActive {
		return nil, apperrors.Unauthorized(fmt.Errorf("account disabled"))
	}

	return s.issueTokens(user)
}

func (s *Service) ValidateToken(token string) (*auth.TokenClaims, error) {
	return s.jwt.ValidateToken(token)
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Role:         user.Role,
	}, nil
}
