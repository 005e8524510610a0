package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"desaweb/internal/auth"
	apperr "desaweb/internal/errors"
	"desaweb/internal/model"
	"desaweb/internal/repository"
)

// LoginResult is a freshly issued session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal auth.Principal
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions *auth.SessionManager
	log      *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions *auth.SessionManager, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{userRepo: userRepo, sessions: sessions, log: log}
}

// Login checks identifier (username or email) and password and issues a
// session token. Unknown user and wrong password both yield
// ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		s.log.Error("stored password hash is unreadable", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, apperr.ErrInvalidCredentials
	}
	if !ok {
		return nil, apperr.ErrInvalidCredentials
	}

	p := PrincipalOf(user)
	token, expiresAt, err := s.sessions.Issue(p)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Principal: p}, nil
}

// PrincipalOf returns the session identity of user.
func PrincipalOf(user *model.User) auth.Principal {
	return auth.Principal{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
	}
}
