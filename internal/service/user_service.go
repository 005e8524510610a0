package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"desaweb/internal/auth"
	apperr "desaweb/internal/errors"
	"desaweb/internal/model"
	"desaweb/internal/repository"
)

const minPasswordLength = 8

// CreateUserInput carries the fields of a new admin account.
type CreateUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=100,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin editor"`
}

// UserService manages admin accounts.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, actorID, id uint) error
	ChangePassword(ctx context.Context, id uint, password string) error
}

type userService struct {
	repo repository.UserRepository
	log  *zap.Logger
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, log *zap.Logger) UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{repo: repo, log: log}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = model.RoleEditor
	}
	if !model.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrInvalidInput, in.Role)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperr.ErrInvalidInput, minPasswordLength)
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		return nil, apperr.ErrUserAlreadyExists
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// Delete removes account id. An account cannot delete itself.
func (s *userService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return fmt.Errorf("%w: cannot delete your own account", apperr.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info("user deleted", zap.Uint("user_id", id), zap.Uint("actor_id", actorID))
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, id uint, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperr.ErrInvalidInput, minPasswordLength)
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// notFound converts gorm.ErrRecordNotFound into the domain error and leaves
// anything else untouched.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
