package users

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/repository/users_repo"
)

type UserService interface {
	Create(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	db     domain.Querier
	users  users_repo.UserRepository
	logger *zap.Logger
}

func NewUserService(db domain.Querier, users users_repo.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		db:     db,
		users:  users,
		logger: logger,
	}
}

func (s *userService) Create(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	id, err := s.users.Create(ctx, s.db, user)
	if err != nil {
		return nil, err
	}

	created, err := s.users.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back created user %d: %w", id, err)
	}

	s.logger.Info("user created", zap.Int64("user_id", id), zap.String("email", created.Email))
	return created, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, s.db, id)
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx, s.db)
}

func (s *userService) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.users.Update(ctx, s.db, user); err != nil {
		return nil, err
	}

	updated, err := s.users.GetByID(ctx, s.db, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back updated user %d: %w", user.ID, err)
	}

	s.logger.Info("user updated", zap.Int64("user_id", user.ID))
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
