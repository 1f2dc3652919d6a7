package users_repo

import (
	"context"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, querier domain.Querier, user *domain.User) (int64, error)
	GetByID(ctx context.Context, querier domain.Querier, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, querier domain.Querier, email string) (*domain.User, error)
	List(ctx context.Context, querier domain.Querier) ([]domain.User, error)
	Update(ctx context.Context, querier domain.Querier, user *domain.User) error
	Delete(ctx context.Context, querier domain.Querier, id int64) error
}
