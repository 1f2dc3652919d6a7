package accounts_repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, querier domain.Querier, account *domain.Account) (int64, error)
	GetByID(ctx context.Context, querier domain.Querier, id int64) (*domain.Account, error)
	// GetByIDForUpdate locks the account row for the duration of the
	// caller's transaction. Every balance mutation must go through it.
	GetByIDForUpdate(ctx context.Context, querier domain.Querier, id int64) (*domain.Account, error)
	List(ctx context.Context, querier domain.Querier) ([]domain.Account, error)
	Update(ctx context.Context, querier domain.Querier, account *domain.Account) error
	ApplyBalanceChange(ctx context.Context, querier domain.Querier, id int64, delta decimal.Decimal) error
	Delete(ctx context.Context, querier domain.Querier, id int64) error
}
