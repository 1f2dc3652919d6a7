package transactions_repo

import (
	"context"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

// TransactionRepository is append-only: transactions are an audit trail and
// expose no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, querier domain.Querier, transaction *domain.Transaction) (int64, error)
	GetByID(ctx context.Context, querier domain.Querier, id int64) (*domain.Transaction, error)
	List(ctx context.Context, querier domain.Querier) ([]domain.Transaction, error)
}
