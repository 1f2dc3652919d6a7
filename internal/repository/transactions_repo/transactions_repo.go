package transactions_repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type transactionRepository struct{}

func NewTransactionRepository() TransactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, querier domain.Querier, transaction *domain.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (source_account_id, destination_account_id, amount, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := querier.QueryRowContext(ctx, query,
		transaction.SourceAccountID, transaction.DestinationAccountID,
		transaction.Amount, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}
	return id, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, querier domain.Querier, id int64) (*domain.Transaction, error) {
	query := `
		SELECT id, source_account_id, destination_account_id, amount, created_at
		FROM transactions
		WHERE id = $1
	`
	transaction := &domain.Transaction{}
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&transaction.ID, &transaction.SourceAccountID, &transaction.DestinationAccountID,
		&transaction.Amount, &transaction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return transaction, nil
}

func (r *transactionRepository) List(ctx context.Context, querier domain.Querier) ([]domain.Transaction, error) {
	query := `
		SELECT id, source_account_id, destination_account_id, amount, created_at
		FROM transactions
		ORDER BY created_at DESC
	`
	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID, &transaction.SourceAccountID, &transaction.DestinationAccountID,
			&transaction.Amount, &transaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return transactions, nil
}
