package accounts_repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

const (
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

type accountRepository struct{}

func NewAccountRepository() AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(ctx context.Context, querier domain.Querier, account *domain.Account) (int64, error) {
	query := `
		INSERT INTO accounts (user_id, bank_name, bank_account_number, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	now := time.Now()
	err := querier.QueryRowContext(ctx, query,
		account.UserID, account.BankName, account.BankAccountNumber, account.Balance,
		now, now,
	).Scan(&id)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == foreignKeyViolation {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to create account for user %d: %w", account.UserID, err)
	}
	return id, nil
}

func (r *accountRepository) GetByID(ctx context.Context, querier domain.Querier, id int64) (*domain.Account, error) {
	return r.get(ctx, querier, id, false)
}

func (r *accountRepository) GetByIDForUpdate(ctx context.Context, querier domain.Querier, id int64) (*domain.Account, error) {
	return r.get(ctx, querier, id, true)
}

func (r *accountRepository) get(ctx context.Context, querier domain.Querier, id int64, forUpdate bool) (*domain.Account, error) {
	query := `
		SELECT id, user_id, bank_name, bank_account_number, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}
	account := &domain.Account{}
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.UserID, &account.BankName, &account.BankAccountNumber,
		&account.Balance, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return account, nil
}

func (r *accountRepository) List(ctx context.Context, querier domain.Querier) ([]domain.Account, error) {
	query := `
		SELECT id, user_id, bank_name, bank_account_number, balance, created_at, updated_at
		FROM accounts
		ORDER BY id
	`
	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID, &account.UserID, &account.BankName, &account.BankAccountNumber,
			&account.Balance, &account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, querier domain.Querier, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET user_id = $1, bank_name = $2, bank_account_number = $3, updated_at = $4
		WHERE id = $5
	`
	res, err := querier.ExecContext(ctx, query,
		account.UserID, account.BankName, account.BankAccountNumber, time.Now(), account.ID,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == foreignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to update account %d: %w", account.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) ApplyBalanceChange(ctx context.Context, querier domain.Querier, id int64, delta decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = $2
		WHERE id = $3
	`
	res, err := querier.ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		var pgErr *pq.Error
		// CHECK (balance >= 0) rejects any debit past zero.
		if errors.As(err, &pgErr) && string(pgErr.Code) == checkViolation {
			return domain.ErrInsufficientFunds
		}
		return fmt.Errorf("failed to update balance for account %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, querier domain.Querier, id int64) error {
	res, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == foreignKeyViolation {
			return domain.ErrAccountInUse
		}
		return fmt.Errorf("failed to delete account %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
