package users_repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

const uniqueViolation = "23505"

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, querier domain.Querier, user *domain.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password, identity_type, identity_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	now := time.Now()
	err := querier.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Password,
		user.IdentityType, user.IdentityNumber, user.Address,
		now, now,
	).Scan(&id)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == uniqueViolation {
			return 0, domain.ErrEmailExists
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (r *userRepository) GetByID(ctx context.Context, querier domain.Querier, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, email, password, identity_type, identity_number, address, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	user := &domain.User{}
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.IdentityType, &user.IdentityNumber, &user.Address,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, querier domain.Querier, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password, identity_type, identity_number, address, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	user := &domain.User{}
	err := querier.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password,
		&user.IdentityType, &user.IdentityNumber, &user.Address,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, querier domain.Querier) ([]domain.User, error) {
	query := `
		SELECT id, name, email, password, identity_type, identity_number, address, created_at, updated_at
		FROM users
		ORDER BY id
	`
	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Password,
			&user.IdentityType, &user.IdentityNumber, &user.Address,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, querier domain.Querier, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, identity_type = $3, identity_number = $4, address = $5, updated_at = $6
		WHERE id = $7
	`
	res, err := querier.ExecContext(ctx, query,
		user.Name, user.Email, user.IdentityType, user.IdentityNumber, user.Address,
		time.Now(), user.ID,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == uniqueViolation {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, querier domain.Querier, id int64) error {
	res, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		var pgErr *pq.Error
		// Deleting a user cascades to their accounts; an account that
		// already took part in a transfer is protected by RESTRICT.
		if errors.As(err, &pgErr) && string(pgErr.Code) == "23503" {
			return domain.ErrAccountInUse
		}
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
