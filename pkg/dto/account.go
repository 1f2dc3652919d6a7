package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type CreateAccountRequest struct {
	UserID            int64           `json:"user_id"`
	BankName          string          `json:"bank_name"`
	BankAccountNumber string          `json:"bank_account_number"`
	Balance           decimal.Decimal `json:"balance"`
}

func (r CreateAccountRequest) IsValid() error {
	var errs []error
	if r.UserID <= 0 {
		errs = append(errs, fmt.Errorf("user_id is required"))
	}
	if strings.TrimSpace(r.BankName) == "" {
		errs = append(errs, fmt.Errorf("bank_name is required"))
	}
	if strings.TrimSpace(r.BankAccountNumber) == "" {
		errs = append(errs, fmt.Errorf("bank_account_number is required"))
	}
	if r.Balance.Sign() < 0 {
		errs = append(errs, fmt.Errorf("balance must not be negative"))
	}
	return errors.Join(errs...)
}

type UpdateAccountRequest struct {
	UserID            int64  `json:"user_id"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
}

func (r UpdateAccountRequest) IsValid() error {
	var errs []error
	if r.UserID <= 0 {
		errs = append(errs, fmt.Errorf("user_id is required"))
	}
	if strings.TrimSpace(r.BankName) == "" {
		errs = append(errs, fmt.Errorf("bank_name is required"))
	}
	if strings.TrimSpace(r.BankAccountNumber) == "" {
		errs = append(errs, fmt.Errorf("bank_account_number is required"))
	}
	return errors.Join(errs...)
}

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r AmountRequest) IsValid() error {
	if r.Amount.Sign() <= 0 {
		return fmt.Errorf("amount must be a positive number")
	}
	return nil
}

type AccountResponse struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	BankName          string          `json:"bank_name"`
	BankAccountNumber string          `json:"bank_account_number"`
	Balance           decimal.Decimal `json:"balance"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:                account.ID,
		UserID:            account.UserID,
		BankName:          account.BankName,
		BankAccountNumber: account.BankAccountNumber,
		Balance:           account.Balance,
		CreatedAt:         account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         account.UpdatedAt.Format(time.RFC3339),
	}
}
