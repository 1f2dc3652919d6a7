package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrIncorrectCredentials = errors.New("incorrect email or password")

	ErrAccountNotFound = errors.New("account not found")
	ErrAccountNotEmpty = errors.New("account balance must be zero before deletion")
	ErrAccountInUse    = errors.New("account is referenced by transactions")

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSameAccount         = errors.New("source and destination accounts must differ")
)
