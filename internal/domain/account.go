package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID                int64
	UserID            int64
	BankName          string
	BankAccountNumber string
	Balance           decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
