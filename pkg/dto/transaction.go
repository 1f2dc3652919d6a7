package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type TransferRequest struct {
	SourceAccountID      int64           `json:"source_account_id"`
	DestinationAccountID int64           `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
}

func (r TransferRequest) IsValid() error {
	var errs []error
	if r.SourceAccountID <= 0 {
		errs = append(errs, fmt.Errorf("source_account_id is required"))
	}
	if r.DestinationAccountID <= 0 {
		errs = append(errs, fmt.Errorf("destination_account_id is required"))
	}
	if r.Amount.Sign() <= 0 {
		errs = append(errs, fmt.Errorf("amount must be a positive number"))
	}
	return errors.Join(errs...)
}

type TransactionResponse struct {
	ID                   int64           `json:"id"`
	SourceAccountID      int64           `json:"source_account_id"`
	DestinationAccountID int64           `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	CreatedAt            string          `json:"created_at"`
}

func NewTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                   transaction.ID,
		SourceAccountID:      transaction.SourceAccountID,
		DestinationAccountID: transaction.DestinationAccountID,
		Amount:               transaction.Amount,
		CreatedAt:            transaction.CreatedAt.Format(time.RFC3339),
	}
}
