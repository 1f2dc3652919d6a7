package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceEventType string

const (
	BalanceEventDeposit    BalanceEventType = "DEPOSIT"
	BalanceEventWithdrawal BalanceEventType = "WITHDRAWAL"
	BalanceEventTransfer   BalanceEventType = "TRANSFER"
)

// BalanceEvent is the payload published for every committed money movement.
type BalanceEvent struct {
	EventID              string           `json:"event_id"`
	Type                 BalanceEventType `json:"type"`
	SourceAccountID      *int64           `json:"source_account_id,omitempty"`
	DestinationAccountID *int64           `json:"destination_account_id,omitempty"`
	TransactionID        *int64           `json:"transaction_id,omitempty"`
	Amount               decimal.Decimal  `json:"amount"`
	OccurredAt           time.Time        `json:"occurred_at"`
}
