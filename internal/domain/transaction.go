package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only audit record of a completed transfer. Rows
// are never updated or deleted once written.
type Transaction struct {
	ID                   int64
	SourceAccountID      int64
	DestinationAccountID int64
	Amount               decimal.Decimal
	CreatedAt            time.Time
}
