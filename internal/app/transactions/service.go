package transactions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/repository/accounts_repo"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/repository/outbox_repo"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/repository/transactions_repo"
)

type TransactionService interface {
	Transfer(ctx context.Context, sourceID, destinationID int64, amount decimal.Decimal) (*domain.Transaction, error)
	Get(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(q domain.Querier) error) error
}

type transactionService struct {
	db           domain.Querier
	tx           txRunner
	accounts     accounts_repo.AccountRepository
	transactions transactions_repo.TransactionRepository
	outbox       outbox_repo.OutboxRepository
	topic        string
	logger       *zap.Logger
}

func NewTransactionService(
	db domain.Querier,
	tx txRunner,
	accounts accounts_repo.AccountRepository,
	transactions transactions_repo.TransactionRepository,
	outbox outbox_repo.OutboxRepository,
	topic string,
	logger *zap.Logger,
) TransactionService {
	return &transactionService{
		db:           db,
		tx:           tx,
		accounts:     accounts,
		transactions: transactions,
		outbox:       outbox,
		topic:        topic,
		logger:       logger,
	}
}

// Transfer moves amount between two accounts and appends the audit record,
// all in one database transaction. Both rows are locked in ascending id
// order so two opposing transfers between the same pair cannot deadlock.
func (s *transactionService) Transfer(ctx context.Context, sourceID, destinationID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if sourceID == destinationID {
		return nil, domain.ErrSameAccount
	}

	var transfer *domain.Transaction
	err := s.tx.WithinTx(ctx, func(q domain.Querier) error {
		first, second := sourceID, destinationID
		if second < first {
			first, second = second, first
		}

		locked := make(map[int64]*domain.Account, 2)
		for _, id := range []int64{first, second} {
			account, err := s.accounts.GetByIDForUpdate(ctx, q, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}

		source := locked[sourceID]
		if source.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		if err := s.accounts.ApplyBalanceChange(ctx, q, sourceID, amount.Neg()); err != nil {
			return err
		}
		if err := s.accounts.ApplyBalanceChange(ctx, q, destinationID, amount); err != nil {
			return err
		}

		id, err := s.transactions.Create(ctx, q, &domain.Transaction{
			SourceAccountID:      sourceID,
			DestinationAccountID: destinationID,
			Amount:               amount,
		})
		if err != nil {
			return err
		}

		transfer, err = s.transactions.GetByID(ctx, q, id)
		if err != nil {
			return fmt.Errorf("failed to read back transaction %d: %w", id, err)
		}

		return s.appendEvent(ctx, q, transfer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transfer completed",
		zap.Int64("transaction_id", transfer.ID),
		zap.Int64("source_account_id", sourceID),
		zap.Int64("destination_account_id", destinationID),
		zap.String("amount", amount.String()),
	)
	return transfer, nil
}

func (s *transactionService) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.transactions.GetByID(ctx, s.db, id)
}

func (s *transactionService) List(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions.List(ctx, s.db)
}

func (s *transactionService) appendEvent(ctx context.Context, q domain.Querier, transfer *domain.Transaction) error {
	event := domain.BalanceEvent{
		EventID:              uuid.NewString(),
		Type:                 domain.BalanceEventTransfer,
		SourceAccountID:      &transfer.SourceAccountID,
		DestinationAccountID: &transfer.DestinationAccountID,
		TransactionID:        &transfer.ID,
		Amount:               transfer.Amount,
		OccurredAt:           time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal balance event: %w", err)
	}

	return s.outbox.CreateMessage(ctx, q, &domain.OutboxMessage{
		ID:        event.EventID,
		Topic:     s.topic,
		Key:       string(domain.BalanceEventTransfer),
		Payload:   payload,
		Status:    domain.OutboxStatusPending,
		CreatedAt: event.OccurredAt,
	})
}
