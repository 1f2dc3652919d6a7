package accounts

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
)

type AccountService interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Get(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
	Deposit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error)
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(q domain.Querier) error) error
}

type accountService struct {
	db       domain.Querier
	tx       txRunner
	accounts accounts_repo.AccountRepository
	outbox   outbox_repo.OutboxRepository
	topic    string
	logger   *zap.Logger
}

func NewAccountService(
	db domain.Querier,
	tx txRunner,
	accounts accounts_repo.AccountRepository,
	outbox outbox_repo.OutboxRepository,
	topic string,
	logger *zap.Logger,
) AccountService {
	return &accountService{
		db:       db,
		tx:       tx,
		accounts: accounts,
		outbox:   outbox,
		topic:    topic,
		logger:   logger,
	}
}

func (s *accountService) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if account.Balance.Sign() < 0 {
		return nil, domain.ErrInvalidAmount
	}

	id, err := s.accounts.Create(ctx, s.db, account)
	if err != nil {
		return nil, err
	}

	created, err := s.accounts.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back created account %d: %w", id, err)
	}

	s.logger.Info("account created",
		zap.Int64("account_id", id),
		zap.Int64("user_id", created.UserID),
		zap.String("balance", created.Balance.String()),
	)
	return created, nil
}

func (s *accountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, s.db, id)
}

func (s *accountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx, s.db)
}

func (s *accountService) Update(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := s.accounts.Update(ctx, s.db, account); err != nil {
		return nil, err
	}

	updated, err := s.accounts.GetByID(ctx, s.db, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back updated account %d: %w", account.ID, err)
	}

	s.logger.Info("account updated", zap.Int64("account_id", account.ID))
	return updated, nil
}

// Delete refuses accounts holding money. Draining the balance first is the
// caller's job; silently dropping funds would break the ledger.
func (s *accountService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(q domain.Querier) error {
		account, err := s.accounts.GetByIDForUpdate(ctx, q, id)
		if err != nil {
			return err
		}
		if !account.Balance.IsZero() {
			return domain.ErrAccountNotEmpty
		}
		return s.accounts.Delete(ctx, q, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("account deleted", zap.Int64("account_id", id))
	return nil
}

func (s *accountService) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	if amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var updated *domain.Account
	err := s.tx.WithinTx(ctx, func(q domain.Querier) error {
		account, err := s.accounts.GetByIDForUpdate(ctx, q, id)
		if err != nil {
			return err
		}

		if err := s.accounts.ApplyBalanceChange(ctx, q, id, amount); err != nil {
			return err
		}

		account.Balance = account.Balance.Add(amount)
		updated = account

		return s.appendEvent(ctx, q, domain.BalanceEventDeposit, nil, &id, amount)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("deposit applied",
		zap.Int64("account_id", id),
		zap.String("amount", amount.String()),
		zap.String("balance", updated.Balance.String()),
	)
	return updated, nil
}

func (s *accountService) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	if amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var updated *domain.Account
	err := s.tx.WithinTx(ctx, func(q domain.Querier) error {
		// The row lock makes the funds check and the debit one atomic
		// step with respect to other mutators of this account.
		account, err := s.accounts.GetByIDForUpdate(ctx, q, id)
		if err != nil {
			return err
		}
		if account.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}

		if err := s.accounts.ApplyBalanceChange(ctx, q, id, amount.Neg()); err != nil {
			return err
		}

		account.Balance = account.Balance.Sub(amount)
		updated = account

		return s.appendEvent(ctx, q, domain.BalanceEventWithdrawal, &id, nil, amount)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("withdrawal applied",
		zap.Int64("account_id", id),
		zap.String("amount", amount.String()),
		zap.String("balance", updated.Balance.String()),
	)
	return updated, nil
}

func (s *accountService) appendEvent(ctx context.Context, q domain.Querier, eventType domain.BalanceEventType, sourceID, destinationID *int64, amount decimal.Decimal) error {
	event := domain.BalanceEvent{
		EventID:              uuid.NewString(),
		Type:                 eventType,
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		OccurredAt:           time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal balance event: %w", err)
	}

	return s.outbox.CreateMessage(ctx, q, &domain.OutboxMessage{
		ID:        event.EventID,
		Topic:     s.topic,
		Key:       string(eventType),
		Payload:   payload,
		Status:    domain.OutboxStatusPending,
		CreatedAt: event.OccurredAt,
	})
}
