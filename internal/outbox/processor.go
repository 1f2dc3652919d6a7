package outbox

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type OutboxRepository interface {
	GetPendingMessages(ctx context.Context, querier domain.Querier, limit int) ([]domain.OutboxMessage, error)
	UpdateMessageStatus(ctx context.Context, querier domain.Querier, id string, status domain.OutboxMessageStatus) error
}

type Producer interface {
	Produce(ctx context.Context, topic, key string, value []byte) error
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(q domain.Querier) error) error
}

// Processor drains pending outbox messages into Kafka. Publication happens
// outside the request path, so a broker outage slows the audit fan-out but
// never fails a balance mutation.
type Processor struct {
	tx           txRunner
	outbox       OutboxRepository
	producer     Producer
	batchSize    int
	pollInterval time.Duration
	logger       *zap.Logger
}

func NewProcessor(
	tx txRunner,
	outbox OutboxRepository,
	producer Producer,
	batchSize int,
	pollInterval time.Duration,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		tx:           tx,
		outbox:       outbox,
		producer:     producer,
		batchSize:    batchSize,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Start blocks until ctx is cancelled, polling on every tick.
func (p *Processor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor stopping")
			return
		case <-ticker.C:
			if err := p.Drain(ctx); err != nil {
				p.logger.Error("failed to drain outbox", zap.Error(err))
			}
		}
	}
}

// Drain publishes one batch of pending messages. The row locks taken by
// GetPendingMessages hold until commit, so a message is published and
// marked sent by at most one poller.
func (p *Processor) Drain(ctx context.Context) error {
	return p.tx.WithinTx(ctx, func(q domain.Querier) error {
		messages, err := p.outbox.GetPendingMessages(ctx, q, p.batchSize)
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}

		p.logger.Debug("draining outbox messages", zap.Int("count", len(messages)))

		for _, msg := range messages {
			if err := p.producer.Produce(ctx, msg.Topic, msg.Key, msg.Payload); err != nil {
				// Leave the whole batch pending; the next tick retries.
				return err
			}
			if err := p.outbox.UpdateMessageStatus(ctx, q, msg.ID, domain.OutboxStatusSent); err != nil {
				return err
			}
			p.logger.Info("outbox message published",
				zap.String("message_id", msg.ID),
				zap.String("topic", msg.Topic),
			)
		}
		return nil
	})
}
