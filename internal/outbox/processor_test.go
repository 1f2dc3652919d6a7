package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type fakeRunner struct {
	rollbacks int
}

func (r *fakeRunner) WithinTx(_ context.Context, fn func(q domain.Querier) error) error {
	if err := fn(nil); err != nil {
		r.rollbacks++
		return err
	}
	return nil
}

type fakeOutboxRepo struct {
	messages map[string]*domain.OutboxMessage
}

func newFakeOutboxRepo(messages ...domain.OutboxMessage) *fakeOutboxRepo {
	repo := &fakeOutboxRepo{messages: make(map[string]*domain.OutboxMessage)}
	for _, msg := range messages {
		copied := msg
		repo.messages[msg.ID] = &copied
	}
	return repo
}

func (r *fakeOutboxRepo) GetPendingMessages(_ context.Context, _ domain.Querier, limit int) ([]domain.OutboxMessage, error) {
	var pending []domain.OutboxMessage
	for _, msg := range r.messages {
		if msg.Status == domain.OutboxStatusPending {
			pending = append(pending, *msg)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (r *fakeOutboxRepo) UpdateMessageStatus(_ context.Context, _ domain.Querier, id string, status domain.OutboxMessageStatus) error {
	msg, ok := r.messages[id]
	if !ok {
		return errors.New("message not found")
	}
	msg.Status = status
	return nil
}

type fakeProducer struct {
	produced []string
	err      error
}

func (p *fakeProducer) Produce(_ context.Context, _ string, _ string, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.produced = append(p.produced, string(value))
	return nil
}

func pendingMessage(id string) domain.OutboxMessage {
	return domain.OutboxMessage{
		ID:        id,
		Topic:     "balance_events",
		Key:       "DEPOSIT",
		Payload:   []byte(`{"event_id":"` + id + `"}`),
		Status:    domain.OutboxStatusPending,
		CreatedAt: time.Now(),
	}
}

func TestDrainPublishesAndMarksSent(t *testing.T) {
	repo := newFakeOutboxRepo(pendingMessage("m1"), pendingMessage("m2"))
	producer := &fakeProducer{}
	processor := NewProcessor(&fakeRunner{}, repo, producer, 10, time.Second, zap.NewNop())

	if err := processor.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() err=%v", err)
	}

	if len(producer.produced) != 2 {
		t.Fatalf("produced=%d want=2", len(producer.produced))
	}
	for id, msg := range repo.messages {
		if msg.Status != domain.OutboxStatusSent {
			t.Fatalf("message %s status=%s want=SENT", id, msg.Status)
		}
	}
}

func TestDrainRespectsBatchSize(t *testing.T) {
	repo := newFakeOutboxRepo(pendingMessage("m1"), pendingMessage("m2"), pendingMessage("m3"))
	producer := &fakeProducer{}
	processor := NewProcessor(&fakeRunner{}, repo, producer, 2, time.Second, zap.NewNop())

	if err := processor.Drain(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(producer.produced) != 2 {
		t.Fatalf("produced=%d want=2", len(producer.produced))
	}
}

func TestDrainLeavesBatchPendingOnProducerFailure(t *testing.T) {
	repo := newFakeOutboxRepo(pendingMessage("m1"))
	producer := &fakeProducer{err: errors.New("broker unavailable")}
	runner := &fakeRunner{}
	processor := NewProcessor(runner, repo, producer, 10, time.Second, zap.NewNop())

	if err := processor.Drain(context.Background()); err == nil {
		t.Fatal("Drain() expected error")
	}
	if runner.rollbacks != 1 {
		t.Fatalf("rollbacks=%d want=1", runner.rollbacks)
	}
	if repo.messages["m1"].Status != domain.OutboxStatusPending {
		t.Fatalf("message status=%s want=PENDING", repo.messages["m1"].Status)
	}
}

func TestDrainWithNoPendingMessages(t *testing.T) {
	repo := newFakeOutboxRepo()
	producer := &fakeProducer{}
	processor := NewProcessor(&fakeRunner{}, repo, producer, 10, time.Second, zap.NewNop())

	if err := processor.Drain(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(producer.produced) != 0 {
		t.Fatalf("produced=%d want=0", len(producer.produced))
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	repo := newFakeOutboxRepo(pendingMessage("m1"))
	producer := &fakeProducer{}
	processor := NewProcessor(&fakeRunner{}, repo, producer, 10, time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		processor.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start() did not stop after context cancellation")
	}

	if len(producer.produced) == 0 {
		t.Fatal("Start() never drained the outbox")
	}
}
