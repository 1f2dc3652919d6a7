package transactions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/pkg/dto"
)

type fakeTransactionService struct {
	balances     map[int64]decimal.Decimal
	transactions map[int64]*domain.Transaction
	nextID       int64
}

func newFakeTransactionService(balances map[int64]decimal.Decimal) *fakeTransactionService {
	return &fakeTransactionService{
		balances:     balances,
		transactions: make(map[int64]*domain.Transaction),
		nextID:       1,
	}
}

func (s *fakeTransactionService) Transfer(_ context.Context, sourceID, destinationID int64, amount decimal.Decimal) (*domain.Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if sourceID == destinationID {
		return nil, domain.ErrSameAccount
	}
	source, ok := s.balances[sourceID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if _, ok := s.balances[destinationID]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	if source.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}
	s.balances[sourceID] = source.Sub(amount)
	s.balances[destinationID] = s.balances[destinationID].Add(amount)

	transfer := &domain.Transaction{
		ID:                   s.nextID,
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		CreatedAt:            time.Now(),
	}
	s.nextID++
	s.transactions[transfer.ID] = transfer
	return transfer, nil
}

func (s *fakeTransactionService) Get(_ context.Context, id int64) (*domain.Transaction, error) {
	transaction, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *fakeTransactionService) List(_ context.Context) ([]domain.Transaction, error) {
	var list []domain.Transaction
	for _, transaction := range s.transactions {
		list = append(list, *transaction)
	}
	return list, nil
}

func newTestRouter(service *fakeTransactionService) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, service, zap.NewNop())
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestTransferEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "ok",
			body:       `{"source_account_id":1,"destination_account_id":2,"amount":100}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "same account",
			body:       `{"source_account_id":1,"destination_account_id":1,"amount":100}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing amount",
			body:       `{"source_account_id":1,"destination_account_id":2}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "insufficient funds",
			body:       `{"source_account_id":1,"destination_account_id":2,"amount":5000}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown account",
			body:       `{"source_account_id":99,"destination_account_id":2,"amount":100}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed json",
			body:       `{"source_account_id":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newFakeTransactionService(map[int64]decimal.Decimal{
				1: decimal.NewFromInt(500),
				2: decimal.NewFromInt(0),
			})

			rec := doRequest(t, newTestRouter(service), http.MethodPost, "/transactions/", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d body=%s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantStatus == http.StatusCreated {
				var resp dto.TransactionResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if !resp.Amount.Equal(decimal.NewFromInt(100)) {
					t.Fatalf("amount=%s want=100", resp.Amount)
				}
			}
		})
	}
}

func TestListTransactions(t *testing.T) {
	service := newFakeTransactionService(map[int64]decimal.Decimal{
		1: decimal.NewFromInt(500),
		2: decimal.NewFromInt(0),
	})
	router := newTestRouter(service)

	rec := doRequest(t, router, http.MethodGet, "/transactions/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty list: status=%d want=404", rec.Code)
	}

	if _, err := service.Transfer(context.Background(), 1, 2, decimal.NewFromInt(50)); err != nil {
		t.Fatal(err)
	}

	rec = doRequest(t, router, http.MethodGet, "/transactions/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", rec.Code)
	}
	var resp []dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp) != 1 {
		t.Fatalf("len=%d want=1", len(resp))
	}
}

func TestGetTransaction(t *testing.T) {
	service := newFakeTransactionService(map[int64]decimal.Decimal{
		1: decimal.NewFromInt(500),
		2: decimal.NewFromInt(0),
	})
	if _, err := service.Transfer(context.Background(), 1, 2, decimal.NewFromInt(50)); err != nil {
		t.Fatal(err)
	}
	router := newTestRouter(service)

	rec := doRequest(t, router, http.MethodGet, "/transactions/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/transactions/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/transactions/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", rec.Code)
	}
}
