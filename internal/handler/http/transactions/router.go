package transactions

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/app/transactions"
)

func RegisterRoutes(r chi.Router, s transactions.TransactionService, l *zap.Logger) {
	handler := NewTransactionHandler(s, l.With(zap.String("component", "TransactionHTTPHandler")))

	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", handler.Transfer)
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
	})
}
