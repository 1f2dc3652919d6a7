package accounts

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/app/accounts"
)

func RegisterRoutes(r chi.Router, s accounts.AccountService, l *zap.Logger) {
	handler := NewAccountHandler(s, l.With(zap.String("component", "AccountHTTPHandler")))

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
		r.Put("/deposit/{id}", handler.Deposit)
		r.Put("/withdraw/{id}", handler.Withdraw)
	})
}
