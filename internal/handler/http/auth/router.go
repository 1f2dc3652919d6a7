package auth

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/app/auth"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/handler/http/middleware"
)

func RegisterRoutes(r chi.Router, s auth.AuthService, l *zap.Logger) {
	handler := NewAuthHandler(s, l.With(zap.String("component", "AuthHTTPHandler")))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.With(middleware.WithAuth(s, l)).Get("/authenticate", handler.Authenticate)
	})
}
