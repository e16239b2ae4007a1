package api

import (
	"net/http"
	"time"

	"stateless_auth/internal/api/handler"
	"stateless_auth/internal/api/middleware"
	"stateless_auth/internal/app/service"
	"stateless_auth/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(
	logger zerolog.Logger,
	authService *service.AuthService,
	codec *security.TokenCodec,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Salt/login exchange (public)
	authHandler := handler.NewAuthHandler(authService)
	r.Route("/auth", authHandler.RegisterRoutes)

	// Protected sample resources (role-gated per route)
	resourceHandler := handler.NewResourceHandler(codec)
	r.Route("/resource", resourceHandler.RegisterRoutes)

	return r
}
