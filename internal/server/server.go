package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/iudanet/userhub/internal/config"
	"github.com/iudanet/userhub/internal/server/handlers"
	"github.com/iudanet/userhub/internal/server/middleware"
	"github.com/iudanet/userhub/internal/server/users"
)

// Лимит для signup/signin: 10 попыток с одного IP в минуту
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

const shutdownTimeout = 30 * time.Second

// Server оборачивает http.Server с собранным роутером
type Server struct {
	logger *slog.Logger
	http   *http.Server
}

// New собирает роутер и создает сервер
func New(logger *slog.Logger, cfg *config.Config, service *users.Service, version string) *Server {
	usersHandler := handlers.NewUsersHandler(logger, service, handlers.CookieConfig{
		MaxAge: cfg.TokenTTL,
		Secure: cfg.IsProduction(),
	})
	healthHandler := handlers.NewHealthHandler(logger, version)

	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true, // cookie ходит между origin
	}))

	r.Get("/health", healthHandler.Health)

	r.Route("/users", func(r chi.Router) {
		// Открытые endpoint'ы с rate limit против перебора паролей
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(authRateLimit, authRateWindow, logger))
			r.Post("/signup", usersHandler.SignUp)
			r.Post("/signin", usersHandler.SignIn)
		})

		r.Get("/signout", usersHandler.SignOut)

		// Защищенные endpoint'ы, требуют валидную сессионную cookie
		r.Group(func(r chi.Router) {
			r.Use(middleware.CookieAuth(logger, service))
			r.Get("/", usersHandler.List)
			r.Get("/me", usersHandler.Me)
			r.Delete("/me", usersHandler.DeleteMe)
		})
	})

	return &Server{
		logger: logger,
		http: &http.Server{
			Addr:              cfg.ServerAddress,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run запускает сервер и блокируется до отмены контекста
// После отмены выполняет graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}
