package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/userhub/internal/server/handlers"
	"github.com/iudanet/userhub/internal/server/users"
)

// CookieAuth создает middleware для проверки сессионной cookie
// Токен берется из cookie "token", ID пользователя кладется в контекст
// Любая проблема с cookie или токеном дает 401
func CookieAuth(logger *slog.Logger, service *users.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(handlers.CookieName)
			if err != nil || cookie.Value == "" {
				logger.Warn("missing session cookie", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			userID, err := service.ResolveCaller(cookie.Value)
			if err != nil {
				logger.Warn("invalid session token", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			logger.Debug("user authenticated", "user_id", userID)

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized отправляет единый 401 ответ
// Отсутствие cookie, битый и протухший токен снаружи неразличимы
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"unauthorized"}`))
}
