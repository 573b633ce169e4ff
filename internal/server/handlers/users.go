package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/userhub/internal/server/users"
	"github.com/iudanet/userhub/internal/validation"
	"github.com/iudanet/userhub/pkg/api"
)

// CookieName имя сессионной cookie
const CookieName = "token"

// CookieConfig описывает параметры выдачи сессионной cookie
type CookieConfig struct {
	MaxAge time.Duration // время жизни cookie, совпадает со сроком жизни токена
	Secure bool          // Secure + HttpOnly включаются только в production
}

// UsersHandler обрабатывает запросы регистрации, входа и сессий
type UsersHandler struct {
	logger  *slog.Logger
	service *users.Service
	cookie  CookieConfig
}

// NewUsersHandler создает новый handler для пользователей
func NewUsersHandler(logger *slog.Logger, service *users.Service, cookie CookieConfig) *UsersHandler {
	return &UsersHandler{
		logger:  logger,
		service: service,
		cookie:  cookie,
	}
}

// SignUp обрабатывает POST /users/signup
// Регистрация нового пользователя, в ответе ставится сессионная cookie
func (h *UsersHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode signup request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	username := validation.NormalizeUsername(req.Username)
	password := strings.TrimSpace(req.Password)

	// Валидация входа до запуска сервиса
	if err := validation.ValidateUsername(username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateConfirmPassword(password, strings.TrimSpace(req.ConfirmPassword)); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.SignUp(ctx, username, password)
	if err != nil {
		h.sendServiceError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("username", result.Username))

	h.setSessionCookie(w, result.Token)
	h.sendJSON(w, api.AuthResponse{Username: result.Username}, http.StatusCreated)
}

// SignIn обрабатывает POST /users/signin
// Аутентификация пользователя, в ответе ставится сессионная cookie
func (h *UsersHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode signin request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	username := validation.NormalizeUsername(req.Username)
	password := strings.TrimSpace(req.Password)

	if err := validation.ValidateUsername(username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.SignIn(ctx, username, password)
	if err != nil {
		h.sendServiceError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("username", result.Username))

	h.setSessionCookie(w, result.Token)
	h.sendJSON(w, api.AuthResponse{Username: result.Username}, http.StatusOK)
}

// SignOut обрабатывает GET /users/signout
// Сбрасывает сессионную cookie, серверного состояния у сессии нет
func (h *UsersHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	h.sendJSON(w, api.StatusResponse{Status: 1, Message: "Successfully signed out."}, http.StatusOK)
}

// Me обрабатывает GET /users/me
// Возвращает проекцию текущего пользователя без чувствительных полей
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetSelf(ctx, userID)
	if err != nil {
		h.sendServiceError(ctx, w, err)
		return
	}

	h.sendJSON(w, user, http.StatusOK)
}

// List обрабатывает GET /users
// Возвращает всех активных пользователей и ID запросившего
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	list, err := h.service.ListUsers(ctx, userID)
	if err != nil {
		h.sendServiceError(ctx, w, err)
		return
	}

	h.sendJSON(w, api.UserListResponse{Requester: list.Requester, Users: list.Users}, http.StatusOK)
}

// DeleteMe обрабатывает DELETE /users/me
// Мягко удаляет текущего пользователя и сбрасывает cookie
func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteSelf(ctx, userID); err != nil {
		h.sendServiceError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "user soft-deleted", slog.String("user_id", userID))

	h.clearSessionCookie(w)
	h.sendJSON(w, api.StatusResponse{Status: 1, Message: "Account deleted."}, http.StatusOK)
}

// setSessionCookie ставит cookie с сессионным токеном
// SameSite=None, потому что фронтенд живет на другом origin
func (h *UsersHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		SameSite: http.SameSiteNoneMode,
		Secure:   h.cookie.Secure,
		HttpOnly: h.cookie.Secure,
	})
}

// clearSessionCookie сбрасывает сессионную cookie
func (h *UsersHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteNoneMode,
		Secure:   h.cookie.Secure,
		HttpOnly: h.cookie.Secure,
	})
}

// sendServiceError транслирует ошибку сервиса в HTTP статус
// Сервис отдает только свой словарь ошибок, так что default здесь
// это ErrInternal либо незнакомая ошибка, обе дают 500
func (h *UsersHandler) sendServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrUserAlreadyExists):
		h.sendError(w, "username already taken", http.StatusConflict)
	case errors.Is(err, users.ErrUnauthorized):
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, users.ErrInvalidCredentials):
		h.sendError(w, "invalid credentials", http.StatusUnauthorized)
	default:
		h.logger.ErrorContext(ctx, "request failed", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

// sendJSON отправляет JSON ответ
func (h *UsersHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *UsersHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
