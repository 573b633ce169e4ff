package users

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iudanet/userhub/internal/crypto"
	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/server/jwt"
	"github.com/iudanet/userhub/internal/server/storage"
	"github.com/iudanet/userhub/pkg/api"
)

// AuthResult представляет результат успешного signup/signin
type AuthResult struct {
	Username string
	Token    string
}

// UserList представляет список активных пользователей вместе с ID
// запросившего
type UserList struct {
	Requester string
	Users     []*api.PublicUser
}

// Service оркестрирует регистрацию, вход и сессионные запросы
// Состояния между вызовами не держит, все операции это
// запрос-ответ поверх хранилища и сервиса токенов
type Service struct {
	logger  *slog.Logger
	storage storage.UserStorage
	tokens  *jwt.Service
}

// NewService создает новый сервис пользователей
func NewService(logger *slog.Logger, userStorage storage.UserStorage, tokens *jwt.Service) *Service {
	return &Service{
		logger:  logger,
		storage: userStorage,
		tokens:  tokens,
	}
}

// SignUp регистрирует нового пользователя и выпускает сессионный токен
// Занятый username (в том числе мягко удаленный) дает ErrUserAlreadyExists
func (s *Service) SignUp(ctx context.Context, username, password string) (*AuthResult, error) {
	// Предварительная проверка занятости имени. Сама по себе она гонку
	// двух одновременных signup не закрывает, поэтому хранилище обязано
	// отвергнуть повторную вставку конфликтом
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, s.internal(ctx, "signup: username lookup failed", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, s.internal(ctx, "signup: password hashing failed", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, s.internal(ctx, "signup: user creation failed", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, s.internal(ctx, "signup: token issue failed", err)
	}

	return &AuthResult{Username: user.Username, Token: token}, nil
}

// SignIn аутентифицирует пользователя по паролю и выпускает токен
// Неизвестный или удаленный username дает ErrUnauthorized,
// неверный пароль — ErrInvalidCredentials
func (s *Service) SignIn(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, s.internal(ctx, "signin: username lookup failed", err)
	}

	if user.IsDeleted {
		return nil, ErrUnauthorized
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, s.internal(ctx, "signin: token issue failed", err)
	}

	return &AuthResult{Username: user.Username, Token: token}, nil
}

// ResolveCaller извлекает ID пользователя из сессионного токена
// Любая проблема с токеном дает ErrUnauthorized
func (s *Service) ResolveCaller(token string) (string, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return "", ErrUnauthorized
	}
	return claims.UserID, nil
}

// GetSelf возвращает проекцию пользователя по его ID
// Отсутствующая запись и отказ хранилища не различаются,
// оба случая дают ErrUnauthorized
func (s *Service) GetSelf(ctx context.Context, userID string) (*api.PublicUser, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if user.IsDeleted {
		return nil, ErrUnauthorized
	}

	return user.Public(), nil
}

// ListUsers возвращает всех активных пользователей вместе с ID запросившего
// ID запросившего включается в ответ независимо от того, есть ли он в списке
func (s *Service) ListUsers(ctx context.Context, callerID string) (*UserList, error) {
	users, err := s.storage.ListActiveUsers(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list users failed", err)
	}

	projected := make([]*api.PublicUser, 0, len(users))
	for _, u := range users {
		projected = append(projected, u.Public())
	}

	return &UserList{Requester: callerID, Users: projected}, nil
}

// DeleteSelf мягко удаляет пользователя по его ID
func (s *Service) DeleteSelf(ctx context.Context, userID string) error {
	if err := s.storage.SoftDeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUnauthorized
		}
		return s.internal(ctx, "soft delete failed", err)
	}
	return nil
}

// internal логирует причину и сворачивает ее в ErrInternal
// Наружу из сервиса уходят только ошибки из errors.go
func (s *Service) internal(ctx context.Context, msg string, err error) error {
	s.logger.ErrorContext(ctx, msg, slog.Any("error", err))
	return ErrInternal
}
