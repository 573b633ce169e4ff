package api

import "time"

// SignupRequest представляет запрос на регистрацию нового пользователя
type SignupRequest struct {
	Username        string `json:"username"`         // username пользователя
	Password        string `json:"password"`         // пароль в открытом виде
	ConfirmPassword string `json:"confirm-password"` // подтверждение пароля, должно совпадать с password
}

// SigninRequest представляет запрос на аутентификацию
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse представляет ответ на успешный signup/signin
// Токен в тело не включается, он уходит клиенту в cookie
type AuthResponse struct {
	Username string `json:"username"`
}

// PublicUser представляет пользователя без чувствительных полей
// Единственная форма, в которой пользователь отдается наружу
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse представляет ответ на запрос списка пользователей
type UserListResponse struct {
	Requester string        `json:"requester"` // ID пользователя, сделавшего запрос
	Users     []*PublicUser `json:"users"`
}

// StatusResponse представляет ответ со статусом операции (signout, delete)
type StatusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
