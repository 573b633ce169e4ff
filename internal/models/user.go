package models

import (
	"time"

	"github.com/iudanet/userhub/pkg/api"
)

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`       // UUID пользователя, генерируется хранилищем
	Username     string    `json:"username"` // уникальный username
	PasswordHash string    `json:"-"`        // bcrypt хеш пароля, наружу не отдается
	IsDeleted    bool      `json:"-"`        // флаг мягкого удаления
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public возвращает проекцию без хеша пароля и служебных полей
func (u *User) Public() *api.PublicUser {
	return &api.PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
