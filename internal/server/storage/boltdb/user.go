package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/server/storage"
)

// userDocument описывает формат хранения пользователя в bucket users
// Отдельный тип, а не models.User, потому что json-теги модели скрывают
// password_hash и is_deleted от внешнего мира, а здесь их надо сохранить
type userDocument struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	IsDeleted    bool      `json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toDocument(u *models.User) *userDocument {
	return &userDocument{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsDeleted:    u.IsDeleted,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		IsDeleted:    d.IsDeleted,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// CreateUser creates a new user and assigns a generated UUID
// Проверка занятости username и вставка выполняются в одной
// write-транзакции, так что второй конкурентный signup с тем же именем
// получит ErrUserAlreadyExists, а не вторую запись
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		names := tx.Bucket(bucketNames)
		if names == nil {
			return fmt.Errorf("usernames bucket not found")
		}

		if names.Get([]byte(user.Username)) != nil {
			return storage.ErrUserAlreadyExists
		}

		users := tx.Bucket(bucketUsers)
		if users == nil {
			return fmt.Errorf("users bucket not found")
		}

		now := time.Now()
		user.ID = uuid.New().String()
		user.CreatedAt = now
		user.UpdatedAt = now

		data, err := json.Marshal(toDocument(user))
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		if err := users.Put([]byte(user.ID), data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		if err := names.Put([]byte(user.Username), []byte(user.ID)); err != nil {
			return fmt.Errorf("failed to save username index: %w", err)
		}

		return nil
	})
}

// GetUserByUsername retrieves user by exact username, soft-deleted included
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		names := tx.Bucket(bucketNames)
		if names == nil {
			return fmt.Errorf("usernames bucket not found")
		}

		id := names.Get([]byte(username))
		if id == nil {
			return storage.ErrUserNotFound
		}

		var err error
		user, err = getUserTx(tx, id)
		return err
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		user, err = getUserTx(tx, []byte(userID))
		return err
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ListActiveUsers returns all users that are not soft-deleted
func (s *Storage) ListActiveUsers(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		if bucket == nil {
			return fmt.Errorf("users bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			doc := &userDocument{}
			if err := json.Unmarshal(v, doc); err != nil {
				return fmt.Errorf("failed to unmarshal user %s: %w", k, err)
			}

			if doc.IsDeleted {
				return nil
			}

			users = append(users, doc.toModel())
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return users, nil
}

// SoftDeleteUser marks user as deleted without removing the record
func (s *Storage) SoftDeleteUser(ctx context.Context, userID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		if bucket == nil {
			return fmt.Errorf("users bucket not found")
		}

		data := bucket.Get([]byte(userID))
		if data == nil {
			return storage.ErrUserNotFound
		}

		doc := &userDocument{}
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}

		doc.IsDeleted = true
		doc.UpdatedAt = time.Now()

		updated, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		if err := bucket.Put([]byte(userID), updated); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		return nil
	})
}

// getUserTx читает пользователя по id внутри открытой транзакции
func getUserTx(tx *bbolt.Tx, id []byte) (*models.User, error) {
	bucket := tx.Bucket(bucketUsers)
	if bucket == nil {
		return nil, fmt.Errorf("users bucket not found")
	}

	data := bucket.Get(id)
	if data == nil {
		return nil, storage.ErrUserNotFound
	}

	doc := &userDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return doc.toModel(), nil
}
