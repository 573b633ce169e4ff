// userctl - утилита для создания пользователя напрямую в хранилище,
// минуя HTTP API. Нужна для первичного наполнения и для восстановления
// доступа на окружениях, где signup закрыт
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/iudanet/userhub/internal/config"
	"github.com/iudanet/userhub/internal/crypto"
	"github.com/iudanet/userhub/internal/models"
	"github.com/iudanet/userhub/internal/server/storage"
	"github.com/iudanet/userhub/internal/server/storage/boltdb"
	"github.com/iudanet/userhub/internal/server/storage/sqlite"
	"github.com/iudanet/userhub/internal/validation"
)

func main() {
	driver := flag.String("driver", config.DriverSQLite, "Storage driver: sqlite or bolt")
	dbPath := flag.String("db", "userhub.db", "Path to the database file")
	username := flag.String("username", "", "Username to create")
	flag.Parse()

	if err := run(*driver, *dbPath, *username); err != nil {
		fmt.Fprintf(os.Stderr, "userctl: %v\n", err)
		os.Exit(1)
	}
}

func run(driver, dbPath, username string) error {
	username = validation.NormalizeUsername(username)
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ctx := context.Background()

	userStorage, closer, err := openStorage(ctx, driver, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closer.Close()

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := userStorage.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("user %s created with id %s\n", user.Username, user.ID)
	return nil
}

// promptPassword читает пароль с терминала без эха, с подтверждением
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	p := strings.TrimSpace(string(password))
	if err := validation.ValidateConfirmPassword(p, strings.TrimSpace(string(confirm))); err != nil {
		return "", err
	}

	return p, nil
}

type closer interface {
	Close() error
}

func openStorage(ctx context.Context, driver, dbPath string) (storage.UserStorage, closer, error) {
	switch driver {
	case config.DriverBolt:
		s, err := boltdb.New(ctx, dbPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.DriverSQLite:
		s, err := sqlite.New(ctx, dbPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
