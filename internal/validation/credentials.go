package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// UsernamePattern определяет допустимый формат username
// Только латинские буквы (a-z, A-Z) и цифры (0-9)
// Длина: 3-54 символа
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,54}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 54
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
	// MaxPasswordLen максимальная длина пароля
	MaxPasswordLen = 124
)

// NormalizeUsername приводит username к каноничному виду:
// NFC-нормализация unicode и удаление пробелов по краям.
// Сравнение в хранилище выполняется с учетом регистра
func NormalizeUsername(username string) string {
	return strings.TrimSpace(norm.NFC.String(username))
}

// ValidateUsername проверяет, что username соответствует требованиям
// Формат: только латинские буквы и цифры, длина 3-54 символа
// Ожидает уже нормализованное значение (см. NormalizeUsername)
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	// Длина считается в символах, не в байтах
	if n := utf8.RuneCountInString(username); n < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	} else if n > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z) and numbers (0-9)")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Длина: 6-124 символа, многобайтные символы считаются за один
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if n := utf8.RuneCountInString(password); n < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	} else if n > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}

// ValidateConfirmPassword проверяет, что подтверждение совпадает с паролем
func ValidateConfirmPassword(password, confirm string) error {
	if confirm == "" {
		return fmt.Errorf("confirm password is required")
	}

	if password != confirm {
		return fmt.Errorf("confirm password does not match")
	}

	return nil
}
