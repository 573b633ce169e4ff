package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost стоимость bcrypt по умолчанию
// 12 заметно дороже минимума и приемлемо по задержке для signup/signin
const DefaultBcryptCost = 12

// bcrypt учитывает только первые 72 байта входа, более длинный вход
// драйвер отвергает. Обрезаем сами, чтобы валидный длинный пароль
// хешировался, а не падал
const maxBcryptInput = 72

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > maxBcryptInput {
		b = b[:maxBcryptInput]
	}
	return b
}

// HashPassword хеширует пароль через bcrypt
// Соль генерируется на каждый вызов и встроена в результат
func HashPassword(password string) (string, error) {
	return HashPasswordCost(password, DefaultBcryptCost)
}

// HashPasswordCost хеширует пароль с заданной стоимостью
// Вход длиннее 72 байт обрезается до лимита bcrypt
// Возвращает ошибку при пустом пароле или некорректной стоимости
func HashPasswordCost(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword проверяет, соответствует ли пароль сохраненному хешу
// Вход обрезается так же, как при хешировании
// Сравнение внутри bcrypt выполняется за константное время
// При несовпадении возвращает false, ошибок наружу не отдает
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}
