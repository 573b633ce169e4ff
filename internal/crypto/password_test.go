package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

// Тесты используют минимальную стоимость, чтобы не тормозить прогон
const testCost = bcrypt.MinCost

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPasswordCost("secret1", testCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Хеш не содержит исходный пароль
	assert.NotContains(t, hash, "secret1")

	assert.True(t, VerifyPassword("secret1", hash))
	assert.False(t, VerifyPassword("secret2", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	hash1, err := HashPasswordCost("secret1", testCost)
	require.NoError(t, err)

	hash2, err := HashPasswordCost("secret1", testCost)
	require.NoError(t, err)

	// Соль на каждый вызов своя, хеши не совпадают
	assert.NotEqual(t, hash1, hash2)

	// Но оба проверяются
	assert.True(t, VerifyPassword("secret1", hash1))
	assert.True(t, VerifyPassword("secret1", hash2))
}

func TestHashPassword_Errors(t *testing.T) {
	_, err := HashPasswordCost("", testCost)
	assert.Error(t, err, "empty password should be rejected")
}

func TestHashPassword_LongPasswordTruncated(t *testing.T) {
	// bcrypt учитывает только первые 72 байта, более длинный вход
	// обрезается вместо ошибки
	long := strings.Repeat("p", 100)

	hash, err := HashPasswordCost(long, testCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(long, hash))

	// Расхождение после 72-го байта не различимо
	assert.True(t, VerifyPassword(strings.Repeat("p", 72)+"qqq", hash))

	// Расхождение внутри первых 72 байт различимо
	assert.False(t, VerifyPassword("q"+strings.Repeat("p", 99), hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("secret1", ""))
	assert.False(t, VerifyPassword("secret1", "not-a-bcrypt-hash"))
}
